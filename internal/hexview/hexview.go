// Package hexview renders file regions as hexdump lines and produces unified
// before/after diffs of them. It uses github.com/pmezard/go-difflib/difflib
// to produce classic unified output (---/+++ headers, @@ hunks, lines
// prefixed with ' ', '-', '+') over hexdump rows rather than text lines.
package hexview

import (
	"fmt"
	"os"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// bytesPerLine is the width of one hexdump row.
const bytesPerLine = 16

// Lines formats data as hexdump rows. base is the absolute file offset of
// data[0] and is rendered at the start of each row; rows are aligned so that
// offsets divisible by 16 start a row. Every element ends with "\n", which
// produces better unified hunks.
func Lines(data []byte, base int64) []string {
	if len(data) == 0 {
		return []string{}
	}
	var out []string
	// Lead-in so the first row starts on a 16-byte boundary.
	rowStart := base - base%bytesPerLine
	for rowStart < base+int64(len(data)) {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%08X ", rowStart)
		for i := int64(0); i < bytesPerLine; i++ {
			off := rowStart + i
			if off < base || off >= base+int64(len(data)) {
				sb.WriteString("   ")
				continue
			}
			fmt.Fprintf(&sb, " %02X", data[off-base])
		}
		sb.WriteString("\n")
		out = append(out, sb.String())
		rowStart += bytesPerLine
	}
	return out
}

// Unified produces a unified diff of two byte regions rendered as hexdump
// rows. Both regions must start at the same absolute offset. context is the
// number of unchanged rows around each hunk; if 0, defaults to 4.
func Unified(fromName, toName string, before, after []byte, base int64, context int) (string, error) {
	if context <= 0 {
		context = 4
	}
	u := difflib.UnifiedDiff{
		A:        Lines(before, base),
		B:        Lines(after, base),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	}
	return difflib.GetUnifiedDiffString(u)
}

// Window returns a 16-aligned offset range [start, end) that covers every
// offset in offs, with one full row of slack on each side, clamped to size.
func Window(offs []int64, size int64) (start, end int64) {
	if len(offs) == 0 {
		return 0, 0
	}
	lo, hi := offs[0], offs[0]
	for _, o := range offs[1:] {
		if o < lo {
			lo = o
		}
		if o > hi {
			hi = o
		}
	}
	start = lo - lo%bytesPerLine - bytesPerLine
	if start < 0 {
		start = 0
	}
	end = hi - hi%bytesPerLine + 2*bytesPerLine
	if end > size {
		end = size
	}
	return start, end
}

// ReadRegion reads [start, end) from the file at path.
func ReadRegion(path string, start, end int64) ([]byte, error) {
	if end <= start {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	buf := make([]byte, end-start)
	if _, err := f.ReadAt(buf, start); err != nil {
		return nil, fmt.Errorf("reading region 0x%06X..0x%06X: %w", start, end, err)
	}
	return buf, nil
}
