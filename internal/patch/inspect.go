package patch

import (
	"fmt"
	"os"
)

// Classify reads one byte per spec offset and buckets each table index as
// needing the patch or already carrying it. Offsets whose byte matches
// neither side of the pair are returned only in findings (State==Unexpected);
// callers are expected to surface those as warnings.
//
// The file is opened once, read-only, and both index slices preserve the
// table order of specs.
func Classify(path string, specs []Spec) (needsApply, alreadyApplied []int, findings []Finding, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	for i, sp := range specs {
		var buf [1]byte
		if _, err := f.ReadAt(buf[:], sp.Offset); err != nil {
			return nil, nil, nil, fmt.Errorf("reading byte at 0x%06X: %w", sp.Offset, err)
		}
		fd := Finding{Index: i, Offset: sp.Offset, Got: buf[0]}
		switch buf[0] {
		case sp.Original:
			fd.State = NeedsApply
			needsApply = append(needsApply, i)
		case sp.Replacement:
			fd.State = AlreadyApplied
			alreadyApplied = append(alreadyApplied, i)
		default:
			fd.State = Unexpected
		}
		findings = append(findings, fd)
	}
	return needsApply, alreadyApplied, findings, nil
}
