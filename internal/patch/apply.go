package patch

import (
	"fmt"
	"os"
)

// VerifyError reports a byte that no longer matches the expected original at
// apply time. This guards against the file changing between classification
// and mutation: the whole apply stops at the first mismatch.
type VerifyError struct {
	Index  int
	Offset int64
	Want   byte
	Got    byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("patch %d failed verification: expected 0x%02X at 0x%06X, found 0x%02X",
		e.Index+1, e.Want, e.Offset, e.Got)
}

// Apply writes the replacement byte for each listed table index, in the given
// order. Before every write the byte at the spec's offset is re-read and must
// still equal the expected original; on mismatch Apply returns a *VerifyError
// immediately and attempts none of the remaining indices.
//
// Bytes written before a failing index are NOT rolled back here. Recovery is
// whole-file restoration from the pre-run backup, owned by the caller.
//
// Each successful write is reported through logf (offset, old byte, new byte).
func Apply(path string, specs []Spec, indices []int, logf func(format string, args ...any)) error {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening %s for writing: %w", path, err)
	}
	defer f.Close()

	for _, idx := range indices {
		if idx < 0 || idx >= len(specs) {
			return fmt.Errorf("patch index %d out of range", idx)
		}
		sp := specs[idx]
		var buf [1]byte
		if _, err := f.ReadAt(buf[:], sp.Offset); err != nil {
			return fmt.Errorf("re-reading byte at 0x%06X: %w", sp.Offset, err)
		}
		if buf[0] != sp.Original {
			return &VerifyError{Index: idx, Offset: sp.Offset, Want: sp.Original, Got: buf[0]}
		}
		if _, err := f.WriteAt([]byte{sp.Replacement}, sp.Offset); err != nil {
			return fmt.Errorf("writing byte at 0x%06X: %w", sp.Offset, err)
		}
		logf("Patch %d: changed byte at 0x%06X from 0x%02X to 0x%02X",
			idx+1, sp.Offset, sp.Original, sp.Replacement)
	}
	return f.Sync()
}
