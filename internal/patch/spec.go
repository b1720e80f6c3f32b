// Package patch holds the fixed mnyob99.dll patch table and the operations
// that read and mutate the target file one byte at a time.
//
// The patch is Raymond Chen's fix for crashes in Microsoft Money when
// importing account transactions or changing the payee of a downloaded
// transaction. It changes exactly four bytes:
//
//	003FACE8: 85 -> 8D
//	003FACED: 50 -> 51
//	003FACF0: FF -> 85
//	003FACF6: E8 -> B9
//
// Reference: https://devblogs.microsoft.com/oldnewthing/20121113-00/?p=6103
package patch

// Spec describes a single one-byte patch: the absolute file offset, the byte
// expected there in an unpatched DLL, and the byte to write.
type Spec struct {
	Offset      int64
	Original    byte
	Replacement byte
}

// table is the fixed patch set, in application order. Never mutated.
var table = [4]Spec{
	{Offset: 0x003FACE8, Original: 0x85, Replacement: 0x8D},
	{Offset: 0x003FACED, Original: 0x50, Replacement: 0x51},
	{Offset: 0x003FACF0, Original: 0xFF, Replacement: 0x85},
	{Offset: 0x003FACF6, Original: 0xE8, Replacement: 0xB9},
}

// Table returns a copy of the patch table so callers cannot alter the
// canonical entries.
func Table() []Spec {
	out := make([]Spec, len(table))
	copy(out, table[:])
	return out
}

// State classifies the byte found at a spec's offset in a live file.
type State int

const (
	// NeedsApply: the byte matches the unpatched original.
	NeedsApply State = iota
	// AlreadyApplied: the byte matches the replacement.
	AlreadyApplied
	// Unexpected: the byte matches neither; the file may not be the DLL
	// version this patch targets.
	Unexpected
)

func (s State) String() string {
	switch s {
	case NeedsApply:
		return "needs-apply"
	case AlreadyApplied:
		return "already-applied"
	case Unexpected:
		return "unexpected"
	}
	return "invalid"
}

// Finding records the classification of one table entry against a live file.
type Finding struct {
	Index  int
	Offset int64
	Got    byte
	State  State
}
