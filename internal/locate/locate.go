// Package locate probes the known install locations of mnyob99.dll.
package locate

import "os"

// DefaultPaths are the candidate locations checked when no explicit path is
// given, in probe order. The last entry covers a DLL copied next to the tool.
var DefaultPaths = []string{
	`C:\Program Files (x86)\Microsoft Money Plus\MNYCoreFiles\mnyob99.dll`,
	`C:\Program Files\Microsoft Money Plus\MNYCoreFiles\mnyob99.dll`,
	`mnyob99.dll`,
}

// Find returns the first existing candidate path. Read-only probing, no side
// effects.
func Find() (string, bool) {
	return FindIn(DefaultPaths)
}

// FindIn probes an explicit candidate list in order.
func FindIn(candidates []string) (string, bool) {
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
