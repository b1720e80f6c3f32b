// Package validate checks that a patch target actually exists and is usable
// before anything touches it. Each failure kind is a distinct sentinel so the
// caller can report precisely what went wrong.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

var (
	// ErrNotFound: the target path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrPermission: the process lacks read+write access to the target.
	ErrPermission = errors.New("insufficient permissions to read/write")
)

// MinPlausibleSize is a heuristic lower bound on a real mnyob99.dll.
// Smaller files trigger a warning, never a failure.
const MinPlausibleSize = 1_000_000

// Target fails if path does not exist or cannot be opened for both reading
// and writing. It opens the file briefly to prove access and closes it before
// returning.
func Target(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %s", ErrPermission, path)
		}
		return fmt.Errorf("opening %s: %w", path, err)
	}
	return f.Close()
}

// SizeWarning returns a human-readable warning when the file is implausibly
// small for mnyob99.dll. ok is false when no warning applies.
func SizeWarning(path string) (msg string, ok bool) {
	fi, err := os.Stat(path)
	if err != nil || fi.Size() >= MinPlausibleSize {
		return "", false
	}
	return fmt.Sprintf("file size (%d bytes) seems small for mnyob99.dll", fi.Size()), true
}
