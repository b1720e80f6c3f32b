// Package backup creates and restores full-file backups of the patch target.
//
// A backup is always taken before any byte is written, and restoration copies
// the backup wholesale over the target, so a failed patch run nets out to a
// byte-identical file.
package backup

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrCreate: the backup copy could not be produced. Fatal; the workflow
	// must abort before any mutation.
	ErrCreate = errors.New("backup creation failed")
	// ErrRestore: the target could not be restored from its backup. The
	// worst-case outcome: the target may be left mutated.
	ErrRestore = errors.New("restoration from backup failed")
)

// Record points at a completed backup copy.
type Record struct {
	Path string
}

// Create copies path to the first unused of <path>.backup, <path>.backup.1,
// <path>.backup.2, ... and preserves the source's permissions and
// modification time. Existing backups are never overwritten.
func Create(path string) (Record, error) {
	dst := path + ".backup"
	for n := 1; ; n++ {
		if _, err := os.Stat(dst); errors.Is(err, os.ErrNotExist) {
			break
		}
		dst = fmt.Sprintf("%s.backup.%d", path, n)
	}
	if err := copyFile(path, dst); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCreate, err)
	}
	return Record{Path: dst}, nil
}

// Restore copies the backup wholesale over the target.
func Restore(rec Record, path string) error {
	if err := copyFile(rec.Path, path); err != nil {
		return fmt.Errorf("%w: %v", ErrRestore, err)
	}
	return nil
}

// copyFile writes dst via a temporary file in the destination directory and
// renames it into place, so a crash mid-copy never leaves a truncated file
// under the final name. Permissions and mod time follow the source.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	dir := filepath.Dir(dst)
	tmp, err := os.CreateTemp(dir, ".tmp-"+filepath.Base(dst)+"-")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, dst); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(dst, fi.Mode().Perm()); err != nil {
		return err
	}
	return os.Chtimes(dst, fi.ModTime(), fi.ModTime())
}
