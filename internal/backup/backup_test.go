package backup

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestCreateUsesFixedSuffixFirst(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mnyob99.dll")
	writeFile(t, target, []byte("original contents"))

	rec, err := Create(target)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Path != target+".backup" {
		t.Fatalf("backup path = %q, want %q", rec.Path, target+".backup")
	}
	got, err := os.ReadFile(rec.Path)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if !bytes.Equal(got, []byte("original contents")) {
		t.Fatalf("backup contents differ: %q", got)
	}
}

func TestCreateNumbersCollisions(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mnyob99.dll")
	writeFile(t, target, []byte("v3"))
	writeFile(t, target+".backup", []byte("v1"))

	rec, err := Create(target)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Path != target+".backup.1" {
		t.Fatalf("backup path = %q, want .backup.1", rec.Path)
	}

	rec2, err := Create(target)
	if err != nil {
		t.Fatalf("second Create: %v", err)
	}
	if rec2.Path != target+".backup.2" {
		t.Fatalf("backup path = %q, want .backup.2", rec2.Path)
	}

	// Earlier backups are never overwritten.
	if got, _ := os.ReadFile(target + ".backup"); !bytes.Equal(got, []byte("v1")) {
		t.Fatalf(".backup was overwritten: %q", got)
	}
}

func TestCreatePreservesMetadata(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mnyob99.dll")
	writeFile(t, target, []byte("data"))
	mtime := time.Date(2021, 4, 3, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(target, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := os.Chmod(target, 0o600); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	rec, err := Create(target)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	fi, err := os.Stat(rec.Path)
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Fatalf("backup perm = %v, want 0600", fi.Mode().Perm())
	}
	if !fi.ModTime().Equal(mtime) {
		t.Fatalf("backup mtime = %v, want %v", fi.ModTime(), mtime)
	}
}

func TestCreateMissingSourceWrapsErrCreate(t *testing.T) {
	_, err := Create(filepath.Join(t.TempDir(), "nope.dll"))
	if !errors.Is(err, ErrCreate) {
		t.Fatalf("err = %v, want ErrCreate", err)
	}
}

func TestRestoreFidelity(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mnyob99.dll")
	original := []byte("pristine bytes of the dll")
	writeFile(t, target, original)

	rec, err := Create(target)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// Mutate the target, then restore.
	writeFile(t, target, []byte("partially patched garbage"))
	if err := Restore(rec, target); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read target: %v", err)
	}
	if !bytes.Equal(got, original) {
		t.Fatalf("restored contents differ: %q", got)
	}
}

func TestRestoreMissingBackupWrapsErrRestore(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "mnyob99.dll")
	writeFile(t, target, []byte("x"))
	err := Restore(Record{Path: filepath.Join(dir, "gone.backup")}, target)
	if !errors.Is(err, ErrRestore) {
		t.Fatalf("err = %v, want ErrRestore", err)
	}
}
