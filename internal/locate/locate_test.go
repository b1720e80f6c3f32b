package locate

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindInReturnsFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.dll")
	third := filepath.Join(dir, "third.dll")
	for _, p := range []string{second, third} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	got, ok := FindIn([]string{filepath.Join(dir, "missing.dll"), second, third})
	if !ok || got != second {
		t.Fatalf("FindIn = %q, %v; want %q, true", got, ok, second)
	}
}

func TestFindInNoneExist(t *testing.T) {
	dir := t.TempDir()
	if got, ok := FindIn([]string{filepath.Join(dir, "a"), filepath.Join(dir, "b")}); ok {
		t.Fatalf("FindIn = %q, true; want miss", got)
	}
}
