package fsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomicReplace(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	if err := WriteFileAtomicReplace(dir, "a.md", []byte("first")); err != nil {
		t.Fatalf("First write failed: %v", err)
	}
	if err := WriteFileAtomicReplace(dir, "a.md", []byte("second")); err != nil {
		t.Fatalf("Second write failed: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "a.md"))
	if err != nil {
		t.Fatalf("Failed to read back: %v", err)
	}
	if string(b) != "second" {
		t.Errorf("Expected replaced content, got %q", b)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the final file, found %d entries", len(entries))
	}
}

func TestWriteFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "taken"), 0o755); err != nil {
		t.Fatal(err)
	}

	err := WriteFile(filepath.Join(dir, "taken"), []byte("x"))
	if !errors.Is(err, ErrIsDirectory) {
		t.Fatalf("Expected ErrIsDirectory, got %v", err)
	}
}

func TestWriteFileRenameFailureLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	old := renameFunc
	renameFunc = func(string, string) error { return errors.New("boom") }
	t.Cleanup(func() { renameFunc = old })

	if err := WriteFileAtomicReplace(dir, "a.md", []byte("x")); err == nil {
		t.Fatal("Expected error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected temp file cleanup, found %d entries", len(entries))
	}
}
