package fsx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// renameFunc is swapped in tests to simulate rename failures.
var renameFunc = os.Rename

// ErrIsDirectory is returned when the destination of a write is a directory.
var ErrIsDirectory = errors.New("destination is a directory")

// WriteFileAtomicReplace writes data to dir/name through a temp file in the same
// directory and a rename, replacing any existing file. dir is created if needed.
func WriteFileAtomicReplace(dir, name string, data []byte) error {
	return writeFileAtomic(dir, name, data, 0o644)
}

// WriteFile splits path and calls WriteFileAtomicReplace.
func WriteFile(path string, data []byte) error {
	dir, name := filepath.Split(filepath.Clean(path))
	if dir == "" {
		dir = "."
	}
	return WriteFileAtomicReplace(dir, name, data)
}

func writeFileAtomic(dir, name string, data []byte, perm os.FileMode) error {
	if name == "" || name == "." {
		return fmt.Errorf("invalid file name %q", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	dst := filepath.Join(dir, name)
	if fi, err := os.Stat(dst); err == nil && fi.IsDir() {
		return fmt.Errorf("%s: %w", dst, ErrIsDirectory)
	}

	// Hidden temp name keeps partial files out of directory listings.
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := renameFunc(tmpName, dst); err != nil {
		return fmt.Errorf("failed to move file into place: %w", err)
	}

	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
