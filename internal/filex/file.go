// Package filex holds small filesystem helpers used around the local
// database file and export destinations.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// EnsureDir creates dir (and parents) when it does not exist yet.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// EnsureParentDir creates the directory that will contain path.
func EnsureParentDir(path string) error {
	return EnsureDir(filepath.Dir(path))
}

// Stat reports whether path exists and its size in bytes. Any error other
// than "does not exist" is returned.
func Stat(path string) (exists bool, size int64, err error) {
	fi, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, 0, nil
	}
	if err != nil {
		return false, 0, err
	}
	return true, fi.Size(), nil
}
