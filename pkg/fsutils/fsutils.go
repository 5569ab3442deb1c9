package fsutils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// CreateDir creates a directory if it doesn't exist.
func CreateDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FileExists checks if a path exists and is a regular file (not a directory).
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		// NotExist and any other stat failure (e.g. permissions) both count as absent.
		return false
	}
	return !info.IsDir()
}

// TempPath returns a unique sibling path for path, used as the staging file
// for atomic writes.
func TempPath(path string) string {
	dir, base := filepath.Split(path)
	return filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", base, uuid.NewString()))
}

// WriteFileAtomic writes content to a temporary file next to path and renames
// it over path. Readers see either the old file or the complete new one.
// The parent directory is created if needed.
func WriteFileAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := CreateDir(dir); err != nil {
		return fmt.Errorf("failed to create directory %q: %w", dir, err)
	}

	tmp := TempPath(path)
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("failed to create temp file %q: %w", tmp, err)
	}

	// Any failure past this point must not leave the temp file behind.
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to write temp file %q: %w", tmp, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to sync temp file %q: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close temp file %q: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace %q: %w", path, err)
	}
	return nil
}
