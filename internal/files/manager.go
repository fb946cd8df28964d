package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileExists reports whether path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// EnsureDirectory creates a directory with all parent directories.
// An empty path or "." is a no-op.
func EnsureDirectory(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0755)
}

// CreateTemp creates an empty temporary file next to dst and returns its path.
// Keeping the temp file in the destination directory makes the final rename atomic.
func CreateTemp(dst string) (string, error) {
	dir := filepath.Dir(dst)
	if err := EnsureDirectory(dir); err != nil {
		return "", fmt.Errorf("failed to create destination directory: %w", err)
	}

	f, err := os.CreateTemp(dir, "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("failed to close temporary file: %w", err)
	}
	return name, nil
}

// CopyFile copies a file from source to destination
func CopyFile(src, dst string) error {
	if err := EnsureDirectory(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}

	return dstFile.Sync()
}

// MoveFile moves a file from source to destination
func MoveFile(src, dst string) error {
	slog.Debug("Moving file",
		slog.String("src", src),
		slog.String("dst", dst))

	if err := EnsureDirectory(filepath.Dir(dst)); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Try rename first (atomic if on same filesystem)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Fall back to copy and delete
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// WriteFileAtomic writes data to a temporary file and renames it onto path
func WriteFileAtomic(path string, data []byte) error {
	tmp, err := CreateTemp(path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := MoveFile(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
