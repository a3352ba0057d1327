// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrEmptyPath = errors.New("path cannot be empty")
	ErrPathIsDir = errors.New("path is a directory")
	ErrNoInputs  = errors.New("staleness check needs at least one input")
)

// tempPrefix marks in-flight writes in the output directory.
const tempPrefix = ".envoi-"

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "envoi" -> false (name)
//   - "./envoi.yaml" -> true (relative path)
//   - "/etc/envoi/envoi.yaml" -> true (absolute)
//   - "C:\envoi\envoi.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsStale reports whether output must be rebuilt: it is missing, or older
// than any of the inputs. An output with the same modification time as its
// newest input is current.
func IsStale(output string, inputs ...string) (bool, error) {
	if len(inputs) == 0 {
		return false, ErrNoInputs
	}
	out, err := os.Stat(output)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking output: %w", err)
	}
	if out.IsDir() {
		return false, fmt.Errorf("%w: %s", ErrPathIsDir, output)
	}

	for _, in := range inputs {
		info, err := os.Stat(in)
		if err != nil {
			return false, fmt.Errorf("checking input: %w", err)
		}
		if info.ModTime().After(out.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, creating parent directories as needed. Readers never observe a
// partially written file, and a failed write leaves any existing file intact.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) (err error) {
	if path == "" {
		return ErrEmptyPath
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, tempPrefix+"*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
