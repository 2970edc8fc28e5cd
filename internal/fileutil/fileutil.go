// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Sentinel errors for file utility operations.
var (
	ErrExtensionEmpty         = errors.New("extension cannot be empty")
	ErrExtensionPathTraversal = errors.New("extension contains path separator or null byte")
)

// OutputPerm is the permission applied to written .tex files.
const OutputPerm os.FileMode = 0o644

// markdownExtensions lists the recognized Markdown extensions (lowercase).
var markdownExtensions = []string{".md", ".markdown"}

// WriteAtomic writes r to path through a temp file and rename, creating
// parent directories as needed. Readers never observe a partial file.
// New files get OutputPerm; replaced files keep their mode.
func WriteAtomic(path string, r io.Reader) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating directory: %w", err)
		}
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	if err := atomic.WriteFile(path, r); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	// atomic.WriteFile keeps an existing file's mode but leaves new files
	// with the temp file's 0600.
	if existed {
		return nil
	}
	if err := os.Chmod(path, OutputPerm); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	return nil
}

// ProbeWritable checks that a file can be created in dir.
func ProbeWritable(dir string) error {
	tmpFile, err := os.CreateTemp(dir, "md2tex-probe-*")
	if err != nil {
		return fmt.Errorf("creating probe file: %w", err)
	}
	path := tmpFile.Name()
	closeErr := tmpFile.Close()
	removeErr := os.Remove(path)
	if closeErr != nil {
		return fmt.Errorf("closing probe file: %w", closeErr)
	}
	if removeErr != nil {
		return fmt.Errorf("removing probe file: %w", removeErr)
	}
	return nil
}

// ValidateExtension checks that the extension is safe for use in file names.
func ValidateExtension(extension string) error {
	if extension == "" {
		return ErrExtensionEmpty
	}
	if strings.ContainsAny(extension, "/\\\x00") {
		return ErrExtensionPathTraversal
	}
	return nil
}

// ReplaceExtension swaps the extension of path for extension (with or
// without a leading dot). A path without extension gets one appended.
func ReplaceExtension(path, extension string) (string, error) {
	if err := ValidateExtension(extension); err != nil {
		return "", err
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + extension, nil
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "portable" -> false (template set name)
//   - "./latex" -> true (relative path)
//   - "/absolute/dir" -> true (absolute)
//   - "C:\templates" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsMarkdownFile reports whether path has a .md or .markdown extension,
// compared case-insensitively.
func IsMarkdownFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, md := range markdownExtensions {
		if ext == md {
			return true
		}
	}
	return false
}
