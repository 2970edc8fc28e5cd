package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
)

// Sentinel errors for file discovery.
var (
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// texExtension is appended to converted documents.
const texExtension = ".tex"

// FileToConvert represents a single file to process.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert.
// Files are returned in lexical order. A directory input needs an output
// directory, not a .tex file.
func discoverFiles(inputPath, outputDir string) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return nil, err
		}
		outPath := resolveOutputPath(inputPath, outputDir, "")
		return []FileToConvert{{InputPath: inputPath, OutputPath: outPath}}, nil
	}

	if strings.HasSuffix(outputDir, texExtension) {
		return nil, fmt.Errorf("%w: output %s is a file but input %s is a directory", ErrUsage, outputDir, inputPath)
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdownFile(path) {
			return nil
		}
		outPath := resolveOutputPath(path, outputDir, inputPath)
		files = append(files, FileToConvert{InputPath: path, OutputPath: outPath})
		return nil
	})

	return files, err
}

// resolveOutputPath determines the .tex output path for a markdown file.
// An outputDir ending in .tex is used as the file itself; otherwise the
// tree below baseInputDir is mirrored under outputDir.
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	// texExtension is a constant, so ReplaceExtension cannot fail here
	texName, _ := fileutil.ReplaceExtension(filepath.Base(inputPath), texExtension)

	if outputDir == "" {
		return filepath.Join(filepath.Dir(inputPath), texName)
	}

	if strings.HasSuffix(outputDir, texExtension) {
		return outputDir
	}

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			relDir := filepath.Dir(relPath)
			return filepath.Join(outputDir, relDir, texName)
		}
	}

	return filepath.Join(outputDir, texName)
}

// validateMarkdownExtension checks that the file has a .md or .markdown extension.
func validateMarkdownExtension(path string) error {
	if !fileutil.IsMarkdownFile(path) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(path))
	}
	return nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > config.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, config.MaxWorkers)
	}
	return nil
}

// resolveWorkers returns the worker count for n files.
// 0 means GOMAXPROCS (set from the CPU quota at startup), capped at
// config.MaxWorkers. The result never exceeds the number of files.
func resolveWorkers(workers, files int) int {
	n := workers
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n > config.MaxWorkers {
		n = config.MaxWorkers
	}
	if n > files {
		n = files
	}
	if n < 1 {
		n = 1
	}
	return n
}
