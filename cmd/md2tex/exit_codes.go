package main

import (
	"errors"
	"os"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
)

// Exit codes for md2tex CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error, lint findings in strict mode
	ExitUsage   = 2 // Invalid flags, config, or templates
	ExitIO      = 3 // File not found, permission denied, read/write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/template errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidWorkers) ||
		errors.Is(err, md2tex.ErrTemplateSetNotFound) ||
		errors.Is(err, md2tex.ErrIncompleteTemplateSet) ||
		errors.Is(err, md2tex.ErrInvalidAssetPath) ||
		errors.Is(err, md2tex.ErrMissingPlaceholder) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteLaTeX) ||
		errors.Is(err, md2tex.ErrReadInput) ||
		errors.Is(err, md2tex.ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
