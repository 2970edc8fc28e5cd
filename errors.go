package md2tex

import "errors"

// Sentinel errors for library operations.
var (
	// ErrReadInput indicates the Markdown source could not be read.
	ErrReadInput = errors.New("failed to read input")

	// ErrWriteOutput indicates the LaTeX destination could not be written.
	ErrWriteOutput = errors.New("failed to write output")

	// ErrHighlight indicates terminal highlighting of LaTeX failed.
	ErrHighlight = errors.New("LaTeX highlighting failed")

	// Template errors.
	ErrMissingPlaceholder = errors.New("template missing ---path--- placeholder")

	// Asset loading errors.
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
