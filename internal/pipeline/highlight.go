package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrHighlight indicates terminal highlighting failed.
var ErrHighlight = errors.New("LaTeX highlighting failed")

// Highlighting defaults for terminal previews.
const (
	highlightLexer     = "latex"
	highlightFormatter = "terminal256"
	DefaultStyle       = "monokai"
)

// Highlighter renders LaTeX source with ANSI colors for terminal display.
type Highlighter interface {
	Highlight(ctx context.Context, w io.Writer, latex string) error
}

// ChromaHighlighter highlights LaTeX using chroma's TeX lexer.
type ChromaHighlighter struct {
	style string
}

// NewChromaHighlighter creates a ChromaHighlighter.
// An empty style selects DefaultStyle.
func NewChromaHighlighter(style string) *ChromaHighlighter {
	if style == "" {
		style = DefaultStyle
	}
	return &ChromaHighlighter{style: style}
}

// Highlight writes the colored source to w.
func (h *ChromaHighlighter) Highlight(ctx context.Context, w io.Writer, latex string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := quick.Highlight(w, latex, highlightLexer, highlightFormatter, h.style); err != nil {
		return fmt.Errorf("%w: %v", ErrHighlight, err)
	}
	return nil
}

// Styles returns the registered chroma style names, sorted.
func Styles() []string {
	return styles.Names()
}

// Compile-time interface check.
var _ Highlighter = (*ChromaHighlighter)(nil)
