package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// Template placeholders, replaced verbatim (no LaTeX escaping).
const (
	PathPlaceholder    = "---path---"
	CaptionPlaceholder = "---caption---"
)

// ErrMissingPlaceholder indicates a template lacks the path placeholder.
var ErrMissingPlaceholder = errors.New("template missing " + PathPlaceholder + " placeholder")

// Template is a LaTeX block with path and caption placeholders.
type Template struct {
	text string
}

// NewTemplate validates text and returns a Template.
// The path placeholder is required; the caption placeholder is optional.
func NewTemplate(text string) (Template, error) {
	if !strings.Contains(text, PathPlaceholder) {
		return Template{}, fmt.Errorf("%w: %q", ErrMissingPlaceholder, abbreviate(text))
	}
	return Template{text: text}, nil
}

// MustTemplate is like NewTemplate but panics on error.
// Intended for package-level templates known to be valid.
func MustTemplate(text string) Template {
	t, err := NewTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// Render substitutes the embed's caption, then its path.
func (t Template) Render(e Embed) string {
	out := strings.ReplaceAll(t.text, CaptionPlaceholder, e.Caption)
	return strings.ReplaceAll(out, PathPlaceholder, e.Path)
}

// String returns the raw template text.
func (t Template) String() string {
	return t.text
}

// abbreviate shortens template text for error messages.
func abbreviate(s string) string {
	const maxLen = 40
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
