package pipeline

import (
	"regexp"
	"strings"
)

// Kind classifies a source line.
type Kind int

// Line kinds. Every line belongs to exactly one.
const (
	KindPlain  Kind = iota // passed through unchanged
	KindFigure             // ![caption](path.png) at end of line
	KindTable              // ![caption](path.csv) at end of line
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFigure:
		return "figure"
	case KindTable:
		return "table"
	default:
		return "plain"
	}
}

// Precompiled embed patterns.
// Both are searched (not start-anchored) and must end the line.
var (
	// ![caption](path.png)
	pngEmbed = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+\.png)\)$`)

	// ![caption](path.csv)
	csvEmbed = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+\.csv)\)$`)
)

// Embed is an image-embed reference parsed from a line.
type Embed struct {
	Kind    Kind
	Caption string // never contains ']'
	Path    string // never contains ')'; ends in .png or .csv
}

// Classify matches a single line (without its trailing newline) against the
// embed patterns. The PNG pattern is tried first. For plain lines the
// returned Embed has KindPlain and empty fields.
func Classify(line string) Embed {
	if m := pngEmbed.FindStringSubmatch(line); m != nil {
		return Embed{Kind: KindFigure, Caption: m[1], Path: m[2]}
	}
	if m := csvEmbed.FindStringSubmatch(line); m != nil {
		return Embed{Kind: KindTable, Caption: m[1], Path: m[2]}
	}
	return Embed{Kind: KindPlain}
}

// trimNewline removes exactly one trailing '\n'.
// A preceding '\r' and any other trailing whitespace are kept.
func trimNewline(line string) string {
	return strings.TrimSuffix(line, "\n")
}
