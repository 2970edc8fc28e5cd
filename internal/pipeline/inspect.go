package pipeline

import (
	"bytes"
	"context"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Reason explains why an embed is reported by the inspector.
type Reason string

// Inspection reasons.
const (
	ReasonTrailingText   Reason = "text after the embed keeps the line from converting"
	ReasonExtensionCase  Reason = "extension must be lowercase .png or .csv"
	ReasonCarriageReturn Reason = "line ends with a carriage return (CRLF input)"
	ReasonSharedLine     Reason = "another embed on the same line is converted instead"
	ReasonUnmatched      Reason = "embed syntax not recognized by the converter"
	ReasonInCodeBlock    Reason = "embed inside a code block will be converted"
)

// Finding is an embed whose conversion differs from what the Markdown shows.
type Finding struct {
	Line   int    `json:"line"` // 1-based
	Path   string `json:"path"`
	Text   string `json:"text"`
	Reason Reason `json:"reason"`
}

// EmbedInspector reports embeds the line transcoder handles surprisingly.
type EmbedInspector interface {
	Inspect(ctx context.Context, content []byte) ([]Finding, error)
}

// GoldmarkInspector parses Markdown with goldmark and compares every image
// it finds against the line classification.
type GoldmarkInspector struct {
	md goldmark.Markdown
}

// NewGoldmarkInspector creates a GoldmarkInspector using CommonMark parsing.
func NewGoldmarkInspector() *GoldmarkInspector {
	return &GoldmarkInspector{md: goldmark.New()}
}

// Inspect returns findings sorted by line.
func (g *GoldmarkInspector) Inspect(ctx context.Context, content []byte) ([]Finding, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := g.md.Parser().Parse(text.NewReader(content))

	var findings []Finding
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			findings = append(findings, inspectCodeLines(content, node)...)
			return ast.WalkSkipChildren, nil
		case *ast.Image:
			if f, ok := inspectImage(content, node); ok {
				findings = append(findings, f)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(findings, func(i, j int) bool {
		return findings[i].Line < findings[j].Line
	})
	return findings, nil
}

// inspectCodeLines reports code block lines the transcoder would rewrite.
func inspectCodeLines(source []byte, block ast.Node) []Finding {
	var findings []Finding
	lines := block.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		start, end := lineBounds(source, seg.Start)
		line := string(source[start:end])
		if e := Classify(line); e.Kind != KindPlain {
			findings = append(findings, Finding{
				Line:   lineNumber(source, start),
				Path:   e.Path,
				Text:   line,
				Reason: ReasonInCodeBlock,
			})
		}
	}
	return findings
}

// inspectImage checks a single image node against its source line.
func inspectImage(source []byte, img *ast.Image) (Finding, bool) {
	dest := string(img.Destination)
	if !hasEmbedExtension(dest) {
		return Finding{}, false
	}

	offset, ok := imageOffset(source, img)
	if !ok {
		return Finding{}, false
	}
	start, end := lineBounds(source, offset)
	line := string(source[start:end])

	f := Finding{Line: lineNumber(source, start), Path: dest, Text: line}

	e := Classify(line)
	switch {
	case e.Kind != KindPlain && e.Path == dest:
		return Finding{}, false
	case e.Kind != KindPlain:
		f.Reason = ReasonSharedLine
	case strings.HasSuffix(line, "\r") && Classify(strings.TrimSuffix(line, "\r")).Kind != KindPlain:
		f.Reason = ReasonCarriageReturn
	case !hasLowerExtension(dest):
		f.Reason = ReasonExtensionCase
	case hasTrailingText(line, dest):
		f.Reason = ReasonTrailingText
	default:
		f.Reason = ReasonUnmatched
	}
	return f, true
}

// imageOffset finds the source offset of the line holding img.
// It searches the lines of the enclosing block for the destination and
// falls back to the block's first line.
func imageOffset(source []byte, img *ast.Image) (int, bool) {
	var block ast.Node = img
	for block != nil && block.Type() != ast.TypeBlock {
		block = block.Parent()
	}
	if block == nil {
		return 0, false
	}

	lines := block.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0, false
	}

	needle := append([]byte("]("), img.Destination...)
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		if bytes.Contains(seg.Value(source), needle) {
			return seg.Start, true
		}
	}
	return lines.At(0).Start, true
}

// lineBounds returns [start, end) of the source line containing offset,
// excluding the terminating '\n'.
func lineBounds(source []byte, offset int) (int, int) {
	if offset > len(source) {
		offset = len(source)
	}
	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	end := bytes.IndexByte(source[offset:], '\n')
	if end < 0 {
		return start, len(source)
	}
	return start, offset + end
}

// lineNumber returns the 1-based line number of a line starting at offset.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

// hasEmbedExtension reports whether dest ends in .png or .csv, any case.
func hasEmbedExtension(dest string) bool {
	ext := strings.ToLower(path.Ext(dest))
	return ext == ".png" || ext == ".csv"
}

// hasLowerExtension reports whether dest ends in exactly .png or .csv.
func hasLowerExtension(dest string) bool {
	return strings.HasSuffix(dest, ".png") || strings.HasSuffix(dest, ".csv")
}

// hasTrailingText reports whether anything follows "](dest)" on the line.
func hasTrailingText(line, dest string) bool {
	needle := "](" + dest + ")"
	i := strings.LastIndex(line, needle)
	if i < 0 {
		return false
	}
	return i+len(needle) < len(line)
}

// Compile-time interface check.
var _ EmbedInspector = (*GoldmarkInspector)(nil)
