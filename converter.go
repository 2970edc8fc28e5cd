package md2tex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/alnah/go-md2tex/internal/assets"
	"github.com/alnah/go-md2tex/internal/pipeline"
)

// Converter rewrites PNG and CSV image embeds into LaTeX figure and table
// blocks. Create with NewConverter(). A Converter holds no per-run state and
// is safe for concurrent use.
type Converter struct {
	cfg               converterConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	templateSet       TemplateSet
	transcoder        pipeline.LineTranscoder
	inspector         pipeline.EmbedInspector
	highlighter       pipeline.Highlighter
}

// publicToInternalAdapter wraps public AssetLoader to internal assets.AssetLoader.
type publicToInternalAdapter struct {
	pub AssetLoader
}

func (a *publicToInternalAdapter) LoadTemplateSet(name string) (*assets.TemplateSet, error) {
	ts, err := a.pub.LoadTemplateSet(name)
	if err != nil {
		return nil, err
	}
	return &assets.TemplateSet{
		Name:   ts.Name,
		Figure: ts.Figure,
		Table:  ts.Table,
	}, nil
}

func (a *publicToInternalAdapter) ListTemplateSets() ([]string, error) {
	return a.pub.ListTemplateSets()
}

// NewConverter creates a Converter using the built-in "default" templates.
// Use options to customize behavior (e.g., WithTemplateName, WithAssetPath).
// Returns error if template loading or validation fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{templateName: DefaultTemplateSet},
		assetLoader: assets.NewEmbeddedLoader(),
		inspector:   pipeline.NewGoldmarkInspector(),
	}

	for _, opt := range opts {
		opt(c)
	}

	// Handle WithAssetPath: resolve to internal loader
	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
	}

	// Handle WithAssetLoader (public interface): wrap to internal interface
	if c.publicAssetLoader != nil {
		c.assetLoader = &publicToInternalAdapter{pub: c.publicAssetLoader}
	}

	ts, err := c.resolveTemplateSet()
	if err != nil {
		return nil, err
	}
	c.templateSet = *ts

	figure, err := pipeline.NewTemplate(ts.Figure)
	if err != nil {
		return nil, wrapError(ErrMissingPlaceholder, fmt.Errorf("template set %q: figure: %w", ts.Name, err))
	}
	table, err := pipeline.NewTemplate(ts.Table)
	if err != nil {
		return nil, wrapError(ErrMissingPlaceholder, fmt.Errorf("template set %q: table: %w", ts.Name, err))
	}

	if c.transcoder == nil {
		c.transcoder = pipeline.NewTranscoder(figure, table)
	}
	if c.highlighter == nil {
		c.highlighter = pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
	}

	return c, nil
}

// resolveTemplateSet returns the set given by WithTemplateSet, or loads the
// configured name through the asset loader.
func (c *Converter) resolveTemplateSet() (*TemplateSet, error) {
	if c.cfg.templateSet != nil {
		return c.cfg.templateSet, nil
	}

	ts, err := c.assetLoader.LoadTemplateSet(c.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("loading template set %q: %w", c.cfg.templateName, convertAssetError(err))
	}
	return NewTemplateSet(ts.Name, ts.Figure, ts.Table), nil
}

// TemplateSet returns a copy of the templates in use.
func (c *Converter) TemplateSet() TemplateSet {
	return c.templateSet
}

// Convert transcodes input.Markdown and returns the LaTeX with statistics.
// Empty input yields empty output.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	var buf bytes.Buffer
	buf.Grow(len(input.Markdown))

	stats, err := c.ConvertStream(ctx, strings.NewReader(input.Markdown), &buf)
	if err != nil {
		return nil, err
	}

	return &ConvertResult{LaTeX: buf.Bytes(), Stats: stats}, nil
}

// ConvertStream transcodes r to w line by line.
// Cancellation is checked between lines; on error, Stats counts the lines
// handled so far and w may hold partial output.
func (c *Converter) ConvertStream(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	st, err := c.transcoder.Transcode(ctx, r, w)
	return Stats(st), mapPipelineError(err)
}

// Lines returns the lazy sequence of emissions for r, one per input line,
// without trailing newlines. The sequence reads r as it is consumed and can
// be ranged over only once.
func (c *Converter) Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for line, err := range c.transcoder.Lines(r) {
			if !yield(line, mapPipelineError(err)) {
				return
			}
		}
	}
}

// Inspect parses markdown and reports embeds whose conversion differs from
// their rendered meaning. Findings are sorted by line.
func (c *Converter) Inspect(ctx context.Context, markdown []byte) ([]Finding, error) {
	found, err := c.inspector.Inspect(ctx, markdown)
	if err != nil {
		return nil, err
	}

	findings := make([]Finding, len(found))
	for i, f := range found {
		findings[i] = Finding{
			Line:   f.Line,
			Path:   f.Path,
			Text:   f.Text,
			Reason: string(f.Reason),
		}
	}
	return findings, nil
}

// Highlight writes latex to w with ANSI colors for terminal display.
func (c *Converter) Highlight(ctx context.Context, w io.Writer, latex []byte) error {
	if err := c.highlighter.Highlight(ctx, w, string(latex)); err != nil {
		if errors.Is(err, pipeline.ErrHighlight) {
			return wrapError(ErrHighlight, err)
		}
		return err
	}
	return nil
}

// HighlightStyles returns the style names accepted by WithHighlightStyle.
// Unknown names fall back to the default style.
func HighlightStyles() []string {
	return pipeline.Styles()
}

// mapPipelineError maps internal transcoding errors to public sentinels.
// Context errors pass through unchanged.
func mapPipelineError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pipeline.ErrReadLine):
		return wrapError(ErrReadInput, err)
	case errors.Is(err, pipeline.ErrWriteLine):
		return wrapError(ErrWriteOutput, err)
	default:
		return err
	}
}
