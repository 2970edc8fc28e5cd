package md2tex

// Input contains conversion parameters.
type Input struct {
	Markdown string // Document content; may be empty
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	LaTeX []byte // One emission per input line, each followed by '\n'
	Stats Stats
}

// Stats counts what a conversion emitted.
type Stats struct {
	Lines   int // Input lines read
	Figures int // PNG embeds rewritten as figure blocks
	Tables  int // CSV embeds rewritten as table blocks
}

// Plain returns the number of lines passed through unchanged.
func (s Stats) Plain() int {
	return s.Lines - s.Figures - s.Tables
}

// Add returns the sum of two Stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Lines:   s.Lines + o.Lines,
		Figures: s.Figures + o.Figures,
		Tables:  s.Tables + o.Tables,
	}
}

// Finding reports an image embed whose conversion differs from what the
// Markdown suggests: an embed that stays plain text, or one inside a code
// block that gets rewritten anyway.
type Finding struct {
	Line   int    `json:"line"` // 1-based
	Path   string `json:"path"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	templateName   string
	templateSet    *TemplateSet
	assetPath      string
	highlightStyle string
}

// WithTemplateName selects a template set by name from the asset loader.
// Defaults to DefaultTemplateSet.
func WithTemplateName(name string) Option {
	return func(c *Converter) {
		c.cfg.templateName = name
	}
}

// WithTemplateSet uses the given templates directly, bypassing the loader.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(c *Converter) {
		c.cfg.templateSet = ts
	}
}

// WithAssetPath loads template sets from basePath/templates/{name}/,
// falling back to the built-in sets.
func WithAssetPath(basePath string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = basePath
	}
}

// WithAssetLoader uses a custom AssetLoader. Takes precedence over WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(c *Converter) {
		c.publicAssetLoader = loader
	}
}

// WithHighlightStyle sets the Chroma style used by Highlight.
func WithHighlightStyle(style string) Option {
	return func(c *Converter) {
		c.cfg.highlightStyle = style
	}
}
