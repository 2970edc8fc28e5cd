package assets

// TemplateSet holds the LaTeX templates for one output flavor.
type TemplateSet struct {
	Name   string // Identifier (name or directory path)
	Figure string // Block emitted for PNG embeds
	Table  string // Block emitted for CSV embeds
}

// DefaultTemplateSetName is the name of the built-in template set.
const DefaultTemplateSetName = "default"

// Template file names inside a set directory.
const (
	FigureFile = "figure.tex"
	TableFile  = "table.tex"
)
