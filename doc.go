// Package md2tex converts Markdown-like documents to LaTeX source by
// rewriting image embeds line by line.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := md2tex.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2tex.Input{
//	    Markdown: "Intro\n![Sales](chart.png)\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("rapport.tex", result.LaTeX, 0644)
//
// # Conversion Rules
//
// Each line is classified on its own, after removing one trailing newline:
//
//  1. A line ending in ![caption](path.png) becomes a figure block
//  2. Otherwise, a line ending in ![caption](path.csv) becomes a table block
//  3. Any other line is copied unchanged
//
// Text before the embed is dropped; text after it disables conversion.
// Extensions are case-sensitive. Captions and paths are inserted verbatim,
// without LaTeX escaping. Every emission is followed by a newline, so blocks
// (whose templates end in a newline) are followed by a blank line.
//
// The default blocks use \mymaxwidth and \csvautotabular (csvsimple); the
// surrounding document must define them.
//
// # Streaming
//
// ConvertStream copies from an io.Reader to an io.Writer, and Lines exposes
// the lazy, single-use sequence of emissions:
//
//	for line, err := range conv.Lines(f) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(line)
//	}
//
// # Custom Templates
//
// Select a built-in set, or override sets from a directory:
//
//	conv, err := md2tex.NewConverter(
//	    md2tex.WithTemplateName("portable"),
//	    md2tex.WithAssetPath("/path/to/assets"),
//	)
//
// Asset directory structure:
//
//	assets/
//	└── templates/
//	    └── thesis/
//	        ├── figure.tex
//	        └── table.tex
//
// Templates use the placeholders ---path--- (required) and ---caption---.
//
// # Inspection
//
// Inspect parses the document with Goldmark and reports embeds that will not
// convert, such as "![a](b.png) (see above)", or that sit in code blocks and
// will convert anyway.
package md2tex
