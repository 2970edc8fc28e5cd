// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForInputNotFound returns hints for a missing input document.
// defaultName is the file converted when no argument is given.
func ForInputNotFound(path, defaultName string) string {
	if filepath.Base(path) == defaultName {
		return format("run md2tex where " + defaultName + " lives, or pass a file: md2tex convert FILE")
	}
	return format("check the path; pass a directory to convert every .md file in it")
}

// ForLaTeXToolchain returns hints for a missing pdflatex/latexmk.
// The generated LaTeX needs \mymaxwidth defined and the csvsimple package.
func ForLaTeXToolchain() string {
	hints := []string{"output still converts; install TeX Live to compile it"}
	if IsInContainer() {
		hints = append(hints, "in Debian-based images: apt-get install texlive-latex-extra")
	}
	hints = append(hints, "preamble needs \\usepackage{csvsimple} and \\mymaxwidth")
	return formatHints(hints)
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2tex/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-md2tex/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateSetNotFound returns hints listing the available template sets.
func ForTemplateSetNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForMissingPlaceholder returns hints for templates without ---path---.
func ForMissingPlaceholder() string {
	return format("figure.tex and table.tex must contain ---path---; ---caption--- is optional")
}

// ForLintFindings returns hints for lint failures in strict mode.
func ForLintFindings() string {
	return format("embeds must end the line and use lowercase .png or .csv")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
