package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/hints"
)

// ErrLintFindings is returned by lint --strict when findings exist.
var ErrLintFindings = errors.New("embeds will not convert as written")

// Inspector is the part of md2tex.Converter used by lint.
type Inspector interface {
	Inspect(ctx context.Context, markdown []byte) ([]md2tex.Finding, error)
}

// Compile-time interface implementation check.
var _ Inspector = (*md2tex.Converter)(nil)

// lintReport is one finding with the document it came from.
type lintReport struct {
	File string `json:"file"`
	md2tex.Finding
}

// runLint reports image embeds that convert differently than they render.
// Findings are informational unless --strict is set.
func runLint(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseLintFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printLintUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: lint takes one input, got %d", ErrUsage, len(rest))
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if flags.templates.name != "" {
		cfg.Templates.Name = flags.templates.name
	}
	if flags.templates.assetPath != "" {
		cfg.Templates.BasePath = flags.templates.assetPath
	}

	conv, err := newConverter(cfg, "", env)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(rest, cfg)
	if err != nil {
		return err
	}

	reports, files, err := lintInput(ctx, conv, inputPath, env)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %v%s", ErrReadMarkdown, err, hints.ForInputNotFound(inputPath, cfg.Input.File))
		}
		return err
	}

	if flags.json {
		if err := writeLintJSON(env.Stdout, reports); err != nil {
			return err
		}
	} else {
		printLintReports(env.Stdout, reports, files, flags.common.quiet)
	}

	if flags.strict && len(reports) > 0 {
		return fmt.Errorf("%w: %d finding(s)%s", ErrLintFindings, len(reports), hints.ForLintFindings())
	}
	return nil
}

// lintInput inspects stdin, a file, or every Markdown file below a
// directory. Returns the findings and the number of documents read.
func lintInput(ctx context.Context, insp Inspector, inputPath string, env *Environment) ([]lintReport, int, error) {
	if inputPath == stdinArg {
		content, err := io.ReadAll(env.Stdin)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		reports, err := lintContent(ctx, insp, "stdin", content)
		return reports, 1, err
	}

	// Output paths are not used; discovery only lists the documents.
	files, err := discoverFiles(inputPath, "")
	if err != nil {
		return nil, 0, err
	}

	var reports []lintReport
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		found, err := lintContent(ctx, insp, f.InputPath, content)
		if err != nil {
			return nil, 0, err
		}
		reports = append(reports, found...)
	}
	return reports, len(files), nil
}

// lintContent inspects a single document.
func lintContent(ctx context.Context, insp Inspector, name string, content []byte) ([]lintReport, error) {
	findings, err := insp.Inspect(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("inspecting %s: %w", name, err)
	}

	reports := make([]lintReport, len(findings))
	for i, f := range findings {
		reports[i] = lintReport{File: name, Finding: f}
	}
	return reports, nil
}

// writeLintJSON writes reports as an indented JSON array ([] when empty).
func writeLintJSON(w io.Writer, reports []lintReport) error {
	if reports == nil {
		reports = []lintReport{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

// printLintReports writes one "file:line: reason" entry per finding,
// followed by the offending line and a summary.
func printLintReports(w io.Writer, reports []lintReport, files int, quiet bool) {
	for _, r := range reports {
		fmt.Fprintf(w, "%s:%d: %s\n", r.File, r.Line, r.Reason)
		fmt.Fprintf(w, "    %s\n", r.Text)
	}
	if quiet {
		return
	}
	if len(reports) > 0 {
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d finding(s) in %d file(s)\n", len(reports), files)
}
