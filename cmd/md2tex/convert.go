package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput      = errors.New("no input specified")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteLaTeX   = errors.New("failed to write LaTeX file")
)

// stdinArg selects standard input as the document.
const stdinArg = "-"

// CLIConverter is the part of md2tex.Converter used by the CLI.
type CLIConverter interface {
	ConvertStream(ctx context.Context, r io.Reader, w io.Writer) (md2tex.Stats, error)
	Highlight(ctx context.Context, w io.Writer, latex []byte) error
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2tex.Converter)(nil)

// runConvert parses flags and converts a file, stdin, or a directory.
// A single document goes to stdout unless an output path is configured;
// directories always produce one .tex file per Markdown file.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseConvertFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printConvertUsage(env.Stdout)
		return nil
	}
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: convert takes one input, got %d", ErrUsage, len(rest))
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)

	conv, err := newConverter(cfg, flags.style, env)
	if err != nil {
		return err
	}

	inputPath, err := resolveInputPath(rest, cfg)
	if err != nil {
		return err
	}

	if inputPath == stdinArg {
		return convertReader(ctx, conv, env.Stdin, "stdin", flags.output, flags, env)
	}

	info, err := os.Stat(inputPath)
	if err != nil {
		return fmt.Errorf("%w: %v%s", ErrReadMarkdown, err, hints.ForInputNotFound(inputPath, cfg.Input.File))
	}

	if !info.IsDir() {
		if err := validateMarkdownExtension(inputPath); err != nil {
			return err
		}
		outputDir := resolveOutputDir(flags.output, cfg)
		if outputDir == "" {
			return convertPath(ctx, conv, inputPath, flags, env)
		}
	}

	return convertTree(ctx, conv, inputPath, cfg, flags, env)
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.templates.name != "" {
		cfg.Templates.Name = flags.templates.name
	}
	if flags.templates.assetPath != "" {
		cfg.Templates.BasePath = flags.templates.assetPath
	}
	if flags.workers > 0 {
		cfg.Batch.Workers = flags.workers
	}
}

// resolveInputPath determines the input from args or config.
// Priority: argument > input.defaultDir > input.file.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	if cfg.Input.File != "" {
		return cfg.Input.File, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output location from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// newConverter builds a converter from the template settings in cfg.
func newConverter(cfg *config.Config, style string, env *Environment) (*md2tex.Converter, error) {
	loader, err := templateLoader(cfg, env)
	if err != nil {
		return nil, fmt.Errorf("templates: %w", err)
	}

	conv, err := md2tex.NewConverter(
		md2tex.WithAssetLoader(loader),
		md2tex.WithTemplateName(cfg.Templates.Name),
		md2tex.WithHighlightStyle(style),
	)
	if err != nil {
		return nil, fmt.Errorf("%w%s", err, templateHint(err, loader))
	}
	return conv, nil
}

// templateLoader returns the loader for cfg: the configured base path with
// embedded fallback, or the environment's loader.
func templateLoader(cfg *config.Config, env *Environment) (md2tex.AssetLoader, error) {
	if cfg.Templates.BasePath != "" || env.AssetLoader == nil {
		return md2tex.NewAssetLoader(cfg.Templates.BasePath)
	}
	return env.AssetLoader, nil
}

// templateHint returns a hint for template errors, or "".
func templateHint(err error, loader md2tex.AssetLoader) string {
	switch {
	case errors.Is(err, md2tex.ErrTemplateSetNotFound):
		names, listErr := loader.ListTemplateSets()
		if listErr != nil {
			return ""
		}
		return hints.ForTemplateSetNotFound(names)
	case errors.Is(err, md2tex.ErrMissingPlaceholder):
		return hints.ForMissingPlaceholder()
	default:
		return ""
	}
}

// configHint returns a hint for a missing config, or "".
// Names list the locations searched; paths only suggest --config.
func configHint(err error, nameOrPath string) string {
	if !errors.Is(err, config.ErrConfigNotFound) {
		return ""
	}
	if fileutil.IsFilePath(nameOrPath) {
		return hints.ForConfigNotFound(nil)
	}
	return hints.ForConfigNotFound(config.SearchPaths(nameOrPath))
}

// convertPath converts one file to stdout.
func convertPath(ctx context.Context, conv CLIConverter, path string, flags *convertFlags, env *Environment) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided path
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadMarkdown, err)
	}
	defer func() { _ = f.Close() }()

	return convertReader(ctx, conv, f, path, "", flags, env)
}

// convertReader converts r to outputPath, or to stdout when outputPath is
// empty. name labels verbose statistics.
func convertReader(ctx context.Context, conv CLIConverter, r io.Reader, name, outputPath string, flags *convertFlags, env *Environment) error {
	start := env.Now()

	if outputPath != "" {
		var buf bytes.Buffer
		stats, err := conv.ConvertStream(ctx, r, &buf)
		if err != nil {
			return err
		}
		if err := fileutil.WriteAtomic(outputPath, &buf); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteLaTeX, err, hints.ForOutputDirectory())
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", outputPath)
		}
		printStats(env, flags.common.verbose, name, stats, env.Now().Sub(start))
		return nil
	}

	stats, err := writeLaTeX(ctx, conv, r, env.Stdout, flags.highlight)
	if err != nil {
		return err
	}
	printStats(env, flags.common.verbose, name, stats, env.Now().Sub(start))
	return nil
}

// writeLaTeX streams the conversion of r to w. With highlight set, the
// output is buffered and colored before writing.
func writeLaTeX(ctx context.Context, conv CLIConverter, r io.Reader, w io.Writer, highlight bool) (md2tex.Stats, error) {
	if !highlight {
		return conv.ConvertStream(ctx, r, w)
	}

	var buf bytes.Buffer
	stats, err := conv.ConvertStream(ctx, r, &buf)
	if err != nil {
		return stats, err
	}
	return stats, conv.Highlight(ctx, w, buf.Bytes())
}

// printStats writes per-document statistics to stderr in verbose mode.
func printStats(env *Environment, verbose bool, name string, s md2tex.Stats, d time.Duration) {
	if !verbose {
		return
	}
	fmt.Fprintf(env.Stderr, "%s: %s (%v)\n", name, formatStats(s), d.Round(time.Millisecond))
}

// formatStats renders Stats as "N figures, M tables, K lines".
func formatStats(s md2tex.Stats) string {
	return fmt.Sprintf("%d figures, %d tables, %d lines", s.Figures, s.Tables, s.Lines)
}
