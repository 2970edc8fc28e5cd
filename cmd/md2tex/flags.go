package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// templateFlags selects the figure and table templates.
type templateFlags struct {
	name      string // Template set name
	assetPath string // Directory holding templates/{name}/
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	templates templateFlags
	output    string
	workers   int
	highlight bool
	style     string
}

// lintFlags holds flags for the lint command.
type lintFlags struct {
	common    commonFlags
	templates templateFlags
	json      bool
	strict    bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common    commonFlags
	templates templateFlags
	json      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show statistics and timing")
}

// addTemplateFlags adds template selection flags to a FlagSet.
func addTemplateFlags(fs *flag.FlagSet, f *templateFlags) {
	fs.StringVarP(&f.name, "templates", "t", "", "template set name (default \"default\")")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory with templates/<name>/figure.tex and table.tex")
}

// newConvertFlagSet registers convert flags into f.
// Shared by parsing and shell completion.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output .tex file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers for directories (0 = auto)")
	fs.BoolVar(&f.highlight, "highlight", false, "color LaTeX written to a terminal")
	fs.StringVar(&f.style, "style", "", "highlight color style (default \"monokai\")")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.templates)
	return fs
}

// newLintFlagSet registers lint flags into f.
func newLintFlagSet(f *lintFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("lint", flag.ContinueOnError)

	fs.BoolVar(&f.json, "json", false, "print findings as JSON")
	fs.BoolVar(&f.strict, "strict", false, "exit with an error when findings exist")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.templates)
	return fs
}

// newDoctorFlagSet registers doctor flags into f.
func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)

	fs.BoolVar(&f.json, "json", false, "print results as JSON")

	addCommonFlags(fs, &f.common)
	addTemplateFlags(fs, &f.templates)
	return fs
}

// parseFlagSet parses args with fs, keeping pflag quiet.
// Returns flag.ErrHelp unchanged; other errors are wrapped as ErrUsage.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	rest, err := parseFlagSet(newConvertFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseLintFlags parses lint command flags and returns positional args.
func parseLintFlags(args []string) (*lintFlags, []string, error) {
	f := &lintFlags{}
	rest, err := parseFlagSet(newLintFlagSet(f), args)
	if err != nil {
		return nil, nil, err
	}
	return f, rest, nil
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	f := &doctorFlags{}
	rest, err := parseFlagSet(newDoctorFlagSet(f), args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: doctor takes no arguments, got %q", ErrUsage, rest[0])
	}
	return f, nil
}
