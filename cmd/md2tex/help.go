package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, md2tex converts rapport.md to LaTeX on stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert Markdown embeds to LaTeX (default)")
	fmt.Fprintln(w, "  lint        Report embeds that will not convert")
	fmt.Fprintln(w, "  doctor      Check templates and LaTeX toolchain")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2tex help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex convert [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rewrite ![caption](file.png) lines as figure blocks and")
	fmt.Fprintln(w, "![caption](file.csv) lines as \\csvautotabular tables.")
	fmt.Fprintln(w, "Other lines are copied unchanged.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file, directory, or - for stdin")
	fmt.Fprintln(w, "           (default: input.defaultDir, then input.file, then rapport.md)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output .tex file or directory (default: stdout)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers for directories (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Templates:")
	fmt.Fprintln(w, "  -t, --templates <name>    Template set: default, portable, or custom")
	fmt.Fprintln(w, "      --asset-path <dir>    Directory with templates/<name>/figure.tex and table.tex")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Terminal:")
	fmt.Fprintln(w, "      --highlight           Color LaTeX written to stdout")
	fmt.Fprintln(w, "      --style <name>        Highlight style (default: monokai)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show statistics and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2TEX_CONFIG, MD2TEX_INPUT, MD2TEX_OUTPUT_DIR, MD2TEX_TEMPLATES,")
	fmt.Fprintln(w, "  MD2TEX_ASSET_PATH, MD2TEX_WORKERS (flags take precedence)")
}

// printLintUsage prints usage for the lint command.
func printLintUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex lint [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report image embeds that convert differently than they render:")
	fmt.Fprintln(w, "embeds followed by text, uppercase extensions, CRLF lines, and")
	fmt.Fprintln(w, "embeds inside code blocks.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print findings as JSON")
	fmt.Fprintln(w, "      --strict              Exit 1 when findings exist")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --templates <name>    Template set (checked before linting)")
	fmt.Fprintln(w, "      --asset-path <dir>    Template base directory")
	fmt.Fprintln(w, "  -q, --quiet               Omit the summary line")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check configuration, templates, and the LaTeX toolchain.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json                Print results as JSON")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --templates <name>    Template set to check")
	fmt.Fprintln(w, "      --asset-path <dir>    Template base directory to check")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "lint":
		printLintUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2tex version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2tex help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "error: %v: %s\n\n", ErrUnknownCommand, args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
