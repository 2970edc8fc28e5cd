package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/alnah/go-md2tex/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Sentinel errors for command dispatch.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
)

// commands lists the subcommand names.
var commands = map[string]bool{
	"convert":    true,
	"lint":       true,
	"doctor":     true,
	"completion": true,
	"version":    true,
	"help":       true,
}

func main() {
	configureMaxProcs(hasVerboseFlag(os.Args[1:]), os.Stderr)
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// configureMaxProcs sets GOMAXPROCS from the container CPU quota.
// The batch worker default reads GOMAXPROCS afterwards.
func configureMaxProcs(verbose bool, w io.Writer) {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}))
		return
	}
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
}

// runMain dispatches args[1] to a command and returns the exit code.
// Without a command, md2tex converts the configured input (rapport.md) to
// stdout; a leading flag or Markdown path is treated as convert arguments.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	var rest []string
	if len(args) > 1 {
		rest = args[1:]
	}

	if len(rest) == 0 || !isCommand(rest[0]) {
		if len(rest) > 0 && !strings.HasPrefix(rest[0], "-") && !looksLikeMarkdown(rest[0]) && !fileutil.DirExists(rest[0]) {
			err := fmt.Errorf("%w: %s", ErrUnknownCommand, rest[0])
			fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
			printUsage(env.Stderr)
			return exitCodeFor(err)
		}
		return report(env, runConvert(ctx, rest, env))
	}

	cmdArgs := rest[1:]
	switch rest[0] {
	case "convert":
		return report(env, runConvert(ctx, cmdArgs, env))
	case "lint":
		return report(env, runLint(ctx, cmdArgs, env))
	case "doctor":
		return runDoctorCmd(cmdArgs, env)
	case "completion":
		return report(env, runCompletion(cmdArgs, env))
	case "version":
		fmt.Fprintf(env.Stdout, "md2tex %s\n", Version)
		return ExitSuccess
	default: // help
		return runHelp(cmdArgs, env)
	}
}

// report prints err to stderr and returns its exit code.
func report(env *Environment, err error) int {
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
	}
	return exitCodeFor(err)
}

// isCommand reports whether s names a subcommand (case-sensitive).
func isCommand(s string) bool {
	return commands[s]
}

// looksLikeMarkdown reports whether s has a Markdown extension.
func looksLikeMarkdown(s string) bool {
	return fileutil.IsMarkdownFile(s)
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}
