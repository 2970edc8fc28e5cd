package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	md2tex "github.com/alnah/go-md2tex"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed argument values (shells, commands)
	FilePattern string   // glob for file arguments, comma-separated
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta returns completion metadata keyed by flag name.
// Template and style names are listed at generation time.
func flagCompletionMeta(templateSets []string) map[string]completionMeta {
	return map[string]completionMeta{
		"templates":  {Values: templateSets},
		"style":      {Values: md2tex.HighlightStyles()},
		"config":     {FileGlob: "*.yaml,*.yml"},
		"output":     {IsDir: true},
		"asset-path": {IsDir: true},
	}
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from meta.
func extractFlagsFromFlagSet(fs *flag.FlagSet, meta map[string]completionMeta) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if m, ok := meta[f.Name]; ok {
			switch {
			case len(m.Values) > 0:
				fd.Type = flagEnum
				fd.Values = m.Values
			case m.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = m.FileGlob
			case m.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands(templateSets []string) []commandDef {
	meta := flagCompletionMeta(templateSets)
	names := []string{"convert", "lint", "doctor", "completion", "version", "help"}

	return []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert Markdown embeds to LaTeX",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{}), meta),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:        "lint",
			Desc:        "Report embeds that will not convert",
			Flags:       extractFlagsFromFlagSet(newLintFlagSet(&lintFlags{}), meta),
			FilePattern: "*.md,*.markdown",
		},
		{
			Name:  "doctor",
			Desc:  "Check templates and LaTeX toolchain",
			Flags: extractFlagsFromFlagSet(newDoctorFlagSet(&doctorFlags{}), meta),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: names,
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell, templateSets []string) error {
	cmds := getCommands(templateSets)
	switch shell {
	case ShellBash:
		return generateBash(w, cmds)
	case ShellZsh:
		return generateZsh(w, cmds)
	case ShellFish:
		return generateFish(w, cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		printCompletionUsage(env.Stdout)
		return nil
	}

	var sets []string
	if env.AssetLoader != nil {
		// Listing failures leave --templates without value completion.
		sets, _ = env.AssetLoader.ListTemplateSets()
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]), sets)
}

// commandNames returns the names of cmds, space-separated.
func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

// flagWords returns every spelling of the flags, space-separated.
func flagWords(flags []flagDef) string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	return strings.Join(words, " ")
}

// takesValue reports whether the flag consumes the next word.
func (f flagDef) takesValue() bool {
	return f.Type != flagBool
}

// bashGlob converts "*.md,*.markdown" to "*.@(md|markdown)".
func bashGlob(pattern string) string {
	var exts []string
	for _, p := range strings.Split(pattern, ",") {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.@(" + strings.Join(exts, "|") + ")"
}

// generateBash writes a bash completion function.
func generateBash(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("# bash completion for md2tex\n")
	b.WriteString("# eval \"$(md2tex completion bash)\"\n\n")
	b.WriteString("_md2tex() {\n")
	b.WriteString("    local cur prev cmd i\n")
	b.WriteString("    COMPREPLY=()\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"\"\n")
	b.WriteString("    for ((i = 1; i < COMP_CWORD; i++)); do\n")
	fmt.Fprintf(&b, "        case \"${COMP_WORDS[i]}\" in\n")
	fmt.Fprintf(&b, "            %s) cmd=\"${COMP_WORDS[i]}\"; break ;;\n", strings.ReplaceAll(commandNames(cmds), " ", "|"))
	b.WriteString("        esac\n")
	b.WriteString("    done\n\n")

	b.WriteString("    if [[ -z \"$cmd\" ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		if len(c.Flags) > 0 {
			b.WriteString("        case \"$prev\" in\n")
			for _, f := range c.Flags {
				if !f.takesValue() {
					continue
				}
				pat := "--" + f.Long
				if f.Short != "" {
					pat += "|-" + f.Short
				}
				fmt.Fprintf(&b, "        %s)\n", pat)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", bashGlob(f.FileGlob))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"$cur\"))\n")
				}
				b.WriteString("            return ;;\n")
			}
			b.WriteString("        esac\n")
			b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", flagWords(c.Flags))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"$cur\"))\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -f -X '!%s' -- \"$cur\") $(compgen -d -- \"$cur\"))\n", bashGlob(c.FilePattern))
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -o filenames -F _md2tex md2tex\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes text for a zsh _arguments option description.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

// zshAction returns the _arguments action for a flag.
func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":file:_files -g '" + zshGlob(f.FileGlob) + "'"
	case flagDir:
		return ":directory:_files -/"
	default:
		return ":value:"
	}
}

// zshGlob converts "*.yaml,*.yml" to "*.(yaml|yml)".
func zshGlob(pattern string) string {
	var exts []string
	for _, p := range strings.Split(pattern, ",") {
		exts = append(exts, strings.TrimPrefix(p, "*."))
	}
	return "*.(" + strings.Join(exts, "|") + ")"
}

// generateZsh writes a zsh completion function.
func generateZsh(w io.Writer, cmds []commandDef) error {
	var b strings.Builder

	b.WriteString("#compdef md2tex\n")
	b.WriteString("# eval \"$(md2tex completion zsh)\"\n\n")
	b.WriteString("_md2tex() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${words[1]}\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments \\\n")
		for _, f := range c.Flags {
			action := zshAction(f)
			desc := zshEscape(f.Desc)
			if f.Short != "" {
				fmt.Fprintf(&b, "            '(-%s --%s)'{-%s,--%s}'[%s]%s' \\\n", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, "            '--%s[%s]%s' \\\n", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "            '1:argument:(%s)'\n", strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "            '1:input:_files -g \"%s\"'\n", zshGlob(c.FilePattern))
		default:
			b.WriteString("            ''\n")
		}
		b.WriteString("        ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2tex md2tex\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// fishEscape escapes text for a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}

// generateFish writes fish completion commands.
func generateFish(w io.Writer, cmds []commandDef) error {
	var b strings.Builder
	names := commandNames(cmds)

	b.WriteString("# fish completion for md2tex\n")
	b.WriteString("# md2tex completion fish > ~/.config/fish/completions/md2tex.fish\n\n")
	b.WriteString("complete -c md2tex -f\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2tex -n 'not __fish_seen_subcommand_from %s' -a %s -d '%s'\n", names, c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c md2tex -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagBool:
			case flagEnum:
				line += fmt.Sprintf(" -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				line += " -r -F"
			case flagDir:
				line += " -x -a '(__fish_complete_directories)'"
			default:
				line += " -x"
			}
			line += fmt.Sprintf(" -d '%s'", fishEscape(f.Desc))
			b.WriteString(line + "\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c md2tex -n '%s' -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FilePattern != "":
			fmt.Fprintf(&b, "complete -c md2tex -n '%s' -F\n", cond)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2tex completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2tex completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2tex completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2tex completion fish > ~/.config/fish/completions/md2tex.fish")
}
