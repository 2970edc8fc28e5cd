package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
	"github.com/alnah/go-md2tex/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// latexTools are the downstream compilers looked up on PATH.
var latexTools = []string{"pdflatex", "latexmk"}

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status    string        `json:"status"` // "ready", "warnings", "errors"
	Input     inputInfo     `json:"input"`
	Templates templatesInfo `json:"templates"`
	LaTeX     []toolInfo    `json:"latex"`
	Env       envInfo       `json:"environment"`
	System    systemInfo    `json:"system"`
	Warnings  []string      `json:"warnings,omitempty"`
	Errors    []string      `json:"errors,omitempty"`
}

// inputInfo describes the document converted without arguments.
type inputInfo struct {
	Path   string `json:"path"`
	Found  bool   `json:"found"`
	Config string `json:"config,omitempty"` // Config name or path, if any
}

// templatesInfo describes the selected template set.
type templatesInfo struct {
	Name      string   `json:"name"`
	BasePath  string   `json:"base_path,omitempty"`
	Loaded    bool     `json:"loaded"`
	Available []string `json:"available,omitempty"`
}

// toolInfo holds a LaTeX tool lookup result.
type toolInfo struct {
	Name  string `json:"name"`
	Found bool   `json:"found"`
	Path  string `json:"path,omitempty"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	MaxProcs      int    `json:"gomaxprocs"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, 2 = bad flags.
func runDoctorCmd(args []string, env *Environment) int {
	flags, err := parseDoctorFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		printDoctorUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		return report(env, err)
	}

	result := runDoctor(flags, env)

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(flags *doctorFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: statusReady,
		Env: envInfo{
			OS:       runtime.GOOS,
			Arch:     runtime.GOARCH,
			MaxProcs: runtime.GOMAXPROCS(0),
		},
	}

	cfg := checkConfig(result, flags)
	if cfg != nil {
		checkInput(result, cfg)
		checkTemplates(result, cfg, env)
	}
	checkLaTeX(result, env)
	checkEnvironment(result)
	checkSystem(result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = statusErrors
	} else if len(result.Warnings) > 0 {
		result.Status = statusWarnings
	}

	return result
}

// checkConfig loads the effective configuration the same way convert does.
// Returns nil when it cannot be loaded.
func checkConfig(result *doctorResult, flags *doctorFlags) *config.Config {
	envCfg := loadEnvConfig()
	result.Input.Config = flags.common.config
	if result.Input.Config == "" {
		result.Input.Config = envCfg.ConfigPath
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
		return nil
	}

	if flags.templates.name != "" {
		cfg.Templates.Name = flags.templates.name
	}
	if flags.templates.assetPath != "" {
		cfg.Templates.BasePath = flags.templates.assetPath
	}
	return cfg
}

// checkInput reports whether the default input exists.
// A missing input is only a warning: an argument can still name one.
func checkInput(result *doctorResult, cfg *config.Config) {
	path, _ := resolveInputPath(nil, cfg)
	result.Input.Path = path
	result.Input.Found = fileutil.FileExists(path) || fileutil.DirExists(path)
	if !result.Input.Found {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Default input %s not found; pass a file to convert", path))
	}
}

// checkTemplates loads the selected template set.
func checkTemplates(result *doctorResult, cfg *config.Config, env *Environment) {
	result.Templates.Name = cfg.Templates.Name
	result.Templates.BasePath = cfg.Templates.BasePath

	loader, err := templateLoader(cfg, env)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template path: %v", err))
		return
	}
	if names, err := loader.ListTemplateSets(); err == nil {
		result.Templates.Available = names
	}

	if _, err := newConverter(cfg, "", env); err != nil {
		result.Errors = append(result.Errors, err.Error())
		return
	}
	result.Templates.Loaded = true
}

// checkLaTeX looks up the LaTeX toolchain. The output does not need it, so
// a missing compiler is a warning.
func checkLaTeX(result *doctorResult, env *Environment) {
	found := false
	for _, name := range latexTools {
		info := toolInfo{Name: name}
		if path, err := env.LookPath(name); err == nil {
			info.Found = true
			info.Path = path
			found = true
		}
		result.LaTeX = append(result.LaTeX, info)
	}
	if !found {
		result.Warnings = append(result.Warnings,
			"No LaTeX compiler found (pdflatex, latexmk)"+hints.ForLaTeXToolchain())
	}
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult) {
	result.Env.Container, result.Env.ContainerHint = isContainer()

	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			result.Env.CI = true
			break
		}
	}
}

// isContainer detects if running in a container environment.
// Returns (isContainer, hint) where hint indicates which signal was detected.
func isContainer() (bool, string) {
	if os.Getenv("MD2TEX_CONTAINER") == "1" {
		return true, "MD2TEX_CONTAINER=1"
	}
	if hints.IsInContainer() {
		return true, "/.dockerenv"
	}
	if v := os.Getenv("container"); v != "" {
		return true, "container=" + v
	}
	if os.Getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// checkSystem verifies the temp directory accepts new files.
// Atomic writes create their temp file next to the target, so this is a
// proxy for the common case.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	if err := fileutil.ProbeWritable(tmpDir); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
		return
	}
	result.System.TempWritable = true
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2tex doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Input")
	if r.Input.Config != "" {
		fmt.Fprintf(w, "  [OK] Config: %s\n", r.Input.Config)
	}
	if r.Input.Path != "" {
		if r.Input.Found {
			fmt.Fprintf(w, "  [OK] Default input: %s\n", r.Input.Path)
		} else {
			fmt.Fprintf(w, "  [WARN] Default input: %s (missing)\n", r.Input.Path)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Templates")
	if r.Templates.Loaded {
		fmt.Fprintf(w, "  [OK] Set: %s\n", r.Templates.Name)
	} else {
		fmt.Fprintf(w, "  [ERROR] Set: %s (not loaded)\n", r.Templates.Name)
	}
	if r.Templates.BasePath != "" {
		fmt.Fprintf(w, "  [OK] Base path: %s\n", r.Templates.BasePath)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "LaTeX")
	for _, t := range r.LaTeX {
		if t.Found {
			fmt.Fprintf(w, "  [OK] %s: %s\n", t.Name, t.Path)
		} else {
			fmt.Fprintf(w, "  [WARN] %s: not found\n", t.Name)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (GOMAXPROCS=%d)\n", r.Env.OS, r.Env.Arch, r.Env.MaxProcs)
	if r.Env.Container {
		fmt.Fprintf(w, "  [OK] Container: detected (%s)\n", r.Env.ContainerHint)
	}
	if r.Env.CI {
		fmt.Fprintln(w, "  [OK] CI: detected")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
