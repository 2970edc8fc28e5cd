package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
)

// envPrefix starts every md2tex environment variable.
const envPrefix = "MD2TEX_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2TEX_CONFIG: config file name or path
	Input      string // MD2TEX_INPUT: document or directory converted without an argument
	OutputDir  string // MD2TEX_OUTPUT_DIR: default output directory
	Templates  string // MD2TEX_TEMPLATES: template set name
	AssetPath  string // MD2TEX_ASSET_PATH: directory holding templates/{name}/
	Workers    int    // MD2TEX_WORKERS: parallel workers
}

// knownEnvVars lists valid MD2TEX_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2TEX_CONFIG":     true,
	"MD2TEX_INPUT":      true,
	"MD2TEX_OUTPUT_DIR": true,
	"MD2TEX_TEMPLATES":  true,
	"MD2TEX_ASSET_PATH": true,
	"MD2TEX_WORKERS":    true,
	"MD2TEX_CONTAINER":  true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Invalid or non-positive MD2TEX_WORKERS values are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MD2TEX_CONFIG"),
		Input:      os.Getenv("MD2TEX_INPUT"),
		OutputDir:  os.Getenv("MD2TEX_OUTPUT_DIR"),
		Templates:  os.Getenv("MD2TEX_TEMPLATES"),
		AssetPath:  os.Getenv("MD2TEX_ASSET_PATH"),
	}

	if workers := os.Getenv("MD2TEX_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints warnings for unrecognized MD2TEX_* variables.
// Catches typos like MD2TEX_TEMPLATE instead of MD2TEX_TEMPLATES.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if !strings.HasPrefix(env, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set environment values onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags).
// MD2TEX_INPUT names a directory or a file and fills the matching field.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Input != "" {
		if fileutil.DirExists(env.Input) {
			cfg.Input.DefaultDir = env.Input
		} else {
			cfg.Input.File = env.Input
			cfg.Input.DefaultDir = ""
		}
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Templates != "" {
		cfg.Templates.Name = env.Templates
	}
	if env.AssetPath != "" {
		cfg.Templates.BasePath = env.AssetPath
	}
	if env.Workers > 0 {
		cfg.Batch.Workers = env.Workers
	}
}

// loadConfig builds the effective configuration.
// The config file comes from flagPath, else MD2TEX_CONFIG; without either
// the defaults apply. Environment values are overlaid, and the result is
// validated again since env values bypass the file checks.
func loadConfig(flagPath string, env *envConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()

	path := flagPath
	if path == "" {
		path = env.ConfigPath
	}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w%s", err, configHint(err, path))
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}
