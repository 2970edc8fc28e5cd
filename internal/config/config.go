package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2tex/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidWorkers  = errors.New("invalid worker count")
)

// Field length limits.
const (
	MaxPathLength         = 4096 // PATH_MAX on Linux
	MaxTemplateNameLength = 64   // Directory name under templates/
)

// MaxWorkers bounds batch.workers.
const MaxWorkers = 64

// DefaultInputFile is converted when no input is given.
const DefaultInputFile = "rapport.md"

// DefaultTemplateName selects the built-in template set.
const DefaultTemplateName = "default"

// AppDirName is the directory under the user config dir searched for configs.
const AppDirName = "go-md2tex"

// Config holds all configuration for LaTeX generation.
type Config struct {
	Input     InputConfig     `yaml:"input"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplatesConfig `yaml:"templates"`
	Batch     BatchConfig     `yaml:"batch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	File       string `yaml:"file"`       // Document converted when no argument is given
	DefaultDir string `yaml:"defaultDir"` // Default input directory for batch mode
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// TemplatesConfig selects the figure and table templates.
type TemplatesConfig struct {
	Name     string `yaml:"name"`     // Template set name (empty = "default")
	BasePath string `yaml:"basePath"` // Directory holding templates/{name}/ overrides
}

// BatchConfig tunes directory conversion.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 = auto (GOMAXPROCS)
}

// Validate checks field lengths and numeric bounds.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.file", c.Input.File, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("templates.name", c.Templates.Name, MaxTemplateNameLength); err != nil {
		return err
	}
	if err := validateFieldLength("templates.basePath", c.Templates.BasePath, MaxPathLength); err != nil {
		return err
	}

	if c.Batch.Workers < 0 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers must be between 0 and %d, got %d", ErrInvalidWorkers, MaxWorkers, c.Batch.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is loaded.
func DefaultConfig() *Config {
	return &Config{
		Input:     InputConfig{File: DefaultInputFile},
		Templates: TemplatesConfig{Name: DefaultTemplateName},
	}
}

// applyDefaults fills empty fields with DefaultConfig values.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Input.File == "" {
		c.Input.File = defaults.Input.File
	}
	if c.Templates.Name == "" {
		c.Templates.Name = defaults.Templates.Name
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Open(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var cfg Config
	if err := yamlutil.ReadStrict(f, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths returns the locations tried for a config name, in order:
// ./name.yaml, ./name.yml, then the same under ~/.config/go-md2tex/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in SearchPaths order.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
