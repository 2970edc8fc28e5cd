package config

// Notes:
// - Name-based lookup in the current directory uses t.Chdir, so those
//   subtests do not run in parallel.
// - The user config directory branch is exercised through XDG_CONFIG_HOME,
//   which os.UserConfigDir honours on Linux only.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// writeConfig writes content to dir/name and returns the path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	want := &Config{
		Input:     InputConfig{File: "rapport.md"},
		Templates: TemplatesConfig{Name: "default"},
	}
	if diff := cmp.Diff(want, DefaultConfig()); diff != "" {
		t.Errorf("DefaultConfig() mismatch (-want +got):\n%s", diff)
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidateFieldLength
// ---------------------------------------------------------------------------

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty", "", 10, false},
		{"at limit", strings.Repeat("a", 10), 10, false},
		{"over limit", strings.Repeat("a", 11), 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateFieldLength("field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "11 chars, max 10") {
					t.Errorf("error should report sizes, got %q", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"workers auto", func(c *Config) { c.Batch.Workers = 0 }, nil},
		{"workers max", func(c *Config) { c.Batch.Workers = MaxWorkers }, nil},
		{"workers negative", func(c *Config) { c.Batch.Workers = -1 }, ErrInvalidWorkers},
		{"workers too many", func(c *Config) { c.Batch.Workers = MaxWorkers + 1 }, ErrInvalidWorkers},
		{"template name too long", func(c *Config) {
			c.Templates.Name = strings.Repeat("t", MaxTemplateNameLength+1)
		}, ErrFieldTooLong},
		{"input file too long", func(c *Config) {
			c.Input.File = strings.Repeat("f", MaxPathLength+1)
		}, ErrFieldTooLong},
		{"output dir too long", func(c *Config) {
			c.Output.DefaultDir = strings.Repeat("d", MaxPathLength+1)
		}, ErrFieldTooLong},
		{"base path too long", func(c *Config) {
			c.Templates.BasePath = strings.Repeat("b", MaxPathLength+1)
		}, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File path loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("full file", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "full.yaml", `input:
  file: "thesis.md"
  defaultDir: "./chapters"
output:
  defaultDir: "./build"
templates:
  name: "portable"
  basePath: "./latex"
batch:
  workers: 4
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		want := &Config{
			Input:     InputConfig{File: "thesis.md", DefaultDir: "./chapters"},
			Output:    OutputConfig{DefaultDir: "./build"},
			Templates: TemplatesConfig{Name: "portable", BasePath: "./latex"},
			Batch:     BatchConfig{Workers: 4},
		}
		if diff := cmp.Diff(want, cfg); diff != "" {
			t.Errorf("LoadConfig() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "partial.yaml", "output:\n  defaultDir: out\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.File != DefaultInputFile {
			t.Errorf("Input.File = %q, want %q", cfg.Input.File, DefaultInputFile)
		}
		if cfg.Templates.Name != DefaultTemplateName {
			t.Errorf("Templates.Name = %q, want %q", cfg.Templates.Name, DefaultTemplateName)
		}
		if cfg.Output.DefaultDir != "out" {
			t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "out")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "invalid.yaml", "input: [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "typo.yaml", "templats:\n  name: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("empty file returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "empty.yaml", "")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("validation error is returned", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "batch:\n  workers: 1000\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidWorkers) {
			t.Errorf("error = %v, want ErrInvalidWorkers", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Search in standard locations
// ---------------------------------------------------------------------------

func TestLoadConfig_ByName(t *testing.T) {
	t.Run("finds .yml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "local.yml", "templates:\n  name: portable\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("local")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Templates.Name != "portable" {
			t.Errorf("Templates.Name = %q, want portable", cfg.Templates.Name)
		}
	})

	t.Run("finds file in user config dir", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on Linux")
		}

		xdg := t.TempDir()
		appDir := filepath.Join(xdg, AppDirName)
		if err := os.MkdirAll(appDir, 0o755); err != nil {
			t.Fatal(err)
		}
		writeConfig(t, appDir, "shared.yaml", "batch:\n  workers: 2\n")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		t.Chdir(t.TempDir())

		cfg, err := LoadConfig("shared")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Batch.Workers != 2 {
			t.Errorf("Batch.Workers = %d, want 2", cfg.Batch.Workers)
		}
	})

	t.Run("missing name lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nowhere-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		for _, want := range []string{"nowhere-xyz.yaml", "nowhere-xyz.yml"} {
			if !strings.Contains(err.Error(), want) {
				t.Errorf("error %q should mention %q", err, want)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestSearchPaths - Lookup order
// ---------------------------------------------------------------------------

func TestSearchPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG_CONFIG_HOME only drives os.UserConfigDir on Linux")
	}
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	got := SearchPaths("work")
	want := []string{
		"work.yaml",
		"work.yml",
		filepath.Join(xdg, AppDirName, "work.yaml"),
		filepath.Join(xdg, AppDirName, "work.yml"),
	}
	if len(got) != len(want) {
		t.Fatalf("SearchPaths() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SearchPaths()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
