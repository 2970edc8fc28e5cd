package main

// Notes:
// - Test helpers shared across command tests: a buffered Environment, a
//   fixed clock, file fixtures, and a mock converter.
// No coverage gaps: this is test infrastructure, not production code.

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	md2tex "github.com/alnah/go-md2tex"
)

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

const (
	chartMarkdown = "# Report\n![Sales chart](img/chart.png)\n"

	chartLaTeX = "# Report\n" +
		"\\begin{figure}[H]\n" +
		"  \\centering\n" +
		"  \\includegraphics[width=\\mymaxwidth]{img/chart.png}\n" +
		"  \\caption{Sales chart}\n" +
		"\\end{figure}\n" +
		"\n"

	tableMarkdown = "![Results](data/results.csv)\n"

	tableLaTeX = "\\begin{table}\n" +
		"  \\csvautotabular{data/results.csv}\n" +
		"  \\caption{Results}\n" +
		"\\end{table}\n" +
		"\n"
)

// fixedNow is the clock used by test environments.
var fixedNow = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

// ---------------------------------------------------------------------------
// Environment
// ---------------------------------------------------------------------------

// testEnv is an Environment with captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

// newTestEnv returns an Environment reading stdin from the given text, using
// embedded templates and a PATH without LaTeX tools.
func newTestEnv(t *testing.T, stdin string) *testEnv {
	t.Helper()

	loader, err := md2tex.NewAssetLoader("")
	if err != nil {
		t.Fatalf("NewAssetLoader() error = %v", err)
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:         func() time.Time { return fixedNow },
			Stdin:       strings.NewReader(stdin),
			Stdout:      stdout,
			Stderr:      stderr,
			LookPath:    func(string) (string, error) { return "", exec.ErrNotFound },
			AssetLoader: loader,
		},
		stdout: stdout,
		stderr: stderr,
	}
}

// ---------------------------------------------------------------------------
// Files
// ---------------------------------------------------------------------------

// writeFile creates path (and parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

// mockConverter implements CLIConverter with fixed behavior.
type mockConverter struct {
	output       string
	stats        md2tex.Stats
	err          error
	highlightErr error
}

func (m *mockConverter) ConvertStream(_ context.Context, r io.Reader, w io.Writer) (md2tex.Stats, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return md2tex.Stats{}, err
	}
	if m.err != nil {
		return md2tex.Stats{}, m.err
	}
	if _, err := io.WriteString(w, m.output); err != nil {
		return md2tex.Stats{}, err
	}
	return m.stats, nil
}

func (m *mockConverter) Highlight(_ context.Context, w io.Writer, latex []byte) error {
	if m.highlightErr != nil {
		return m.highlightErr
	}
	_, err := io.WriteString(w, "\x1b[1m"+string(latex)+"\x1b[0m")
	return err
}
