package pipeline

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
)

func TestChromaHighlighter_Highlight(t *testing.T) {
	t.Parallel()

	t.Run("emits ANSI escapes and keeps content", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		latex := "\\begin{table}\n  \\csvautotabular{data.csv}\n\\end{table}\n"
		if err := NewChromaHighlighter("").Highlight(context.Background(), &buf, latex); err != nil {
			t.Fatalf("Highlight() unexpected error: %v", err)
		}

		out := buf.String()
		if !strings.Contains(out, "\x1b[") {
			t.Error("output has no ANSI escape sequences")
		}
		if !strings.Contains(out, "data.csv") {
			t.Errorf("output lost content: %q", out)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf bytes.Buffer
		err := NewChromaHighlighter("monokai").Highlight(ctx, &buf, "x")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})
}

func TestNewChromaHighlighter_DefaultStyle(t *testing.T) {
	t.Parallel()

	if got := NewChromaHighlighter("").style; got != DefaultStyle {
		t.Errorf("style = %q, want %q", got, DefaultStyle)
	}
	if got := NewChromaHighlighter("github").style; got != "github" {
		t.Errorf("style = %q, want %q", got, "github")
	}
}

func TestStyles(t *testing.T) {
	t.Parallel()

	names := Styles()
	if !slices.Contains(names, DefaultStyle) {
		t.Errorf("Styles() = %v, missing %q", names, DefaultStyle)
	}
	if !slices.IsSorted(names) {
		t.Errorf("Styles() not sorted: %v", names)
	}
}
