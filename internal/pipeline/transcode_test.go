package pipeline

// Notes:
// - Transcode: we test the concrete scenarios of a single-file run, order
//   preservation, cancellation, and reader/writer failures.
// - Lines: we test laziness (early stop) and error propagation.
// - The emission terminator is asserted on the full output so that the
//   blank line after figure and table blocks is covered.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Readers and writers that fail
// ---------------------------------------------------------------------------

var errBoom = errors.New("boom")

// failingReader returns data once, then errBoom.
type failingReader struct {
	data string
	done bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errBoom
	}
	r.done = true
	return copy(p, r.data), nil
}

// failingWriter always fails.
type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errBoom
}

func newTestTranscoder() *Transcoder {
	return NewTranscoder(MustTemplate(testFigure), MustTemplate(testTable))
}

// ---------------------------------------------------------------------------
// TestTranscoder_Transcode - Whole-document scenarios
// ---------------------------------------------------------------------------

func TestTranscoder_Transcode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      string
		wantStats Stats
	}{
		{
			name:  "png embed becomes figure followed by blank line",
			input: "![A chart](fig1.png)\n",
			want: "\\begin{figure}[H]\n" +
				"  \\centering\n" +
				"  \\includegraphics[width=\\mymaxwidth]{fig1.png}\n" +
				"  \\caption{A chart}\n" +
				"\\end{figure}\n" +
				"\n",
			wantStats: Stats{Lines: 1, Figures: 1},
		},
		{
			name:  "csv embed becomes table followed by blank line",
			input: "![Results](data/out.csv)\n",
			want: "\\begin{table}\n" +
				"  \\csvautotabular{data/out.csv}\n" +
				"  \\caption{Results}\n" +
				"\\end{table}\n" +
				"\n",
			wantStats: Stats{Lines: 1, Tables: 1},
		},
		{
			name:      "plain text unchanged",
			input:     "Just plain text.\n",
			want:      "Just plain text.\n",
			wantStats: Stats{Lines: 1},
		},
		{
			name:      "trailing text passes through",
			input:     "![Bad](fig1.png) trailing text\n",
			want:      "![Bad](fig1.png) trailing text\n",
			wantStats: Stats{Lines: 1},
		},
		{
			name:      "empty input gives empty output",
			input:     "",
			want:      "",
			wantStats: Stats{},
		},
		{
			name:      "last line without newline still terminated",
			input:     "a\nb",
			want:      "a\nb\n",
			wantStats: Stats{Lines: 2},
		},
		{
			name:      "blank lines preserved",
			input:     "\n\n",
			want:      "\n\n",
			wantStats: Stats{Lines: 2},
		},
		{
			name:      "crlf lines keep carriage return and do not convert",
			input:     "title\r\n![A](a.png)\r\n",
			want:      "title\r\n![A](a.png)\r\n",
			wantStats: Stats{Lines: 2},
		},
		{
			name:      "trailing whitespace preserved",
			input:     "text  \t\n",
			want:      "text  \t\n",
			wantStats: Stats{Lines: 1},
		},
		{
			name: "mixed document keeps order",
			input: "# Report\n" +
				"![Fig](f.png)\n" +
				"Some text.\n" +
				"![Tab](t.csv)\n" +
				"End.\n",
			want: "# Report\n" +
				"\\begin{figure}[H]\n" +
				"  \\centering\n" +
				"  \\includegraphics[width=\\mymaxwidth]{f.png}\n" +
				"  \\caption{Fig}\n" +
				"\\end{figure}\n" +
				"\n" +
				"Some text.\n" +
				"\\begin{table}\n" +
				"  \\csvautotabular{t.csv}\n" +
				"  \\caption{Tab}\n" +
				"\\end{table}\n" +
				"\n" +
				"End.\n",
			wantStats: Stats{Lines: 5, Figures: 1, Tables: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			stats, err := newTestTranscoder().Transcode(context.Background(), strings.NewReader(tt.input), &buf)
			if err != nil {
				t.Fatalf("Transcode() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("Transcode() output mismatch (-want +got):\n%s", diff)
			}
			if stats != tt.wantStats {
				t.Errorf("stats = %+v, want %+v", stats, tt.wantStats)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTranscoder_Transcode_PlainIdentity - Identity modulo newline
// ---------------------------------------------------------------------------

func TestTranscoder_Transcode_PlainIdentity(t *testing.T) {
	t.Parallel()

	lines := []string{
		"plain",
		"  indented",
		"![x](a.jpg)",
		"[link](a.png)",
		"![x](a.png)!",
		"![x](a.png) ",
		"\\begin{figure}[H]",
		"tab\there",
		"unicode: éè 日本語",
	}

	tr := newTestTranscoder()
	for _, line := range lines {
		got, kind := tr.TranscodeLine(line + "\n")
		if kind != KindPlain {
			t.Errorf("TranscodeLine(%q) kind = %v, want plain", line, kind)
		}
		if got != line {
			t.Errorf("TranscodeLine(%q) = %q, want unchanged", line, got)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTranscoder_Transcode_NotReentrant - Output never re-triggers patterns
// ---------------------------------------------------------------------------

func TestTranscoder_Transcode_NotReentrant(t *testing.T) {
	t.Parallel()

	input := "![A chart](fig1.png)\n![Results](data/out.csv)\n![](x.png)\ntext\n"
	tr := newTestTranscoder()

	var first bytes.Buffer
	if _, err := tr.Transcode(context.Background(), strings.NewReader(input), &first); err != nil {
		t.Fatalf("first pass: %v", err)
	}

	var second bytes.Buffer
	stats, err := tr.Transcode(context.Background(), bytes.NewReader(first.Bytes()), &second)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if stats.Figures != 0 || stats.Tables != 0 {
		t.Errorf("second pass converted %d figures and %d tables, want none", stats.Figures, stats.Tables)
	}
	if diff := cmp.Diff(first.String(), second.String()); diff != "" {
		t.Errorf("second pass changed output (-first +second):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestTranscoder_Transcode_Errors - Cancellation and I/O failures
// ---------------------------------------------------------------------------

func TestTranscoder_Transcode_Errors(t *testing.T) {
	t.Parallel()

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var buf bytes.Buffer
		_, err := newTestTranscoder().Transcode(ctx, strings.NewReader("a\nb\n"), &buf)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
	})

	t.Run("read error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		stats, err := newTestTranscoder().Transcode(context.Background(), &failingReader{data: "a\n"}, &buf)
		if !errors.Is(err, ErrReadLine) {
			t.Fatalf("error = %v, want ErrReadLine", err)
		}
		if stats.Lines != 1 {
			t.Errorf("stats.Lines = %d, want 1", stats.Lines)
		}
	})

	t.Run("write error", func(t *testing.T) {
		t.Parallel()

		// More than the bufio buffer so the failure surfaces before Flush.
		input := strings.Repeat("line of text\n", 1000)
		_, err := newTestTranscoder().Transcode(context.Background(), strings.NewReader(input), failingWriter{})
		if !errors.Is(err, ErrWriteLine) {
			t.Errorf("error = %v, want ErrWriteLine", err)
		}
	})

	t.Run("write error on flush", func(t *testing.T) {
		t.Parallel()

		_, err := newTestTranscoder().Transcode(context.Background(), strings.NewReader("a\n"), failingWriter{})
		if !errors.Is(err, ErrWriteLine) {
			t.Errorf("error = %v, want ErrWriteLine", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestTranscoder_Lines - Lazy emission sequence
// ---------------------------------------------------------------------------

func TestTranscoder_Lines(t *testing.T) {
	t.Parallel()

	t.Run("one emission per line in order", func(t *testing.T) {
		t.Parallel()

		var got []string
		for out, err := range newTestTranscoder().Lines(strings.NewReader("a\n![C](p.csv)\nb")) {
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got = append(got, out)
		}

		want := []string{
			"a",
			"\\begin{table}\n  \\csvautotabular{p.csv}\n  \\caption{C}\n\\end{table}\n",
			"b",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("early stop", func(t *testing.T) {
		t.Parallel()

		count := 0
		for range newTestTranscoder().Lines(strings.NewReader("a\nb\nc\n")) {
			count++
			if count == 2 {
				break
			}
		}
		if count != 2 {
			t.Errorf("iterated %d times, want 2", count)
		}
	})

	t.Run("read error yielded once", func(t *testing.T) {
		t.Parallel()

		var errs int
		var outs []string
		for out, err := range newTestTranscoder().Lines(&failingReader{data: "x\n"}) {
			if err != nil {
				errs++
				if !errors.Is(err, ErrReadLine) {
					t.Errorf("error = %v, want ErrReadLine", err)
				}
				continue
			}
			outs = append(outs, out)
		}
		if errs != 1 {
			t.Errorf("got %d errors, want 1", errs)
		}
		if diff := cmp.Diff([]string{"x"}, outs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
	})
}

// ---------------------------------------------------------------------------
// TestStats - Derived counts
// ---------------------------------------------------------------------------

func TestStats(t *testing.T) {
	t.Parallel()

	a := Stats{Lines: 10, Figures: 2, Tables: 1}
	b := Stats{Lines: 5, Figures: 1}

	if got := a.Plain(); got != 7 {
		t.Errorf("Plain() = %d, want 7", got)
	}
	want := Stats{Lines: 15, Figures: 3, Tables: 1}
	if got := a.Add(b); got != want {
		t.Errorf("Add() = %+v, want %+v", got, want)
	}
}
