package pipeline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
)

// Sentinel errors for transcoding.
var (
	ErrReadLine  = errors.New("failed to read line")
	ErrWriteLine = errors.New("failed to write output")
)

// LineTranscoder defines the contract for Markdown-to-LaTeX line transcoding.
type LineTranscoder interface {
	Transcode(ctx context.Context, r io.Reader, w io.Writer) (Stats, error)
	Lines(r io.Reader) iter.Seq2[string, error]
}

// Stats counts what a transcoding run emitted.
type Stats struct {
	Lines   int // input lines read
	Figures int // lines rewritten as figure blocks
	Tables  int // lines rewritten as table blocks
}

// Plain returns the number of lines passed through unchanged.
func (s Stats) Plain() int {
	return s.Lines - s.Figures - s.Tables
}

// Add returns the sum of two Stats.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Lines:   s.Lines + o.Lines,
		Figures: s.Figures + o.Figures,
		Tables:  s.Tables + o.Tables,
	}
}

// Transcoder rewrites embed lines using a figure and a table template.
// It holds no mutable state and is safe for concurrent use.
type Transcoder struct {
	figure Template
	table  Template
}

// NewTranscoder creates a Transcoder from the two templates.
func NewTranscoder(figure, table Template) *Transcoder {
	return &Transcoder{figure: figure, table: table}
}

// TranscodeLine returns the emission for one input line and its kind.
// A single trailing newline is stripped before matching. The emission does
// not include the line terminator appended by the writer.
func (t *Transcoder) TranscodeLine(line string) (string, Kind) {
	line = trimNewline(line)
	e := Classify(line)
	switch e.Kind {
	case KindFigure:
		return t.figure.Render(e), KindFigure
	case KindTable:
		return t.table.Render(e), KindTable
	default:
		return line, KindPlain
	}
}

// Lines returns a lazy sequence of emissions, one per input line.
// The sequence is finite and single-use: restarting requires a fresh reader.
// A read error is yielded once and ends the sequence.
func (t *Transcoder) Lines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for line, err := range readLines(r) {
			if err != nil {
				yield("", err)
				return
			}
			out, _ := t.TranscodeLine(line)
			if !yield(out, nil) {
				return
			}
		}
	}
}

// Transcode streams r to w, writing each emission followed by a newline.
// Cancellation is checked between lines.
func (t *Transcoder) Transcode(ctx context.Context, r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats
	bw := bufio.NewWriter(w)

	for line, err := range readLines(r) {
		if err != nil {
			return stats, err
		}
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		out, kind := t.TranscodeLine(line)
		stats.Lines++
		switch kind {
		case KindFigure:
			stats.Figures++
		case KindTable:
			stats.Tables++
		}

		if _, err := bw.WriteString(out); err != nil {
			return stats, fmt.Errorf("%w: %v", ErrWriteLine, err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return stats, fmt.Errorf("%w: %v", ErrWriteLine, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return stats, fmt.Errorf("%w: %v", ErrWriteLine, err)
	}
	return stats, nil
}

// readLines yields raw lines including their trailing '\n', if any.
// Only '\n' terminates a line; '\r' is ordinary content.
func readLines(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				if !yield(line, nil) {
					return
				}
			}
			if err == io.EOF {
				return
			}
			if err != nil {
				yield("", fmt.Errorf("%w: %v", ErrReadLine, err))
				return
			}
		}
	}
}

// Compile-time interface check.
var _ LineTranscoder = (*Transcoder)(nil)
