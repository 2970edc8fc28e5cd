package main

// Notes:
// - Flag parsing is delegated to pflag; we test our registrations, the
//   help path, and error wrapping.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	flag "github.com/spf13/pflag"
)

// ---------------------------------------------------------------------------
// TestParseConvertFlags - Convert flag registration
// ---------------------------------------------------------------------------

func TestParseConvertFlags(t *testing.T) {
	t.Parallel()

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()

		args := []string{
			"doc.md", "-o", "out.tex", "-w", "4", "-t", "portable",
			"--asset-path", "/srv", "--highlight", "--style", "github",
			"-c", "work", "-q", "-v",
		}
		f, rest, err := parseConvertFlags(args)
		if err != nil {
			t.Fatalf("parseConvertFlags() error = %v", err)
		}

		want := convertFlags{
			common:    commonFlags{config: "work", quiet: true, verbose: true},
			templates: templateFlags{name: "portable", assetPath: "/srv"},
			output:    "out.tex",
			workers:   4,
			highlight: true,
			style:     "github",
		}
		if diff := cmp.Diff(want, *f, cmp.AllowUnexported(convertFlags{}, commonFlags{}, templateFlags{})); diff != "" {
			t.Errorf("flags mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]string{"doc.md"}, rest); diff != "" {
			t.Errorf("rest mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dash stays positional", func(t *testing.T) {
		t.Parallel()

		_, rest, err := parseConvertFlags([]string{"-"})
		if err != nil {
			t.Fatalf("parseConvertFlags() error = %v", err)
		}
		if len(rest) != 1 || rest[0] != "-" {
			t.Errorf("rest = %v, want [-]", rest)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseConvertFlags([]string{"-h"})
		if !errors.Is(err, flag.ErrHelp) {
			t.Errorf("error = %v, want flag.ErrHelp", err)
		}
	})

	t.Run("unknown flag wraps ErrUsage", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseConvertFlags([]string{"--pdf"})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})

	t.Run("bad int wraps ErrUsage", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseConvertFlags([]string{"--workers", "many"})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestParseLintFlags - Lint flag registration
// ---------------------------------------------------------------------------

func TestParseLintFlags(t *testing.T) {
	t.Parallel()

	f, rest, err := parseLintFlags([]string{"--json", "--strict", "docs"})
	if err != nil {
		t.Fatalf("parseLintFlags() error = %v", err)
	}
	if !f.json || !f.strict {
		t.Errorf("json = %v, strict = %v, want both true", f.json, f.strict)
	}
	if len(rest) != 1 || rest[0] != "docs" {
		t.Errorf("rest = %v, want [docs]", rest)
	}
}

// ---------------------------------------------------------------------------
// TestParseDoctorFlags - Doctor flag registration
// ---------------------------------------------------------------------------

func TestParseDoctorFlags(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()

		f, err := parseDoctorFlags([]string{"--json", "-t", "portable"})
		if err != nil {
			t.Fatalf("parseDoctorFlags() error = %v", err)
		}
		if !f.json || f.templates.name != "portable" {
			t.Errorf("flags = %+v, want json and portable", f)
		}
	})

	t.Run("rejects arguments", func(t *testing.T) {
		t.Parallel()

		_, err := parseDoctorFlags([]string{"extra"})
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})
}
