package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	md2tex "github.com/alnah/go-md2tex"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, tool lookup, and template loading.
type Environment struct {
	Now         func() time.Time
	Stdin       io.Reader
	Stdout      io.Writer
	Stderr      io.Writer
	LookPath    func(file string) (string, error)
	AssetLoader md2tex.AssetLoader // Used unless a template base path is configured
}

// DefaultEnv returns production environment with embedded templates.
func DefaultEnv() *Environment {
	// An empty base path never fails: only embedded sets are used.
	loader, _ := md2tex.NewAssetLoader("")
	return &Environment{
		Now:         time.Now,
		Stdin:       os.Stdin,
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		LookPath:    exec.LookPath,
		AssetLoader: loader,
	}
}
