package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	md2tex "github.com/alnah/go-md2tex"
	"github.com/alnah/go-md2tex/internal/config"
	"github.com/alnah/go-md2tex/internal/fileutil"
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Stats      md2tex.Stats
	Err        error
	Duration   time.Duration
}

// convertTree converts a directory, or a single file with an output
// location, writing one .tex file per document.
func convertTree(ctx context.Context, conv CLIConverter, inputPath string, cfg *config.Config, flags *convertFlags, env *Environment) error {
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	workers := resolveWorkers(cfg.Batch.Workers, len(files))
	results := convertBatch(ctx, conv, files, workers, env)

	// A lone document reports its own error and exit code.
	if len(results) == 1 && results[0].Err != nil {
		return results[0].Err
	}

	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// convertBatch processes files concurrently with a bounded set of workers.
// A Converter is safe for concurrent use, so all workers share conv.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, workers int, env *Environment) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], env)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile converts one document and writes it atomically.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, env *Environment) ConversionResult {
	start := env.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	in, err := os.Open(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		result.Duration = env.Now().Sub(start)
		return result
	}
	defer func() { _ = in.Close() }()

	var buf bytes.Buffer
	result.Stats, err = conv.ConvertStream(ctx, in, &buf)
	if err != nil {
		if errors.Is(err, md2tex.ErrReadInput) {
			err = fmt.Errorf("%w: %v", ErrReadMarkdown, err)
		}
		result.Err = err
		result.Duration = env.Now().Sub(start)
		return result
	}

	if err := fileutil.WriteAtomic(f.OutputPath, &buf); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWriteLaTeX, err)
		result.Duration = env.Now().Sub(start)
		return result
	}

	result.Duration = env.Now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
	Stats     md2tex.Stats // Totals over succeeded conversions
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Stats = summary.Stats.Add(r.Stats)
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%s, %v)\n", r.InputPath, r.OutputPath, formatStats(r.Stats), r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
		if verbose {
			fmt.Fprintf(env.Stdout, "total: %s\n", formatStats(summary.Stats))
		}
	}

	return summary.Failed
}
