package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bookscan/internal/model"
	"bookscan/internal/pipeline"
	"bookscan/internal/worker"
)

var (
	concurrency int
	outputDir   string
	recursive   bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|file...>",
	Short: "Analyze many documents in parallel",
	Long: `Batch analyzes every supported document under a directory (or an
explicit list of files) using a worker pool. Each document gets its own
JSON result file; one failing document never aborts the batch.

Example:
  bookscan batch ./library
  bookscan batch ./library --concurrency 8 --output-dir ./results
  bookscan batch a.txt b.pdf c.epub`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: config)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./bookscan-results", "output directory for result files")
	batchCmd.Flags().BoolVar(&recursive, "recursive", true, "recurse into subdirectories")
	batchCmd.Flags().BoolVar(&includeStops, "stop-words", false, "keep stop words in word frequency")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, logger)

	paths, err := collectPaths(p, args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no supported documents found (supported: %s)",
			strings.Join(p.Registry().Supported(), ", "))
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Analyzing %d documents with %d workers\n", len(paths), cfg.Concurrency.Workers)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	results := processor.ProcessPaths(context.Background(), paths, model.Options{
		IncludeStopWords: includeStops,
	})

	succeeded, failed := 0, 0
	for _, pr := range results {
		if pr.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", pr.Path, pr.Error)
			continue
		}

		outPath := filepath.Join(outputDir, resultFilename(pr.Path))
		if err := writeJSON(outPath, pr.Result); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", pr.Path, err)
			continue
		}
		succeeded++
		fmt.Fprintf(os.Stderr, "OK   %s (%d words)\n", pr.Path, pr.Result.WordCount)
	}

	fmt.Fprintf(os.Stderr, "\nDone: %d succeeded, %d failed, output in %s\n", succeeded, failed, outputDir)
	return nil
}

// collectPaths expands directory arguments into supported files and
// passes explicit file arguments through untouched.
func collectPaths(p *pipeline.Pipeline, args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := worker.FindBooks(arg, p.Registry().Supported(), recursive)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	return paths, nil
}

func resultFilename(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return base + ".json"
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
