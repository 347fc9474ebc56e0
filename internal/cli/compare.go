package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookscan/internal/model"
	"bookscan/internal/pipeline"
	"bookscan/internal/worker"
)

// compareCmd represents the compare command
var compareCmd = &cobra.Command{
	Use:   "compare <path> <path>...",
	Short: "Analyze several documents and compare their statistics",
	Long: `Compare analyzes each document and emits a comparison: per-book
summaries, rankings by length, vocabulary richness and word complexity,
and averages across the set.

Example:
  bookscan compare frankenstein.txt dracula.txt moby_dick.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func init() {
	rootCmd.AddCommand(compareCmd)

	compareCmd.Flags().StringVar(&outJSON, "json", "", "also write the comparison to this path")
	compareCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	p := pipeline.New(cfg, logger)

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers)
	batch := processor.ProcessPaths(context.Background(), args, model.Options{})

	var results []*model.AnalysisResult
	for _, pr := range batch {
		if pr.Error != nil {
			fmt.Fprintf(os.Stderr, "skipping %s: %v\n", pr.Path, pr.Error)
			continue
		}
		results = append(results, pr.Result)
	}
	if len(results) < 2 {
		return fmt.Errorf("need at least 2 analyzable documents to compare")
	}

	return emitResult(p.Compare(results), outJSON)
}
