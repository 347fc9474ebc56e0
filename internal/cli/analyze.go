package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bookscan/internal/model"
	"bookscan/internal/pipeline"
)

var (
	analyzeText      string
	includeStops     bool
	includeSentiment bool
	noCache          bool
	outJSON          string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a single document and emit its statistics as JSON",
	Long: `Analyze reads a document (txt, md, pdf, epub), computes its text
statistics and writes the result as JSON.

Example:
  bookscan analyze books/frankenstein.txt
  bookscan analyze thesis.pdf --json result.json
  bookscan analyze --text "Hello world. This is a test."
  bookscan analyze book.epub --sentiment`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "analyze a literal string instead of a file")
	analyzeCmd.Flags().BoolVar(&includeStops, "stop-words", false, "keep stop words in word frequency")
	analyzeCmd.Flags().BoolVar(&includeSentiment, "sentiment", false, "attach sentiment (requires a configured provider)")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "also write the JSON result to this path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeText == "" && len(args) == 0 {
		return fmt.Errorf("provide a path or --text")
	}

	cfg := loadConfig()
	if noCache {
		cfg.Cache.Enabled = false
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	opts := model.Options{
		IncludeStopWords: includeStops,
		IncludeSentiment: includeSentiment,
	}

	p := pipeline.New(cfg, logger)
	ctx := context.Background()

	var result *model.AnalysisResult
	var err error
	if analyzeText != "" {
		result, err = p.AnalyzeText(ctx, analyzeText, opts)
	} else {
		result, err = p.AnalyzePath(ctx, args[0], opts)
	}
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	return emitResult(result, outJSON)
}

// emitResult writes the result as JSON to stdout and optionally a file.
func emitResult(v any, path string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	data = append(data, '\n')

	if path != "" {
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	_, err = os.Stdout.Write(data)
	return err
}
