package worker

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"bookscan/internal/model"
)

// Analyzer is the slice of the pipeline the batch processor needs.
type Analyzer interface {
	AnalyzePath(ctx context.Context, path string, opts model.Options) (*model.AnalysisResult, error)
}

// PathResult pairs one input path with its analysis outcome. A failed
// document carries its error here; it never aborts the batch.
type PathResult struct {
	Path   string
	Result *model.AnalysisResult
	Error  error
}

// Err implements Result.
func (r *PathResult) Err() error { return r.Error }

type analyzeJob struct {
	path     string
	opts     model.Options
	analyzer Analyzer
}

// Execute implements Job.
func (j *analyzeJob) Execute(ctx context.Context) Result {
	result, err := j.analyzer.AnalyzePath(ctx, j.path, j.opts)
	return &PathResult{Path: j.path, Result: result, Error: err}
}

// BatchProcessor analyzes many documents concurrently.
type BatchProcessor struct {
	analyzer Analyzer
	workers  int
}

// NewBatchProcessor creates a batch processor backed by the given
// analyzer.
func NewBatchProcessor(analyzer Analyzer, workers int) *BatchProcessor {
	return &BatchProcessor{analyzer: analyzer, workers: workers}
}

// ProcessPaths analyzes every path, returning one result per input in
// input order.
func (b *BatchProcessor) ProcessPaths(ctx context.Context, paths []string, opts model.Options) []*PathResult {
	if len(paths) == 0 {
		return nil
	}

	pool := NewPool(b.workers)
	pool.Start()

	for _, path := range paths {
		pool.Submit(&analyzeJob{path: path, opts: opts, analyzer: b.analyzer})
	}

	byPath := make(map[string]*PathResult, len(paths))
	for _, result := range pool.Wait() {
		pr := result.(*PathResult)
		byPath[pr.Path] = pr
	}

	ordered := make([]*PathResult, 0, len(paths))
	for _, path := range paths {
		if pr, ok := byPath[path]; ok {
			ordered = append(ordered, pr)
		}
	}
	return ordered
}

// FindBooks walks a directory collecting files whose extension is in
// exts. Results are sorted for stable batch ordering.
func FindBooks(dir string, exts []string, recursive bool) ([]string, error) {
	want := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		want[strings.ToLower(ext)] = struct{}{}
	}

	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := want[strings.ToLower(filepath.Ext(path))]; ok {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	sort.Strings(paths)
	return paths, nil
}
