package worker

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"bookscan/internal/model"
)

// stubAnalyzer fails paths listed in fail and fabricates a result for
// everything else.
type stubAnalyzer struct {
	fail map[string]bool
}

func (s *stubAnalyzer) AnalyzePath(ctx context.Context, path string, opts model.Options) (*model.AnalysisResult, error) {
	if s.fail[path] {
		return nil, fmt.Errorf("read %s: boom", path)
	}
	return &model.AnalysisResult{Source: path, Title: filepath.Base(path)}, nil
}

func TestProcessPaths_KeepsInputOrder(t *testing.T) {
	paths := []string{"c.txt", "a.txt", "b.txt", "d.txt"}

	b := NewBatchProcessor(&stubAnalyzer{}, 3)
	results := b.ProcessPaths(context.Background(), paths, model.Options{})

	if len(results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(results))
	}
	for i, pr := range results {
		if pr.Path != paths[i] {
			t.Errorf("position %d: got %q, want %q", i, pr.Path, paths[i])
		}
		if pr.Err() != nil {
			t.Errorf("%s: unexpected error %v", pr.Path, pr.Err())
		}
	}
}

func TestProcessPaths_FailuresDoNotAbort(t *testing.T) {
	paths := []string{"ok1.txt", "bad.txt", "ok2.txt"}

	b := NewBatchProcessor(&stubAnalyzer{fail: map[string]bool{"bad.txt": true}}, 2)
	results := b.ProcessPaths(context.Background(), paths, model.Options{})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, pr := range results {
		failed := pr.Err() != nil
		if failed != (pr.Path == "bad.txt") {
			t.Errorf("%s: err = %v", pr.Path, pr.Err())
		}
		if failed && pr.Result != nil {
			t.Errorf("%s: failed result should carry no analysis", pr.Path)
		}
	}
}

func TestProcessPaths_LargeBatchCompletes(t *testing.T) {
	// Far more paths than the pool's channel capacity for one worker.
	paths := make([]string, 50)
	for i := range paths {
		paths[i] = fmt.Sprintf("book%02d.txt", i)
	}

	b := NewBatchProcessor(&stubAnalyzer{}, 1)

	done := make(chan []*PathResult, 1)
	go func() {
		done <- b.ProcessPaths(context.Background(), paths, model.Options{})
	}()

	select {
	case results := <-done:
		if len(results) != len(paths) {
			t.Errorf("expected %d results, got %d", len(paths), len(results))
		}
	case <-time.After(10 * time.Second):
		t.Fatal("batch stalled before completing")
	}
}

func TestProcessPaths_Empty(t *testing.T) {
	b := NewBatchProcessor(&stubAnalyzer{}, 2)
	if results := b.ProcessPaths(context.Background(), nil, model.Options{}); results != nil {
		t.Errorf("expected nil for empty input, got %v", results)
	}
}

func TestFindBooks(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.txt", "a.epub", "notes.log", filepath.Join("nested", "c.pdf")} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	exts := []string{".txt", ".epub", ".pdf"}

	flat, err := FindBooks(dir, exts, false)
	if err != nil {
		t.Fatalf("FindBooks() failed: %v", err)
	}
	want := []string{filepath.Join(dir, "a.epub"), filepath.Join(dir, "b.txt")}
	if !reflect.DeepEqual(flat, want) {
		t.Errorf("non-recursive: got %v, want %v", flat, want)
	}

	deep, err := FindBooks(dir, exts, true)
	if err != nil {
		t.Fatalf("FindBooks() recursive failed: %v", err)
	}
	if len(deep) != 3 {
		t.Errorf("recursive: expected 3 books, got %v", deep)
	}
}

func TestFindBooks_MissingDir(t *testing.T) {
	if _, err := FindBooks(filepath.Join(t.TempDir(), "absent"), []string{".txt"}, false); err == nil {
		t.Error("expected error for missing directory")
	}
}
