// Package pipeline wires the reader registry, the result cache, the
// analysis engine and the optional sentiment collaborator into the
// analyze operations the CLI and batch processor call.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"bookscan/internal/analyze"
	"bookscan/internal/cache"
	"bookscan/internal/model"
	"bookscan/internal/reader"
	"bookscan/internal/sentiment"
)

// Pipeline orchestrates a complete document analysis.
type Pipeline struct {
	registry  *reader.Registry
	cache     cache.Cache // nil when caching is disabled
	sentiment *sentiment.Analyzer
	config    *model.Config
	logger    *zap.Logger
}

// New creates a pipeline from configuration. A sentiment provider that
// fails to initialize is logged and skipped; sentiment is an optional
// collaborator and never blocks analysis.
func New(cfg *model.Config, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}

	var store cache.Cache
	if cfg.Cache.Enabled {
		store = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.MaxAge, logger)
	}

	sent, err := sentiment.NewAnalyzer(sentiment.ConfigFromModel(cfg.Sentiment), logger)
	if err != nil {
		logger.Warn("sentiment provider unavailable", zap.Error(err))
		sent = nil
	}

	return &Pipeline{
		registry:  reader.NewRegistry(logger),
		cache:     store,
		sentiment: sent,
		config:    cfg,
		logger:    logger,
	}
}

// Registry exposes the reader registry, mainly for input discovery.
func (p *Pipeline) Registry() *reader.Registry { return p.registry }

// AnalyzePath reads a document from disk and computes its statistics,
// serving the result from the cache when the file content is unchanged.
func (p *Pipeline) AnalyzePath(ctx context.Context, path string, opts model.Options) (*model.AnalysisResult, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &model.FileReadError{Path: path, Msg: "file not found", Err: err}
	}

	key := p.cacheKey(path)
	if result, ok := p.fromCache(key); ok {
		p.logger.Info("serving cached analysis", zap.String("path", path))
		if p.attachSentiment(ctx, result, opts) {
			// Persist the enrichment so the next hit skips rescoring.
			p.toCache(key, result)
		}
		return result, nil
	}

	text, err := p.registry.Read(path)
	if err != nil {
		return nil, err
	}

	result, err := p.runAnalysis(path, text, opts)
	if err != nil {
		return nil, err
	}
	p.scoreSentiment(ctx, result, text, opts)

	p.toCache(key, result)
	return result, nil
}

// AnalyzeText computes statistics for a raw string. Text input bypasses
// the cache; there is no backing file to invalidate against.
func (p *Pipeline) AnalyzeText(ctx context.Context, text string, opts model.Options) (*model.AnalysisResult, error) {
	result, err := p.runAnalysis(model.SourceText, text, opts)
	if err != nil {
		return nil, err
	}
	p.scoreSentiment(ctx, result, text, opts)
	return result, nil
}

// Compare builds a comparison across previously analyzed documents.
func (p *Pipeline) Compare(results []*model.AnalysisResult) *model.Comparison {
	return analyze.Compare(results)
}

func (p *Pipeline) runAnalysis(source, text string, opts model.Options) (*model.AnalysisResult, error) {
	analyzerOpts := []analyze.Option{
		analyze.WithLogger(p.logger),
		analyze.WithReadingSpeed(p.config.Analysis.ReadingSpeedWPM),
	}
	if opts.IncludeStopWords || p.config.Analysis.IncludeStopWords {
		analyzerOpts = append(analyzerOpts, analyze.WithStopWords())
	}

	result, err := analyze.New(source, text, analyzerOpts...).Run()
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", source, err)
	}
	return result, nil
}

// attachSentiment handles the cache-hit path, where the document text is
// no longer in hand and must be re-read before scoring. It reports
// whether a sentiment block was newly attached.
func (p *Pipeline) attachSentiment(ctx context.Context, result *model.AnalysisResult, opts model.Options) bool {
	if !opts.IncludeSentiment || result.Sentiment != nil || result.Source == model.SourceText {
		return false
	}
	if !p.sentiment.IsEnabled() {
		p.logger.Info("sentiment requested but no provider is configured")
		return false
	}

	text, err := p.registry.Read(result.Source)
	if err != nil {
		p.logger.Warn("sentiment skipped: source unreadable", zap.Error(err))
		return false
	}
	p.scoreSentiment(ctx, result, text, opts)
	return result.Sentiment != nil
}

// scoreSentiment runs the collaborator when requested. Failures are
// logged and swallowed; sentiment never fails an analysis.
func (p *Pipeline) scoreSentiment(ctx context.Context, result *model.AnalysisResult, text string, opts model.Options) {
	if !opts.IncludeSentiment || result.Sentiment != nil {
		return
	}
	if !p.sentiment.IsEnabled() {
		p.logger.Info("sentiment requested but no provider is configured")
		return
	}

	sent, err := p.sentiment.Analyze(ctx, text)
	if err != nil {
		p.logger.Warn("sentiment analysis failed", zap.Error(err))
		return
	}
	result.Sentiment = sent
}

// cacheKey derives the content-addressed key for a path, or "" when the
// cache is disabled or the file cannot be hashed.
func (p *Pipeline) cacheKey(path string) string {
	if p.cache == nil {
		return ""
	}
	contentHash, err := cache.HashFile(path)
	if err != nil {
		p.logger.Warn("cache disabled for file: hashing failed", zap.String("path", path), zap.Error(err))
		return ""
	}
	return cache.Key(path, contentHash)
}

func (p *Pipeline) fromCache(key string) (*model.AnalysisResult, bool) {
	if p.cache == nil || key == "" {
		return nil, false
	}
	data, ok := p.cache.Get(key)
	if !ok {
		return nil, false
	}

	var result model.AnalysisResult
	if err := json.Unmarshal(data, &result); err != nil {
		p.logger.Warn("ignoring corrupt cached result", zap.Error(err))
		_ = p.cache.Delete(key)
		return nil, false
	}
	return &result, true
}

func (p *Pipeline) toCache(key string, result *model.AnalysisResult) {
	if p.cache == nil || key == "" {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		p.logger.Warn("cache write skipped: marshal failed", zap.Error(err))
		return
	}
	if err := p.cache.Set(key, data, 0); err != nil {
		p.logger.Warn("cache write failed", zap.Error(err))
	}
}
