package sentiment

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"bookscan/internal/model"
)

// excerptLimit bounds how much document text one scoring request sends.
// Full novels would blow token budgets; the opening slice is enough for
// an overall polarity estimate.
const excerptLimit = 6000

// Analyzer is the pipeline-facing wrapper around a Provider. A nil
// Analyzer (or one with no provider) is valid and simply disabled.
type Analyzer struct {
	provider Provider
	logger   *zap.Logger
}

// NewAnalyzer builds an Analyzer from configuration. An empty provider
// name yields a disabled analyzer, not an error.
func NewAnalyzer(cfg Config, logger *zap.Logger) (*Analyzer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Provider == "" {
		return &Analyzer{logger: logger}, nil
	}

	var provider Provider
	var err error
	switch cfg.Provider {
	case "openai":
		provider, err = NewOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown sentiment provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("init sentiment provider: %w", err)
	}

	return &Analyzer{provider: provider, logger: logger}, nil
}

// NewAnalyzerWithProvider wraps an already constructed provider.
func NewAnalyzerWithProvider(provider Provider, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{provider: provider, logger: logger}
}

// IsEnabled reports whether a provider is configured.
func (a *Analyzer) IsEnabled() bool {
	return a != nil && a.provider != nil
}

// Analyze scores the document text and returns the sentiment block to
// attach to the analysis result.
func (a *Analyzer) Analyze(ctx context.Context, text string) (*model.Sentiment, error) {
	if !a.IsEnabled() {
		return nil, fmt.Errorf("sentiment analysis is not configured")
	}

	excerpt := text
	if len(excerpt) > excerptLimit {
		excerpt = excerpt[:excerptLimit]
	}

	sent, err := a.provider.Score(ctx, ScoreRequest{Excerpt: excerpt})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("sentiment scored",
		zap.String("provider", a.provider.Name()),
		zap.String("label", sent.Label),
		zap.Float64("polarity", sent.Polarity))
	return sent, nil
}
