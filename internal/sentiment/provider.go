// Package sentiment attaches an opaque sentiment block to analysis
// results. The polarity scoring itself is delegated to an external model
// provider; this package only frames the request and parses the answer,
// and its output never feeds back into the text statistics.
package sentiment

import (
	"context"
	"time"

	"bookscan/internal/model"
)

// Provider scores a text excerpt.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Score classifies the excerpt and returns the sentiment block.
	Score(ctx context.Context, req ScoreRequest) (*model.Sentiment, error)
}

// ScoreRequest is the input to a provider.
type ScoreRequest struct {
	// Excerpt is the bounded slice of document text to classify.
	Excerpt string

	// Model optionally overrides the configured model name.
	Model string

	// MaxTokens limits the response length.
	MaxTokens int
}

// Config holds provider configuration.
type Config struct {
	Provider  string // "openai" or "" (disabled)
	Model     string
	APIKey    string
	BaseURL   string // custom endpoint, e.g. a local OpenAI-compatible server
	Timeout   time.Duration
	MaxTokens int
}

// ConfigFromModel converts the application config section.
func ConfigFromModel(cfg model.SentimentConfig) Config {
	return Config{
		Provider:  cfg.Provider,
		Model:     cfg.Model,
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout,
		MaxTokens: cfg.MaxTokens,
	}
}
