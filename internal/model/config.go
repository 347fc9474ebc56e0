package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration.
type Config struct {
	Analysis    AnalysisConfig    `yaml:"analysis" json:"analysis"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	Sentiment   SentimentConfig   `yaml:"sentiment" json:"sentiment"`
	Output      OutputConfig      `yaml:"output" json:"output"`
}

// AnalysisConfig controls the analysis engine.
type AnalysisConfig struct {
	// IncludeStopWords keeps stop words in word frequency by default.
	IncludeStopWords bool `yaml:"include_stop_words" json:"include_stop_words"`

	// ReadingSpeedWPM is the words-per-minute constant used for the
	// reading time estimate.
	ReadingSpeedWPM int `yaml:"reading_speed_wpm" json:"reading_speed_wpm"`
}

// CacheConfig controls the analysis result cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Dir     string `yaml:"dir" json:"dir"`

	// MaxAge is how long a cached result stays valid. Entries older than
	// this are treated as absent and removed.
	MaxAge time.Duration `yaml:"max_age" json:"max_age"`

	// MemoryTTL bounds the in-process layer; it is normally much shorter
	// than MaxAge.
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
}

// ConcurrencyConfig controls batch processing.
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// SentimentConfig controls the optional sentiment collaborator.
// Sentiment is disabled unless Provider is set.
type SentimentConfig struct {
	Provider  string        `yaml:"provider" json:"provider"` // "openai" or ""
	Model     string        `yaml:"model" json:"model"`
	APIKey    string        `yaml:"-" json:"-"` // from environment, never persisted
	BaseURL   string        `yaml:"base_url" json:"base_url"`
	MaxTokens int           `yaml:"max_tokens" json:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Verbose bool `yaml:"verbose" json:"verbose"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			IncludeStopWords: false,
			ReadingSpeedWPM:  238,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       defaultCacheDir(),
			MaxAge:    7 * 24 * time.Hour,
			MemoryTTL: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Sentiment: SentimentConfig{
			Provider:  "",
			Model:     "",
			MaxTokens: 200,
			Timeout:   30 * time.Second,
		},
		Output: OutputConfig{
			Verbose: false,
		},
	}
}

func defaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "bookscan")
	}
	return filepath.Join(os.TempDir(), "bookscan-cache")
}
