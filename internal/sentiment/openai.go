package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"bookscan/internal/model"
)

const scorePrompt = `Classify the overall sentiment of the following text excerpt.

Respond with ONLY a JSON object, no prose, in exactly this shape:
{"polarity": <float -1.0 to 1.0>, "subjectivity": <float 0.0 to 1.0>, "label": "<positive|negative|neutral>"}

Text:
%s`

// OpenAIProvider scores sentiment through OpenAI's Chat Completions API
// (or any OpenAI-compatible endpoint via BaseURL).
type OpenAIProvider struct {
	client *openai.Client
	config Config
}

// NewOpenAIProvider creates an OpenAI-backed provider.
func NewOpenAIProvider(config Config) (*OpenAIProvider, error) {
	if config.APIKey == "" && config.BaseURL == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Score implements Provider.
func (p *OpenAIProvider) Score(ctx context.Context, req ScoreRequest) (*model.Sentiment, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = p.config.Model
	}
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = p.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 200
	}

	timeout := p.config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a sentiment classifier. You reply with a single JSON object and nothing else.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(scorePrompt, req.Excerpt),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	sent, err := parseScore(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	sent.Provider = p.Name()
	sent.Model = modelName
	return sent, nil
}

// parseScore extracts the JSON object from the model's reply. Some models
// wrap JSON in code fences even when told not to, so the parse looks for
// the outermost braces.
func parseScore(reply string) (*model.Sentiment, error) {
	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in sentiment response")
	}

	var sent model.Sentiment
	if err := json.Unmarshal([]byte(reply[start:end+1]), &sent); err != nil {
		return nil, fmt.Errorf("parse sentiment response: %w", err)
	}

	sent.Polarity = clamp(sent.Polarity, -1, 1)
	sent.Subjectivity = clamp(sent.Subjectivity, 0, 1)
	if sent.Label == "" {
		sent.Label = labelFor(sent.Polarity)
	}
	return &sent, nil
}

func labelFor(polarity float64) string {
	switch {
	case polarity > 0.1:
		return "positive"
	case polarity < -0.1:
		return "negative"
	default:
		return "neutral"
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
