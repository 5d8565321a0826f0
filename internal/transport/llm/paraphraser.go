// Package llm paraphrases generated descriptions through an
// OpenAI-compatible chat API to diversify training data.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrParaphraseProvider marks failures of the paraphrasing API.
var ErrParaphraseProvider = errors.New("paraphrase provider error")

const systemPrompt = "You rewrite short descriptions of 3D shapes. " +
	"Rephrase the user's sentence in different words while keeping every " +
	"number, unit and shape name exactly as written. Reply with the " +
	"rewritten sentence only."

// Paraphraser rewrites descriptions via a chat completion model.
type Paraphraser struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
}

// Config holds the paraphrasing provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	Logger      *zap.Logger
}

// NewParaphraser creates an OpenAI-compatible paraphrasing provider.
func NewParaphraser(cfg *Config) *Paraphraser {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Paraphraser{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      cfg.Logger,
	}
}

// Paraphrase rewrites a single description. The rewritten sentence must
// still contain the numbers verbatim; the caller decides whether to
// keep the original on failure.
func (p *Paraphraser) Paraphrase(ctx context.Context, description string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: p.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: description},
		},
	})
	if err != nil {
		return "", parseAPIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty chat response: %w", ErrParaphraseProvider)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("blank paraphrase: %w", ErrParaphraseProvider)
	}
	return out, nil
}

// parseAPIError extracts a human-readable error from the API response.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("paraphrase API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), ErrParaphraseProvider)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("paraphrase API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, ErrParaphraseProvider)
	}

	return fmt.Errorf("paraphrase request failed: %w", ErrParaphraseProvider)
}
