package openrouter

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

const (
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel      = "openai/gpt-4o-mini"
)

var ErrMissingAPIKey = errors.New("openrouter: api key is required")

// OpenRouter_Model talks to OpenRouter or any other OpenAI-compatible
// endpoint (a local Ollama, vLLM, ...).
type OpenRouter_Model struct {
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int

	llm llms.Model
}

func New(apiKey, baseURL, model string) (*OpenRouter_Model, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if baseURL == "" {
		baseURL = OpenRouterBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(baseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create openai-compatible client: %w", err)
	}
	return &OpenRouter_Model{
		Model:       model,
		BaseURL:     baseURL,
		Temperature: 0.7,
		MaxTokens:   1024,
		llm:         llm,
	}, nil
}

func (o *OpenRouter_Model) GenerateText(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, o.llm, prompt,
		llms.WithTemperature(o.Temperature),
		llms.WithMaxTokens(o.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	return completion, nil
}
