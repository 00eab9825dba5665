package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

var ErrMissingAPIKey = errors.New("gemini: api key is required")

// Gemini_Model generates plain text replies through the Gemini API.
type Gemini_Model struct {
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt,omitempty"`
	Temperature  *float32
	MaxTokens    int32

	client *genai.Client
}

func New(ctx context.Context, apiKey, model string) (*Gemini_Model, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = DefaultModel
	}
	return &Gemini_Model{Model: model, MaxTokens: 1024, client: client}, nil
}

func (g *Gemini_Model) config() *genai.GenerateContentConfig {
	temperature := g.Temperature
	if temperature == nil {
		temperature = genai.Ptr[float32](0.7)
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:     temperature,
		TopK:            genai.Ptr[float32](40),
		TopP:            genai.Ptr[float32](0.95),
		MaxOutputTokens: g.MaxTokens,
	}
	if g.SystemPrompt != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: g.SystemPrompt}}}
	}
	return cfg
}

// GenerateText sends a single-turn prompt and returns the concatenated text
// of the first candidate.
func (g *Gemini_Model) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := g.client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt), g.config())
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return res.Text(), nil
}
