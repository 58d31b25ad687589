package gemini

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/genai"

	apperrors "habla-jungla/internal/app/errors"
	"habla-jungla/internal/app/generator"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

const continuationInstruction = "Continue the text you are given in the voice it sets up. Reply with the continuation only."

// Config configures the Gemini backend.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Backend generates continuations with the Gemini API.
type Backend struct {
	client *genai.Client
	model  string
}

// NewBackend creates the genai client. An empty APIKey falls back to
// GEMINI_API_KEY.
func NewBackend(ctx context.Context, config Config) (*Backend, error) {
	if config.APIKey == "" {
		config.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	if config.APIKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("genai client: %w", err)
	}
	return &Backend{client: client, model: config.Model}, nil
}

func (b *Backend) Name() string {
	return "gemini"
}

// Complete returns the text of the first candidate.
func (b *Backend) Complete(ctx context.Context, req generator.Request) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: continuationInstruction}}},
		MaxOutputTokens:   int32(req.MaxTokens),
		CandidateCount:    1,
	}

	resp, err := b.client.Models.GenerateContent(ctx, b.model, []*genai.Content{
		{Parts: []*genai.Part{{Text: req.Prompt}}, Role: "user"},
	}, cfg)
	if err != nil {
		return "", fmt.Errorf("genai generate: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apperrors.ErrEmptyCompletion
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
