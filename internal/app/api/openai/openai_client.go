package openai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	apperrors "habla-jungla/internal/app/errors"
	"habla-jungla/internal/app/generator"
)

// Completion modes.
const (
	ModeCompletion = "completion"
	ModeChat       = "chat"
)

const continuationInstruction = "Continue the text the user gives you. Reply with the continuation only, without repeating the text."

// Config configures the OpenAI backend.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Mode        string
	Temperature float32
}

// Backend completes prompts through the OpenAI API or any compatible server.
type Backend struct {
	client *openai.Client
	config Config
}

// NewBackend creates a backend. An empty APIKey falls back to
// OPENAI_API_KEY.
func NewBackend(config Config) (*Backend, error) {
	if config.APIKey == "" {
		config.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if config.APIKey == "" {
		return nil, apperrors.ErrMissingAPIKey
	}
	if config.Mode == "" {
		config.Mode = ModeCompletion
	}
	if config.Mode != ModeCompletion && config.Mode != ModeChat {
		return nil, apperrors.InvalidField("openai mode", fmt.Sprintf("%q is neither %s nor %s", config.Mode, ModeCompletion, ModeChat))
	}
	if config.Model == "" {
		if config.Mode == ModeChat {
			config.Model = openai.GPT3Dot5Turbo
		} else {
			config.Model = openai.GPT3Dot5TurboInstruct
		}
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Backend{
		client: openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

func (b *Backend) Name() string {
	return "openai"
}

// Complete returns the continuation for req.Prompt.
func (b *Backend) Complete(ctx context.Context, req generator.Request) (string, error) {
	if b.config.Mode == ModeChat {
		return b.chat(ctx, req)
	}

	resp, err := b.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       b.config.Model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		N:           1,
		Temperature: b.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.ErrEmptyCompletion
	}
	return resp.Choices[0].Text, nil
}

func (b *Backend) chat(ctx context.Context, req generator.Request) (string, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: b.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: continuationInstruction},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		MaxTokens:   req.MaxTokens,
		N:           1,
		Temperature: b.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
