package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"habla-jungla/internal/app/generator"
)

// Defaults for a local ollama daemon.
const (
	DefaultBaseURL = "http://localhost:11434"
	DefaultModel   = "llama3.2"
)

// Config configures the ollama backend.
type Config struct {
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Backend continues prompts with a raw (template-free) ollama generation.
type Backend struct {
	client *api.Client
	config Config
}

// NewBackend creates an ollama client for config.BaseURL.
func NewBackend(config Config) (*Backend, error) {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	base, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama base url %q: %w", config.BaseURL, err)
	}
	return &Backend{
		client: api.NewClient(base, &http.Client{Timeout: config.Timeout}),
		config: config,
	}, nil
}

func (b *Backend) Name() string {
	return "ollama"
}

// Complete collects a non-streamed raw generation.
func (b *Backend) Complete(ctx context.Context, req generator.Request) (string, error) {
	stream := false
	options := map[string]interface{}{"num_predict": req.MaxTokens}
	if b.config.Temperature > 0 {
		options["temperature"] = b.config.Temperature
	}

	var sb strings.Builder
	err := b.client.Generate(ctx, &api.GenerateRequest{
		Model:   b.config.Model,
		Prompt:  req.Prompt,
		Raw:     true,
		Stream:  &stream,
		Options: options,
	}, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	return sb.String(), nil
}
