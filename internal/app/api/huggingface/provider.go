package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	apperrors "habla-jungla/internal/app/errors"
	"habla-jungla/internal/app/generator"
)

// DefaultEndpoint serves distilgpt2 through the hosted inference API.
const DefaultEndpoint = "https://api-inference.huggingface.co/models/distilgpt2"

// Config configures the text-generation backend.
type Config struct {
	Endpoint string
	APIToken string
	Timeout  time.Duration
	DoSample bool
}

// Backend talks to a Hugging Face text-generation endpoint: either the
// hosted inference API or a text-generation-inference server.
type Backend struct {
	config Config
	client *http.Client
}

type generateParameters struct {
	MaxNewTokens       int  `json:"max_new_tokens"`
	NumReturnSequences int  `json:"num_return_sequences,omitempty"`
	ReturnFullText     bool `json:"return_full_text"`
	DoSample           bool `json:"do_sample"`
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
	Options    map[string]bool    `json:"options,omitempty"`
}

type generation struct {
	GeneratedText string `json:"generated_text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewBackend creates a backend. An empty APIToken falls back to
// HF_API_TOKEN.
func NewBackend(config Config) *Backend {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}
	if config.APIToken == "" {
		config.APIToken = strings.TrimSpace(os.Getenv("HF_API_TOKEN"))
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	return &Backend{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}
}

func (b *Backend) Name() string {
	return "hf"
}

// Complete asks for one sequence and returns it with the prompt included.
func (b *Backend) Complete(ctx context.Context, req generator.Request) (string, error) {
	body, err := json.Marshal(generateRequest{
		Inputs: req.Prompt,
		Parameters: generateParameters{
			MaxNewTokens:       req.MaxTokens,
			NumReturnSequences: 1,
			ReturnFullText:     true,
			DoSample:           b.config.DoSample,
		},
		Options: map[string]bool{"wait_for_model": true},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.config.APIToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.config.APIToken)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrRequestFailed.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			return "", apperrors.Wrapf(apperrors.ErrRequestFailed, "status %d: %s", resp.StatusCode, e.Error)
		}
		return "", apperrors.Wrapf(apperrors.ErrRequestFailed, "status %d: %s", resp.StatusCode, string(raw))
	}

	return parseGeneration(raw)
}

// parseGeneration accepts both the list form of the hosted API and the
// single object returned by text-generation-inference.
func parseGeneration(raw []byte) (string, error) {
	var list []generation
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) == 0 {
			return "", apperrors.ErrEmptyCompletion
		}
		return list[0].GeneratedText, nil
	}

	var single generation
	if err := json.Unmarshal(raw, &single); err != nil {
		return "", apperrors.Wrap(err, apperrors.ErrResponseInvalid.Error())
	}
	return single.GeneratedText, nil
}
