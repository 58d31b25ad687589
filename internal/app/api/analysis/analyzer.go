// Package analysis calls a remote animal-sound analysis service. It is the
// single-call variant of the local pipeline: one request, one result, and
// no error ever escapes to the caller.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	apperrors "habla-jungla/internal/app/errors"
)

// Defaults sent with every request.
const (
	DefaultModel    = "animal_sounds"
	DefaultLanguage = "en"
)

// Config configures the remote service.
type Config struct {
	Endpoint string
	APIKey   string
	Model    string
	Language string
	Headers  map[string]string
	Timeout  time.Duration
}

// Analyzer posts audio to the remote service.
type Analyzer struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

// Result holds the service's "results" field as received.
type Result struct {
	Results json.RawMessage `json:"results"`
}

type analyzeRequest struct {
	Audio    []byte `json:"audio"`
	Model    string `json:"model"`
	Language string `json:"lang"`
}

// NewAnalyzer creates an analyzer. The endpoint is required.
func NewAnalyzer(config Config, logger *zap.Logger) (*Analyzer, error) {
	if config.Endpoint == "" {
		return nil, apperrors.RequiredField("analysis endpoint")
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.Language == "" {
		config.Language = DefaultLanguage
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}, nil
}

// Analyze returns the remote result, or nil when the call failed for any
// reason. A nil result means "translation unavailable".
func (a *Analyzer) Analyze(ctx context.Context, audio []byte) *Result {
	result, err := a.analyze(ctx, audio)
	if err != nil {
		a.logger.Warn("remote analysis unavailable",
			zap.String("endpoint", a.config.Endpoint),
			zap.Error(err))
		return nil
	}
	return result
}

func (a *Analyzer) analyze(ctx context.Context, audio []byte) (*Result, error) {
	body, err := json.Marshal(analyzeRequest{
		Audio:    audio,
		Model:    a.config.Model,
		Language: a.config.Language,
	})
	if err != nil {
		return nil, a.transportError(0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, a.transportError(0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}
	if a.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+a.config.APIKey)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, a.transportError(0, apperrors.Wrap(err, apperrors.ErrRequestFailed.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, a.transportError(resp.StatusCode, err)
	}
	ok := resp.StatusCode >= 200 && resp.StatusCode < 300

	// a results field is honored whatever the status; without one a non-2xx
	// response reports its body
	var parsed Result
	if err := json.Unmarshal(raw, &parsed); err != nil {
		if !ok {
			return nil, a.transportError(resp.StatusCode, apperrors.Wrapf(apperrors.ErrRequestFailed, "body: %s", truncate(raw, 200)))
		}
		return nil, a.transportError(resp.StatusCode, apperrors.Wrap(err, apperrors.ErrResponseInvalid.Error()))
	}
	if len(parsed.Results) == 0 || string(parsed.Results) == "null" {
		if !ok {
			return nil, a.transportError(resp.StatusCode, apperrors.Wrapf(apperrors.ErrRequestFailed, "body: %s", truncate(raw, 200)))
		}
		return nil, a.transportError(resp.StatusCode, apperrors.Wrap(apperrors.ErrResponseInvalid, "response has no results field"))
	}
	if !ok {
		a.logger.Warn("remote analysis returned results with an error status",
			zap.String("endpoint", a.config.Endpoint),
			zap.Int("status", resp.StatusCode))
	}
	return &parsed, nil
}

func (a *Analyzer) transportError(status int, cause error) error {
	return &apperrors.TransportError{Endpoint: a.config.Endpoint, StatusCode: status, Cause: cause}
}

// Summary renders the results as text: JSON strings unquoted, anything
// else as compact JSON.
func (r *Result) Summary() string {
	if r == nil {
		return ""
	}
	var s string
	if err := json.Unmarshal(r.Results, &s); err == nil {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, r.Results); err != nil {
		return string(r.Results)
	}
	return buf.String()
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return fmt.Sprintf("%s...", b[:n])
}
