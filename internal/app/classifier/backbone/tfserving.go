package backbone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "habla-jungla/internal/app/errors"
)

// TFServingConfig points at a TensorFlow Serving REST endpoint hosting a
// headless image backbone.
type TFServingConfig struct {
	BaseURL       string
	Model         string
	SignatureName string
	APIKey        string
	Timeout       time.Duration
}

// TFServing runs the backbone remotely through the predict API.
type TFServing struct {
	config TFServingConfig
	client *http.Client
}

type predictRequest struct {
	SignatureName string          `json:"signature_name,omitempty"`
	Instances     [][][][]float32 `json:"instances"`
}

type predictResponse struct {
	Predictions [][][][]float32 `json:"predictions"`
	Error       string          `json:"error,omitempty"`
}

// NewTFServing creates a remote backbone.
func NewTFServing(config TFServingConfig) (*TFServing, error) {
	if config.BaseURL == "" {
		return nil, apperrors.RequiredField("tfserving base_url")
	}
	if config.Model == "" {
		return nil, apperrors.RequiredField("tfserving model")
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	return &TFServing{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
	}, nil
}

func (s *TFServing) Name() string {
	return "tfserving"
}

func (s *TFServing) predictURL() string {
	return fmt.Sprintf("%s/v1/models/%s:predict", strings.TrimRight(s.config.BaseURL, "/"), s.config.Model)
}

// Forward sends the tensor as instances and parses predictions back into
// an NHWC tensor.
func (s *TFServing) Forward(ctx context.Context, input *Tensor) (*Tensor, error) {
	if err := input.Validate(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrShapeMismatch, err.Error())
	}

	body, err := json.Marshal(predictRequest{
		SignatureName: s.config.SignatureName,
		Instances:     toNested(input),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.predictURL(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrRequestFailed.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrapf(apperrors.ErrRequestFailed, "predict returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed predictResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrResponseInvalid.Error())
	}
	if parsed.Error != "" {
		return nil, apperrors.Wrapf(apperrors.ErrRequestFailed, "predict error: %s", parsed.Error)
	}
	return fromNested(parsed.Predictions)
}

func toNested(t *Tensor) [][][][]float32 {
	out := make([][][][]float32, t.N)
	for n := range out {
		out[n] = make([][][]float32, t.H)
		for h := range out[n] {
			out[n][h] = make([][]float32, t.W)
			for w := range out[n][h] {
				start := t.Index(n, h, w, 0)
				out[n][h][w] = t.Data[start : start+t.C]
			}
		}
	}
	return out
}

func fromNested(batch [][][][]float32) (*Tensor, error) {
	if len(batch) == 0 || len(batch[0]) == 0 || len(batch[0][0]) == 0 {
		return nil, apperrors.Wrap(apperrors.ErrSpatialCollapse, "empty predictions")
	}
	n, h, w, c := len(batch), len(batch[0]), len(batch[0][0]), len(batch[0][0][0])
	t := NewTensor(n, h, w, c)
	for i, img := range batch {
		if len(img) != h {
			return nil, apperrors.Wrap(apperrors.ErrShapeMismatch, "ragged predictions")
		}
		for y, row := range img {
			if len(row) != w {
				return nil, apperrors.Wrap(apperrors.ErrShapeMismatch, "ragged predictions")
			}
			for x, px := range row {
				if len(px) != c {
					return nil, apperrors.Wrap(apperrors.ErrShapeMismatch, "ragged predictions")
				}
				copy(t.Data[t.Index(i, y, x, 0):], px)
			}
		}
	}
	return t, nil
}
