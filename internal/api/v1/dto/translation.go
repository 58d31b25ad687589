package dto

import (
	"encoding/json"
	"time"

	"habla-jungla/internal/app/api/analysis"
	"habla-jungla/internal/app/pipeline"
)

// TimingsResponse reports per-stage time in milliseconds
type TimingsResponse struct {
	ExtractMs  float64 `json:"extract_ms"`
	ClassifyMs float64 `json:"classify_ms"`
	GenerateMs float64 `json:"generate_ms"`
	TotalMs    float64 `json:"total_ms"`
}

// TranslationResponse is the result of translating one clip
type TranslationResponse struct {
	Species   string            `json:"species" example:"dog"`
	Utterance string            `json:"utterance" example:"A playful dog says: where is my ball"`
	Outcome   string            `json:"outcome" example:"ok" enums:"ok,fallback"`
	Bands     int               `json:"bands" example:"13"`
	Frames    int               `json:"frames" example:"173"`
	Filename  string            `json:"filename,omitempty"`
	Timings   TimingsResponse   `json:"timings"`
	States    []string          `json:"states"`
	Analysis  *AnalysisResponse `json:"analysis,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// LegacyTranslationResponse is the body of POST /process_audio
type LegacyTranslationResponse struct {
	AnimalType string `json:"animal_type" example:"dog"`
	Dialogue   string `json:"dialogue" example:"A playful dog says: where is my ball"`
}

// LegacyErrorResponse is the error body of POST /process_audio
type LegacyErrorResponse struct {
	Error string `json:"error" example:"No audio file provided"`
}

// AnalysisResponse carries the remote analyzer's result. Available is
// false when the service could not be reached or answered badly.
type AnalysisResponse struct {
	Available bool            `json:"available"`
	Summary   string          `json:"summary,omitempty"`
	Results   json.RawMessage `json:"results,omitempty" swaggertype:"object"`
}

// NewTranslationResponse converts a pipeline result
func NewTranslationResponse(t *pipeline.Translation, filename string) *TranslationResponse {
	return &TranslationResponse{
		Species:   string(t.Label),
		Utterance: string(t.Utterance),
		Outcome:   t.Outcome.String(),
		Bands:     t.Bands,
		Frames:    t.Frames,
		Filename:  filename,
		Timings: TimingsResponse{
			ExtractMs:  millis(t.Timings.Extract),
			ClassifyMs: millis(t.Timings.Classify),
			GenerateMs: millis(t.Timings.Generate),
			TotalMs:    millis(t.Timings.Total),
		},
		States: t.States,
	}
}

// NewAnalysisResponse converts an analyzer result; nil means unavailable
func NewAnalysisResponse(r *analysis.Result) *AnalysisResponse {
	if r == nil {
		return &AnalysisResponse{Available: false}
	}
	return &AnalysisResponse{
		Available: true,
		Summary:   r.Summary(),
		Results:   r.Results,
	}
}

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1e3
}
