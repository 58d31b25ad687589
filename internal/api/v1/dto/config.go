package dto

// LabelsResponse lists the classifier vocabulary in output order
type LabelsResponse struct {
	Labels   []string `json:"labels" example:"dog,cat,bird,lion,elephant"`
	Fallback string   `json:"fallback" example:"unknown"`
}

// ConfigResponse reports the reproducibility constants
type ConfigResponse struct {
	SampleRate       int               `json:"sample_rate" example:"44100"`
	Bands            int               `json:"bands" example:"13"`
	InputWidth       int               `json:"input_width" example:"224"`
	Vocabulary       []string          `json:"vocabulary"`
	Templates        map[string]string `json:"templates"`
	FallbackTemplate string            `json:"fallback_template" example:"An animal says: "`
	MaxTokens        int               `json:"max_tokens" example:"50"`
	Backbone         string            `json:"backbone" example:"convnet"`
	Generator        string            `json:"generator" example:"hf"`
	AnalysisEnabled  bool              `json:"analysis_enabled"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp int64  `json:"timestamp"`
}
