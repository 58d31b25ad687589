package services

import (
	"context"

	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/app/api/analysis"
	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/app/generator"
	"habla-jungla/internal/app/pipeline"
)

// TranslationService defines the operations behind the HTTP handlers
type TranslationService interface {
	Translate(ctx context.Context, clip audio.Clip, withAnalysis bool) (*dto.TranslationResponse, error)
	Speak(ctx context.Context, req *dto.CreateUtteranceRequest) (*dto.UtteranceResponse, error)
	Analyze(ctx context.Context, data []byte) *dto.AnalysisResponse
	Labels(ctx context.Context) *dto.LabelsResponse
	Config(ctx context.Context) *dto.ConfigResponse
}

// Translator is the loaded pipeline
type Translator interface {
	Translate(ctx context.Context, clip audio.Clip) (*pipeline.Translation, error)
	Speak(ctx context.Context, label classifier.Label) (generator.Utterance, error)
	Constants() pipeline.Constants
}

// Analyzer is the remote analysis client. A nil result means unavailable.
type Analyzer interface {
	Analyze(ctx context.Context, data []byte) *analysis.Result
}
