package services

import (
	"context"

	"go.uber.org/zap"

	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/app/api/analysis"
	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
)

// translationService implements TranslationService
type translationService struct {
	translator Translator
	analyzer   Analyzer
	logger     *zap.Logger
}

// NewTranslationService creates a new translation service. analyzer may be
// nil when no remote endpoint is configured.
func NewTranslationService(translator Translator, analyzer Analyzer, logger *zap.Logger) TranslationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &translationService{
		translator: translator,
		analyzer:   analyzer,
		logger:     logger,
	}
}

// Translate runs the pipeline on clip. With withAnalysis set and an
// analyzer configured, the remote call runs alongside the pipeline and its
// result is attached; its failure never fails the translation.
func (s *translationService) Translate(ctx context.Context, clip audio.Clip, withAnalysis bool) (*dto.TranslationResponse, error) {
	var remote chan *analysis.Result
	if withAnalysis && s.analyzer != nil {
		remote = make(chan *analysis.Result, 1)
		go func() {
			remote <- s.analyzer.Analyze(ctx, clip.Data)
		}()
	}

	translation, err := s.translator.Translate(ctx, clip)
	if err != nil {
		return nil, err
	}

	response := dto.NewTranslationResponse(translation, clip.Filename)
	if remote != nil {
		response.Analysis = dto.NewAnalysisResponse(<-remote)
	} else if withAnalysis {
		response.Analysis = dto.NewAnalysisResponse(nil)
	}
	return response, nil
}

// Speak generates an utterance for a requested species
func (s *translationService) Speak(ctx context.Context, req *dto.CreateUtteranceRequest) (*dto.UtteranceResponse, error) {
	constants := s.translator.Constants()

	req.Normalize()
	if err := req.ValidateAgainst(constants.Vocabulary); err != nil {
		return nil, err
	}

	utterance, err := s.translator.Speak(ctx, classifier.Label(req.Species))
	if err != nil {
		return nil, err
	}

	prompt, ok := constants.Templates[req.Species]
	if !ok {
		prompt = constants.FallbackTemplate
	}
	return &dto.UtteranceResponse{
		Species:   req.Species,
		Prompt:    prompt,
		Utterance: string(utterance),
	}, nil
}

// Analyze forwards raw audio to the remote analyzer
func (s *translationService) Analyze(ctx context.Context, data []byte) *dto.AnalysisResponse {
	if s.analyzer == nil {
		s.logger.Debug("remote analysis requested but not configured")
		return dto.NewAnalysisResponse(nil)
	}
	return dto.NewAnalysisResponse(s.analyzer.Analyze(ctx, data))
}

// Labels lists the classifier vocabulary
func (s *translationService) Labels(ctx context.Context) *dto.LabelsResponse {
	return &dto.LabelsResponse{
		Labels:   s.translator.Constants().Vocabulary,
		Fallback: string(classifier.Unknown),
	}
}

// Config reports the reproducibility constants
func (s *translationService) Config(ctx context.Context) *dto.ConfigResponse {
	c := s.translator.Constants()
	return &dto.ConfigResponse{
		SampleRate:       c.SampleRate,
		Bands:            c.Bands,
		InputWidth:       c.InputWidth,
		Vocabulary:       c.Vocabulary,
		Templates:        c.Templates,
		FallbackTemplate: c.FallbackTemplate,
		MaxTokens:        c.MaxTokens,
		Backbone:         c.Backbone,
		Generator:        c.Generator,
		AnalysisEnabled:  s.analyzer != nil,
	}
}
