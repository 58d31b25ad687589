//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"habla-jungla/internal/api/server"
	"habla-jungla/internal/api/v1/services"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/app/features"
	"habla-jungla/internal/app/generator"
	"habla-jungla/internal/app/pipeline"
	"habla-jungla/internal/config"
)

var pipelineSet = wire.NewSet(
	provideDecoder,
	provideMFCC,
	features.NewExtractor,
	provideBackbone,
	provideClassifier,
	provideGeneratorBackend,
	provideGenerator,
	provideRegistry,
	provideMetrics,
	provideConstants,
	pipeline.New,
	wire.Bind(new(pipeline.FeatureExtractor), new(*features.Extractor)),
	wire.Bind(new(pipeline.SpeciesClassifier), new(*classifier.Classifier)),
	wire.Bind(new(pipeline.UtteranceGenerator), new(*generator.Generator)),
)

// InitializePipeline loads every model handle once and wires the stages
func InitializePipeline(settings *config.Settings, logger *zap.Logger) (*pipeline.Pipeline, error) {
	wire.Build(pipelineSet)
	return &pipeline.Pipeline{}, nil
}

// InitializeServer builds the HTTP server around a loaded pipeline
func InitializeServer(settings *config.Settings, logger *zap.Logger) (*server.Server, error) {
	wire.Build(
		pipelineSet,
		provideAnalyzer,
		services.NewTranslationService,
		wire.Bind(new(services.Translator), new(*pipeline.Pipeline)),
		provideServer,
	)
	return &server.Server{}, nil
}

// InitializeAnalyzer builds the remote analysis client, nil when disabled
func InitializeAnalyzer(settings *config.Settings, logger *zap.Logger) (services.Analyzer, error) {
	wire.Build(provideAnalyzer)
	return nil, nil
}
