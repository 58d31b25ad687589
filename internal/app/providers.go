package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"habla-jungla/internal/api/server"
	"habla-jungla/internal/api/v1/services"
	"habla-jungla/internal/app/api/analysis"
	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/classifier"
	"habla-jungla/internal/app/classifier/backbone"
	"habla-jungla/internal/app/features"
	"habla-jungla/internal/app/generator"
	"habla-jungla/internal/app/pipeline"
	"habla-jungla/internal/config"

	// Generator backends register themselves on import
	_ "habla-jungla/internal/app/api/gemini"
	_ "habla-jungla/internal/app/api/huggingface"
	_ "habla-jungla/internal/app/api/ollama"
	_ "habla-jungla/internal/app/api/openai"
)

func provideDecoder(s *config.Settings) *audio.Decoder {
	return audio.NewDecoder(audio.DecoderConfig{
		TargetRate: s.Audio.SampleRate,
		FFmpegPath: s.Audio.FFmpegPath,
	})
}

func provideMFCC(s *config.Settings) (*features.MFCC, error) {
	cfg := features.DefaultConfig()
	cfg.SampleRate = s.Audio.SampleRate
	cfg.NumCoefficients = s.Features.Coefficients
	cfg.FFTSize = s.Features.FFTSize
	cfg.HopSize = s.Features.HopLength
	cfg.NumMels = s.Features.Mels
	cfg.TopDB = s.Features.TopDB
	return features.NewMFCC(cfg)
}

// BackboneConfig maps the settings onto a backbone configuration
func BackboneConfig(s *config.Settings) backbone.Config {
	b := s.Classifier.Backbone
	return backbone.Config{
		Type:        b.Type,
		WeightsPath: b.WeightsPath,
		Seed:        b.Seed,
		Blocks:      b.Blocks,
		TFServing: backbone.TFServingConfig{
			BaseURL:       b.TFServing.BaseURL,
			Model:         b.TFServing.Model,
			SignatureName: b.TFServing.SignatureName,
			APIKey:        b.TFServing.APIKey,
			Timeout:       b.TFServing.Timeout,
		},
		Serialize: s.Classifier.Serialize,
	}
}

func provideBackbone(s *config.Settings) (backbone.Backbone, error) {
	return backbone.New(BackboneConfig(s))
}

func provideClassifier(s *config.Settings, bb backbone.Backbone, logger *zap.Logger) (*classifier.Classifier, error) {
	vocab := lo.Map(s.Classifier.Labels, func(l string, _ int) classifier.Label { return classifier.Label(l) })
	return classifier.New(classifier.Config{
		InputWidth: s.Classifier.InputWidth,
		Vocabulary: vocab,
	}, bb, logger.Named("classifier"))
}

func provideGeneratorBackend(s *config.Settings) (generator.Backend, error) {
	return generator.NewBackend(s.Generator.Backend, s.BackendSettings())
}

func provideGenerator(s *config.Settings, backend generator.Backend, logger *zap.Logger) (*generator.Generator, error) {
	templates := generator.DefaultTemplates()
	if len(s.Generator.Templates) > 0 {
		templates.ByLabel = lo.MapKeys(s.Generator.Templates, func(_ string, k string) classifier.Label { return classifier.Label(k) })
	}
	if s.Generator.FallbackTemplate != "" {
		templates.Fallback = s.Generator.FallbackTemplate
	}
	return generator.New(generator.Config{
		MaxTokens: s.Generator.MaxTokens,
		Templates: templates,
		Serialize: s.Generator.Serialize,
	}, backend, logger.Named("generator"))
}

// provideRegistry returns a registry carrying the Go runtime collectors
func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry) *pipeline.Metrics {
	return pipeline.NewMetrics(reg)
}

func provideConstants(s *config.Settings, cls *classifier.Classifier, gen *generator.Generator) pipeline.Constants {
	templates := gen.Templates()
	return pipeline.Constants{
		SampleRate:       s.Audio.SampleRate,
		Bands:            s.Features.Coefficients,
		InputWidth:       cls.InputWidth(),
		Vocabulary:       classifier.LabelStrings(cls.Vocabulary()),
		Templates:        templates.AsStrings(),
		FallbackTemplate: templates.Prompt(classifier.Unknown),
		MaxTokens:        gen.MaxTokens(),
		Backbone:         cls.Backbone(),
		Generator:        gen.Backend(),
	}
}

// provideAnalyzer returns nil when no analysis endpoint is configured
func provideAnalyzer(s *config.Settings, logger *zap.Logger) (services.Analyzer, error) {
	if s.Analysis.Endpoint == "" {
		return nil, nil
	}
	a, err := analysis.NewAnalyzer(analysis.Config{
		Endpoint: s.Analysis.Endpoint,
		APIKey:   s.Analysis.APIKey,
		Model:    s.Analysis.Model,
		Language: s.Analysis.Language,
		Timeout:  s.Analysis.Timeout,
	}, logger.Named("analysis"))
	if err != nil {
		return nil, err
	}
	return a, nil
}

func provideServer(s *config.Settings, service services.TranslationService, reg *prometheus.Registry, logger *zap.Logger) *server.Server {
	return server.NewServer(server.ConfigFromSettings(s), service, reg, logger.Named("http"))
}
