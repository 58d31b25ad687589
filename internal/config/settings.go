package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"habla-jungla/internal/app/audio"
)

// Settings is the full service configuration, loaded from YAML
type Settings struct {
	Environment string             `yaml:"environment" json:"environment" validate:"oneof=development production test"`
	LogLevel    string             `yaml:"log_level" json:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Server      ServerSettings     `yaml:"server" json:"server"`
	Audio       AudioSettings      `yaml:"audio" json:"audio"`
	Features    FeatureSettings    `yaml:"features" json:"features"`
	Classifier  ClassifierSettings `yaml:"classifier" json:"classifier"`
	Generator   GeneratorSettings  `yaml:"generator" json:"generator"`
	Analysis    AnalysisSettings   `yaml:"analysis" json:"analysis"`
}

// ServerSettings configures the HTTP surface
type ServerSettings struct {
	Host          string        `yaml:"host" json:"host"`
	Port          int           `yaml:"port" json:"port" validate:"min=1,max=65535"`
	ReadTimeout   time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout" json:"write_timeout"`
	IdleTimeout   time.Duration `yaml:"idle_timeout" json:"idle_timeout"`
	MaxUploadMB   int           `yaml:"max_upload_mb" json:"max_upload_mb" validate:"min=1,max=512"`
	EnableSwagger bool          `yaml:"enable_swagger" json:"enable_swagger"`
	EnableMetrics bool          `yaml:"enable_metrics" json:"enable_metrics"`
}

// AudioSettings configures decoding
type AudioSettings struct {
	SampleRate int    `yaml:"sample_rate" json:"sample_rate" validate:"min=8000,max=192000"`
	FFmpegPath string `yaml:"ffmpeg_path" json:"ffmpeg_path"`
}

// FeatureSettings configures MFCC extraction
type FeatureSettings struct {
	Coefficients int     `yaml:"n_mfcc" json:"n_mfcc" validate:"min=1,max=128"`
	FFTSize      int     `yaml:"n_fft" json:"n_fft"`
	HopLength    int     `yaml:"hop_length" json:"hop_length" validate:"min=1"`
	Mels         int     `yaml:"n_mels" json:"n_mels" validate:"min=1,max=512"`
	TopDB        float64 `yaml:"top_db" json:"top_db" validate:"min=0"`
}

// ClassifierSettings configures the species classifier
type ClassifierSettings struct {
	InputWidth int              `yaml:"input_width" json:"input_width" validate:"min=1"`
	Labels     []string         `yaml:"labels" json:"labels" validate:"min=1,dive,required,ne=unknown"`
	Serialize  bool             `yaml:"serialize" json:"serialize"`
	Backbone   BackboneSettings `yaml:"backbone" json:"backbone"`
}

// BackboneSettings selects and loads the convolutional backbone
type BackboneSettings struct {
	Type        string            `yaml:"type" json:"type" validate:"oneof=convnet tfserving"`
	WeightsPath string            `yaml:"weights_path" json:"weights_path"`
	Seed        uint64            `yaml:"seed" json:"seed"`
	Blocks      [][]int           `yaml:"blocks,omitempty" json:"blocks,omitempty"`
	TFServing   TFServingSettings `yaml:"tfserving" json:"tfserving"`
}

// TFServingSettings points at a TensorFlow Serving REST endpoint
type TFServingSettings struct {
	BaseURL       string        `yaml:"base_url" json:"base_url"`
	Model         string        `yaml:"model" json:"model"`
	SignatureName string        `yaml:"signature_name" json:"signature_name"`
	APIKey        string        `yaml:"api_key" json:"-"`
	Timeout       time.Duration `yaml:"timeout" json:"timeout"`
}

// GeneratorSettings configures the utterance generator. Backends holds the
// settings map handed to each registered backend, keyed by backend name.
type GeneratorSettings struct {
	Backend          string                            `yaml:"backend" json:"backend" validate:"required"`
	MaxTokens        int                               `yaml:"max_tokens" json:"max_tokens" validate:"min=1,max=4096"`
	Serialize        bool                              `yaml:"serialize" json:"serialize"`
	Templates        map[string]string                 `yaml:"templates" json:"templates"`
	FallbackTemplate string                            `yaml:"fallback_template" json:"fallback_template"`
	Backends         map[string]map[string]interface{} `yaml:"backends" json:"-"`
}

// AnalysisSettings configures the remote analyzer. An empty endpoint
// disables it.
type AnalysisSettings struct {
	Endpoint string        `yaml:"endpoint" json:"endpoint"`
	APIKey   string        `yaml:"api_key" json:"-"`
	Model    string        `yaml:"model" json:"model"`
	Language string        `yaml:"lang" json:"lang"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout"`
}

// Default settings
const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8080
	DefaultMaxUploadMB = 32
	DefaultSampleRate  = 44100
	DefaultBackend     = "hf"
	DefaultMaxTokens   = 50
	DefaultInputWidth  = 224
	DefaultFFmpeg      = "ffmpeg"
)

// DefaultLabels is the classifier vocabulary in output-channel order
var DefaultLabels = []string{"dog", "cat", "bird", "lion", "elephant"}

// defaultFFmpegPath enables the ffmpeg fallback when the binary is on PATH,
// so browser recordings (webm, ogg) decode out of the box.
func defaultFFmpegPath() string {
	if audio.FFmpegAvailable(DefaultFFmpeg) {
		return DefaultFFmpeg
	}
	return ""
}

// Default returns the settings used when no file is found
func Default() *Settings {
	return &Settings{
		Environment: "development",
		LogLevel:    "info",
		Server: ServerSettings{
			Host:          DefaultHost,
			Port:          DefaultPort,
			ReadTimeout:   30 * time.Second,
			WriteTimeout:  2 * time.Minute,
			IdleTimeout:   2 * time.Minute,
			MaxUploadMB:   DefaultMaxUploadMB,
			EnableSwagger: true,
			EnableMetrics: true,
		},
		Audio: AudioSettings{
			SampleRate: DefaultSampleRate,
			FFmpegPath: defaultFFmpegPath(),
		},
		Features: FeatureSettings{
			Coefficients: 13,
			FFTSize:      2048,
			HopLength:    512,
			Mels:         128,
			TopDB:        80,
		},
		Classifier: ClassifierSettings{
			InputWidth: DefaultInputWidth,
			Labels:     append([]string(nil), DefaultLabels...),
			Backbone: BackboneSettings{
				Type: "convnet",
				Seed: 1,
				TFServing: TFServingSettings{
					BaseURL: "http://localhost:8501",
					Model:   "vgg16",
					Timeout: 30 * time.Second,
				},
			},
		},
		Generator: GeneratorSettings{
			Backend:   DefaultBackend,
			MaxTokens: DefaultMaxTokens,
			Templates: map[string]string{
				"dog":      "A playful dog says: ",
				"cat":      "A sassy cat declares: ",
				"bird":     "A chatty bird announces: ",
				"lion":     "A majestic lion proclaims: ",
				"elephant": "A wise elephant shares: ",
			},
			FallbackTemplate: "An animal says: ",
			Backends: map[string]map[string]interface{}{
				"hf": {
					"endpoint":  "https://api-inference.huggingface.co/models/distilgpt2",
					"api_token": "${HF_API_TOKEN}",
					"timeout":   "2m",
				},
				"openai": {
					"api_key": "${OPENAI_API_KEY}",
					"mode":    "completion",
				},
				"gemini": {
					"api_key": "${GEMINI_API_KEY}",
					"model":   "gemini-2.0-flash",
				},
				"ollama": {
					"base_url": "http://localhost:11434",
					"model":    "llama3.2",
				},
				"static": {
					"text": "...",
				},
			},
		},
		Analysis: AnalysisSettings{
			APIKey:   "${JUNGLE_TALK_API_KEY}",
			Model:    "animal_sounds",
			Language: "en",
			Timeout:  30 * time.Second,
		},
	}
}

// DefaultConfigPaths lists where Load looks when no path is given
func DefaultConfigPaths() []string {
	paths := []string{"./jungla.yaml", "./config/jungla.yaml"}
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".habla-jungla", "jungla.yaml"))
	}
	return paths
}

// Load reads settings from path. An empty path searches the default
// locations and falls back to Default when none exists. Secrets written as
// ${VAR} are expanded and JUNGLA_* variables override file values.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path == "" {
		for _, candidate := range DefaultConfigPaths() {
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
	}

	settings := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	}

	settings.expandEnvironmentVariables()
	if err := settings.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// Save writes settings to path as YAML
func Save(settings *Settings, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks field constraints and cross-field rules
func (s *Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(errs))
			for _, e := range errs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}

	if err := ValidatePowerOfTwo(s.Features.FFTSize, "features.n_fft"); err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Classifier.Labels))
	for _, l := range s.Classifier.Labels {
		if seen[l] {
			return fmt.Errorf("classifier.labels contains %q twice", l)
		}
		seen[l] = true
	}

	if s.Classifier.Backbone.Type == "tfserving" {
		if err := ValidateURL(s.Classifier.Backbone.TFServing.BaseURL, "tfserving"); err != nil {
			return err
		}
	}

	if s.Analysis.Endpoint != "" {
		if err := ValidateURL(s.Analysis.Endpoint, "analysis"); err != nil {
			return err
		}
		if err := ValidateTimeout(s.Analysis.Timeout, "analysis"); err != nil {
			return err
		}
	}
	return nil
}

// BackendSettings returns the settings map for the selected generator
// backend, never nil.
func (s *Settings) BackendSettings() map[string]interface{} {
	if m, ok := s.Generator.Backends[s.Generator.Backend]; ok && m != nil {
		return m
	}
	return map[string]interface{}{}
}

// Addr is the server listen address
func (s *Settings) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// IsDevelopment reports whether development logging should be used
func (s *Settings) IsDevelopment() bool {
	return s.Environment == "development"
}

func (s *Settings) expandEnvironmentVariables() {
	s.Audio.FFmpegPath = os.ExpandEnv(s.Audio.FFmpegPath)
	s.Classifier.Backbone.WeightsPath = os.ExpandEnv(s.Classifier.Backbone.WeightsPath)
	s.Classifier.Backbone.TFServing.BaseURL = os.ExpandEnv(s.Classifier.Backbone.TFServing.BaseURL)
	s.Classifier.Backbone.TFServing.APIKey = os.ExpandEnv(s.Classifier.Backbone.TFServing.APIKey)
	s.Analysis.Endpoint = os.ExpandEnv(s.Analysis.Endpoint)
	s.Analysis.APIKey = os.ExpandEnv(s.Analysis.APIKey)
}

func (s *Settings) applyEnvOverrides() error {
	s.Environment = getEnvOrDefault(EnvEnvironment, s.Environment)
	s.LogLevel = getEnvOrDefault(EnvLogLevel, s.LogLevel)
	s.Server.Host = getEnvOrDefault(EnvHost, s.Server.Host)
	s.Generator.Backend = getEnvOrDefault(EnvGeneratorBackend, s.Generator.Backend)
	s.Classifier.Backbone.Type = getEnvOrDefault(EnvBackbone, s.Classifier.Backbone.Type)
	s.Audio.FFmpegPath = getEnvOrDefault(EnvFFmpegPath, s.Audio.FFmpegPath)
	s.Analysis.Endpoint = getEnvOrDefault(EnvAnalysisURL, s.Analysis.Endpoint)

	if port := os.Getenv(EnvPort); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvPort, err)
		}
		s.Server.Port = p
	}
	return nil
}
