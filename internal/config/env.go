package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds the remote service credentials loaded from the environment
type APIKeys struct {
	OpenAI      string
	Gemini      string
	HuggingFace string
	JungleTalk  string
}

// Environment variable names
const (
	EnvOpenAIKey        = "OPENAI_API_KEY"
	EnvGeminiKey        = "GEMINI_API_KEY"
	EnvHuggingFaceKey   = "HF_API_TOKEN"
	EnvJungleTalkKey    = "JUNGLE_TALK_API_KEY"
	EnvConfigPath       = "JUNGLA_CONFIG"
	EnvEnvironment      = "JUNGLA_ENV"
	EnvLogLevel         = "JUNGLA_LOG_LEVEL"
	EnvHost             = "JUNGLA_HOST"
	EnvPort             = "JUNGLA_PORT"
	EnvGeneratorBackend = "JUNGLA_GENERATOR_BACKEND"
	EnvBackbone         = "JUNGLA_BACKBONE"
	EnvFFmpegPath       = "JUNGLA_FFMPEG_PATH"
	EnvAnalysisURL      = "JUNGLA_ANALYSIS_ENDPOINT"
)

// LoadEnv loads environment variables from the first .env file found.
// A missing file is not an error; variables may be set system-wide.
// It returns the path that was loaded, if any.
func LoadEnv() (string, error) {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return "", fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			return envPath, nil
		}
	}

	return "", nil
}

// GetAPIKeys retrieves API keys from the environment and checks their format
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI:      strings.TrimSpace(os.Getenv(EnvOpenAIKey)),
		Gemini:      strings.TrimSpace(os.Getenv(EnvGeminiKey)),
		HuggingFace: strings.TrimSpace(os.Getenv(EnvHuggingFaceKey)),
		JungleTalk:  strings.TrimSpace(os.Getenv(EnvJungleTalkKey)),
	}

	if err := ValidateAPIKey(apiKeys.OpenAI, EnvOpenAIKey, "sk-", 20); err != nil {
		return nil, err
	}
	if err := ValidateAPIKey(apiKeys.Gemini, EnvGeminiKey, "AIza", 20); err != nil {
		return nil, err
	}
	if err := ValidateAPIKey(apiKeys.HuggingFace, EnvHuggingFaceKey, "hf_", 10); err != nil {
		return nil, err
	}

	return apiKeys, nil
}

// RequireAPIKey returns an error naming the variable when the key needed by
// the selected generator backend is missing. Local backends need none.
func (k *APIKeys) RequireAPIKey(backend string) error {
	var key, name string
	switch backend {
	case "openai":
		key, name = k.OpenAI, EnvOpenAIKey
	case "gemini":
		key, name = k.Gemini, EnvGeminiKey
	default:
		return nil
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s generator backend", name, backend)
	}
	return nil
}

// GetProjectRoot walks up from the working directory to the folder
// containing go.mod
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find project root (go.mod not found)")
		}
		dir = parent
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}
