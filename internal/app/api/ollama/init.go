package ollama

import (
	"time"

	"habla-jungla/internal/app/generator"
)

func init() {
	generator.RegisterBackend("ollama", createOllamaBackend)
}

func createOllamaBackend(settings map[string]interface{}) (generator.Backend, error) {
	return NewBackend(Config{
		BaseURL:     generator.StringSetting(settings, "base_url", DefaultBaseURL),
		Model:       generator.StringSetting(settings, "model", DefaultModel),
		Temperature: generator.FloatSetting(settings, "temperature", 0),
		Timeout:     generator.DurationSetting(settings, "timeout", 2*time.Minute),
	})
}
