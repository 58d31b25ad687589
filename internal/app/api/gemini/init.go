package gemini

import (
	"context"

	"habla-jungla/internal/app/generator"
)

func init() {
	generator.RegisterBackend("gemini", createGeminiBackend)
}

func createGeminiBackend(settings map[string]interface{}) (generator.Backend, error) {
	return NewBackend(context.Background(), Config{
		APIKey:  generator.StringSetting(settings, "api_key", ""),
		Model:   generator.StringSetting(settings, "model", DefaultModel),
		BaseURL: generator.StringSetting(settings, "base_url", ""),
	})
}
