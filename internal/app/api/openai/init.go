package openai

import (
	"habla-jungla/internal/app/generator"
)

func init() {
	generator.RegisterBackend("openai", createOpenAIBackend)
}

func createOpenAIBackend(settings map[string]interface{}) (generator.Backend, error) {
	return NewBackend(Config{
		APIKey:      generator.StringSetting(settings, "api_key", ""),
		BaseURL:     generator.StringSetting(settings, "base_url", ""),
		Model:       generator.StringSetting(settings, "model", ""),
		Mode:        generator.StringSetting(settings, "mode", ModeCompletion),
		Temperature: float32(generator.FloatSetting(settings, "temperature", 1)),
	})
}
