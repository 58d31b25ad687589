package huggingface

import (
	"time"

	"habla-jungla/internal/app/generator"
)

func init() {
	generator.RegisterBackend("hf", createHuggingFaceBackend)
}

func createHuggingFaceBackend(settings map[string]interface{}) (generator.Backend, error) {
	return NewBackend(Config{
		Endpoint: generator.StringSetting(settings, "endpoint", DefaultEndpoint),
		APIToken: generator.StringSetting(settings, "api_token", ""),
		Timeout:  generator.DurationSetting(settings, "timeout", 2*time.Minute),
		DoSample: settings["do_sample"] == true,
	}), nil
}
