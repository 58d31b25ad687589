package main

import (
	"fmt"
	"os"

	"habla-jungla/cmd/jungla/cmd"
	"habla-jungla/internal/config"
)

// @title Habla Jungla API
// @version 1.0
// @description Translates animal sounds into species labels and made-up utterances.
// @BasePath /api/v1
func main() {
	// A missing .env is fine; keys may come from the environment.
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}
	if _, err := config.GetAPIKeys(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
