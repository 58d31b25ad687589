// Package cmdutil holds state shared by the jungla subcommands.
package cmdutil

import (
	"go.uber.org/zap"

	"habla-jungla/internal/app/logging"
	"habla-jungla/internal/config"
)

// Values of the root persistent flags.
var (
	ConfigPath string
	Verbose    bool
)

// LoadSettings reads the settings selected by --config.
func LoadSettings() (*config.Settings, error) {
	return config.Load(ConfigPath)
}

// NewLogger builds the logger for settings; --verbose forces debug level.
func NewLogger(settings *config.Settings) (*zap.Logger, error) {
	level := settings.LogLevel
	if Verbose {
		level = "debug"
	}
	return logging.NewLogger(settings.IsDevelopment(), level)
}

// Setup loads settings and the matching logger.
func Setup() (*config.Settings, *zap.Logger, error) {
	settings, err := LoadSettings()
	if err != nil {
		return nil, nil, err
	}
	logger, err := NewLogger(settings)
	if err != nil {
		return nil, nil, err
	}
	return settings, logger, nil
}
