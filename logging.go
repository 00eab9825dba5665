package tradesummit

import (
	"fmt"

	"go.uber.org/zap"
)

// NewLogger builds the process logger from the logging settings.
func NewLogger(settings LogSettings) (*zap.Logger, error) {
	var cfg zap.Config
	if settings.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	if settings.Level != "" {
		level, err := zap.ParseAtomicLevel(settings.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", settings.Level, err)
		}
		cfg.Level = level
	}
	return cfg.Build()
}
