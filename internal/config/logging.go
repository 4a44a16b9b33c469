package config

import (
	"github.com/sirupsen/logrus"
)

// LogConfig configures the logger.
type LogConfig struct {
	// Level is a logrus level name: trace, debug, info, warn, error.
	Level string `toml:"level"`

	// Format is "text" or "json".
	Format string `toml:"format"`
}

func (l LogConfig) validate() error {
	if _, err := logrus.ParseLevel(l.Level); err != nil {
		return &ValidationError{Path: "log.level", Message: "unknown level", Value: l.Level}
	}
	switch l.Format {
	case "text", "json":
	default:
		return &ValidationError{Path: "log.format", Message: "expected text or json", Value: l.Format}
	}
	return nil
}

// Configure applies the level and format to logger.
func (l LogConfig) Configure(logger *logrus.Logger) error {
	if err := l.validate(); err != nil {
		return err
	}
	level, _ := logrus.ParseLevel(l.Level)
	logger.SetLevel(level)

	if l.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}
