package internal

import (
	"io"
	"log/slog"
)

// Log attribute keys used throughout the application.
const (
	LogKeyLogLevel  = "log_level"
	LogKeyComponent = "component"
	LogKeyVersion   = "version"
	LogKeyDelay     = "delay"
)

// SetUpLogger creates a default JSON logger and sets it as the global logger.
func SetUpLogger(logLevel string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo

	var badLevel string

	if logLevel != "" {
		err := level.UnmarshalText([]byte(logLevel))
		if err != nil {
			level = slog.LevelInfo
			badLevel = logLevel
		}
	}

	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))

	if badLevel != "" {
		logger.Error("invalid log level",
			LogKeyLogLevel, badLevel)
	}

	slog.SetDefault(logger)

	return logger
}
