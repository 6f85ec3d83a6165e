package logging

import (
	"log/slog"
	"os"
)

// Logger is the application-wide structured logger instance.
var Logger *slog.Logger

// InitLogger initializes the global logger with the specified level and format.
// level: "debug", "info", "warn", "error" (defaults to "info")
// format: "json" or "text" (defaults to "text")
func InitLogger(level, format string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	var handler slog.Handler
	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	if format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

func base() *slog.Logger {
	if Logger != nil {
		return Logger
	}
	return slog.Default()
}

// WithAdmin returns a logger with admin_user field.
func WithAdmin(username string) *slog.Logger {
	return base().With("admin_user", username)
}

// WithService returns a logger with service_id field.
func WithService(serviceID string) *slog.Logger {
	return base().With("service_id", serviceID)
}

// WithError returns a logger with error field.
func WithError(err error) *slog.Logger {
	return base().With("error", err)
}
