// Package logger wires slog for the API process. Production emits JSON
// so log lines can be shipped as-is; development keeps the readable
// text handler.
package logger

import (
	"log/slog"
	"os"

	"github.com/realmforge/realmforge/internal/config"
)

// Setup builds the process logger from config and installs it as the
// slog default, so packages without an injected logger still land in
// the same stream.
func Setup(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.Environment == "production" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// WithRequestID tags every line from a request's handling with the
// X-Request-ID the middleware assigned.
func WithRequestID(logger *slog.Logger, requestID string) *slog.Logger {
	return logger.With("request_id", requestID)
}
