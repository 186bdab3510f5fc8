package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Generation provider names accepted in GEN_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderVenice = "venice"
	ProviderMock   = "mock"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string

	// GenProvider selects the generation backend. The mock provider needs
	// no key and is the default for local development.
	GenProvider string

	GeminiAPIKey     string
	GeminiModel      string
	GeminiImageModel string

	VeniceAPIKey     string
	VeniceModel      string
	VeniceImageModel string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		RedisURL: getEnv("REDIS_URL", "redis://localhost:6379"),

		GenProvider: strings.ToLower(getEnv("GEN_PROVIDER", ProviderMock)),

		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiImageModel: getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),

		VeniceAPIKey:     os.Getenv("VENICE_API_KEY"),
		VeniceModel:      getEnv("VENICE_MODEL", "venice-uncensored"),
		VeniceImageModel: getEnv("VENICE_IMAGE_MODEL", "hidream"),
	}

	switch cfg.GenProvider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when GEN_PROVIDER=%s", ProviderGemini)
		}
	case ProviderVenice:
		if cfg.VeniceAPIKey == "" {
			return nil, fmt.Errorf("VENICE_API_KEY is required when GEN_PROVIDER=%s", ProviderVenice)
		}
	case ProviderMock:
	default:
		return nil, fmt.Errorf("unknown GEN_PROVIDER: %q", cfg.GenProvider)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
