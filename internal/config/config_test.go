package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Errorf("expected development, got %q", cfg.Environment)
	}
	if cfg.GenProvider != ProviderMock {
		t.Errorf("expected mock provider by default, got %q", cfg.GenProvider)
	}
	if cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("unexpected redis url %q", cfg.RedisURL)
	}
}

func TestLoad_ProviderRequiresKey(t *testing.T) {
	t.Setenv("GEN_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for gemini provider without key")
	}

	t.Setenv("GEMINI_API_KEY", "test-key")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.GeminiModel == "" {
		t.Error("expected a default gemini model")
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	t.Setenv("GEN_PROVIDER", "clockwork")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
