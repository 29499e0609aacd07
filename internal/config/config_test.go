package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "development" || !cfg.IsDev() {
		t.Errorf("env = %q, want development", cfg.Env)
	}
	if cfg.DatabaseURL == "" {
		t.Error("database URL default missing")
	}
	if cfg.AIModel == "" {
		t.Error("AI model default missing")
	}
	if cfg.MigrationsDir != "file://migrations" {
		t.Errorf("migrations dir = %q", cfg.MigrationsDir)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("ENV", "production")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "9999" {
		t.Errorf("port = %q, want 9999", cfg.Port)
	}
	if cfg.IsDev() {
		t.Error("ENV=production must not report dev mode")
	}
	if cfg.AnthropicAPIKey != "test-key" {
		t.Errorf("api key = %q", cfg.AnthropicAPIKey)
	}
}
