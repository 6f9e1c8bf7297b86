package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.AppPort != "8080" {
		t.Errorf("expected default port 8080, got %q", cfg.AppPort)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected default session TTL 24h, got %v", cfg.SessionTTL)
	}
	if cfg.AllowMockSessionOnAuthFailure {
		t.Error("expected mock sessions disabled by default")
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("SESSION_TTL", "1h30m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ALLOW_MOCK_SESSION_ON_AUTH_FAILURE", "true")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.AppPort != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.AppPort)
	}
	if cfg.RedisAddr != "redis:6380" {
		t.Errorf("expected redis addr override, got %q", cfg.RedisAddr)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("expected session TTL 1h30m, got %v", cfg.SessionTTL)
	}
	if cfg.RedisDB != 3 {
		t.Errorf("expected redis db 3, got %d", cfg.RedisDB)
	}
	if !cfg.AllowMockSessionOnAuthFailure {
		t.Error("expected mock sessions enabled via env")
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("ALLOW_MOCK_SESSION_ON_AUTH_FAILURE", "yes please")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.RedisDB != 0 {
		t.Errorf("expected malformed int to fall back to default, got %d", cfg.RedisDB)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected malformed duration to fall back to default, got %v", cfg.SessionTTL)
	}
	if cfg.AllowMockSessionOnAuthFailure {
		t.Error("expected malformed bool to fall back to default")
	}
}
