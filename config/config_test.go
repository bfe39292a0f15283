package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "oauth", input: "oauth", expected: AuthModeOAuth},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase normalized", input: "OAuth", expected: AuthModeOAuth},
		{name: "unknown mode", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestGuardModeUnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    GuardMode
		expectError bool
	}{
		{name: "remote", input: "remote", expected: GuardModeRemote},
		{name: "allow-all", input: "allow-all", expected: GuardModeAllowAll},
		{name: "uppercase normalized", input: "REMOTE", expected: GuardModeRemote},
		{name: "unknown mode", input: "open", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode GuardMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for input %q, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Auth.Mode != AuthModeOAuth {
		t.Errorf("expected default auth mode oauth, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.Guard != GuardModeRemote {
		t.Errorf("expected default guard mode remote, got %q", cfg.Auth.Guard)
	}
	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Postgres.Host != "localhost" || cfg.Postgres.Port != 5432 {
		t.Errorf("unexpected postgres defaults: %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)
	}
	if cfg.Redis.URI != "localhost:6379" {
		t.Errorf("expected default redis uri localhost:6379, got %q", cfg.Redis.URI)
	}
	if cfg.Cache.IdentityTTL != 15*time.Minute {
		t.Errorf("expected default identity TTL 15m, got %s", cfg.Cache.IdentityTTL)
	}
	if cfg.Auth.RoleGroups.Admin != "suresight-admins" {
		t.Errorf("unexpected default admin group %q", cfg.Auth.RoleGroups.Admin)
	}
}

func TestAppConfigEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "mock")
	t.Setenv("GUARD_MODE", "allow-all")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("REDIS_URI", "cache.internal:6379")
	t.Setenv("DEV_AUTH_GROUPS", "homeowners;suresight-admins")
	t.Setenv("CACHE_IDENTITY_TTL", "5m")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}

	if cfg.Auth.Mode != AuthModeMock {
		t.Errorf("expected auth mode mock, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.Guard != GuardModeAllowAll {
		t.Errorf("expected guard mode allow-all, got %q", cfg.Auth.Guard)
	}
	if cfg.Postgres.Host != "db.internal" || cfg.Postgres.Port != 5433 {
		t.Errorf("unexpected postgres override: %s:%d", cfg.Postgres.Host, cfg.Postgres.Port)
	}
	if cfg.Redis.URI != "cache.internal:6379" {
		t.Errorf("unexpected redis override %q", cfg.Redis.URI)
	}
	if len(cfg.Auth.DevAuth.Groups) != 2 || cfg.Auth.DevAuth.Groups[1] != "suresight-admins" {
		t.Errorf("unexpected dev auth groups %v", cfg.Auth.DevAuth.Groups)
	}
	if cfg.Cache.IdentityTTL != 5*time.Minute {
		t.Errorf("expected identity TTL 5m, got %s", cfg.Cache.IdentityTTL)
	}
}

func TestAppConfigRejectsInvalidModes(t *testing.T) {
	t.Setenv("AUTH_MODE", "ldap")

	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error for invalid AUTH_MODE, got none")
	}
}

func TestSanitizeGuardrails(t *testing.T) {
	cfg := AppConfig{}
	cfg.Cache.IdentityTTL = -time.Minute
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected empty addr to fall back to :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Cache.IdentityTTL != 15*time.Minute {
		t.Errorf("expected non-positive identity TTL to reset to 15m, got %s", cfg.Cache.IdentityTTL)
	}
}

func TestDetectDevModeFromNodeEnv(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	if !cfg.IsDev {
		t.Error("expected NODE_ENV=development to enable dev mode")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{input: "debug", expected: slog.LevelDebug},
		{input: "info", expected: slog.LevelInfo},
		{input: "WARN", expected: slog.LevelWarn},
		{input: "warning", expected: slog.LevelWarn},
		{input: "error", expected: slog.LevelError},
		{input: "verbose", expected: slog.LevelInfo},
		{input: "", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		o := ObservabilityConfig{LogLevel: tt.input}
		if got := o.SlogLevel(); got != tt.expected {
			t.Errorf("SlogLevel(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
