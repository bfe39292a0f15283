package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig contains logging and metrics configuration.
type ObservabilityConfig struct {
	// MetricsEnabled exposes the Prometheus /metrics endpoint when true.
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// LogLevel sets the minimum slog level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat selects the slog handler: json or text.
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// SlogLevel maps the configured level string to a slog.Level.
// Unknown values fall back to info.
func (o *ObservabilityConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(o.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
