// Package config defines gateway configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Loading layers defaults, an optional YAML file, then environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// BackendBaseURL points at the remote ranking service, e.g.
	// "http://localhost:5000".
	BackendBaseURL string `koanf:"backend_base_url"`

	// RequestTimeoutMS bounds rankings and breakdown fetches.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// HealthTimeoutMS bounds the upstream liveness probe.
	HealthTimeoutMS int `koanf:"health_timeout_ms"`

	// CacheTTLMS sets the lifetime of cached rankings snapshots. Zero
	// disables the snapshot cache.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// MaxWeek caps the selectable week range (postseason).
	MaxWeek int `koanf:"max_week"`

	// YearsShown sets how many past seasons the dashboard offers.
	YearsShown int `koanf:"years_shown"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use and currently
// unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		BackendBaseURL:   "http://localhost:5000",
		RequestTimeoutMS: 30_000,
		HealthTimeoutMS:  5_000,
		CacheTTLMS:       600_000,
		MaxWeek:          15,
		YearsShown:       5,
	}
}
