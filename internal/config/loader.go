package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if RANKVIEW_CONFIG is set
//  3. env (prefix RANKVIEW_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("RANKVIEW_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RANKVIEW_ADDR, RANKVIEW_BACKEND_BASE_URL, ...
	// Map env keys like RANKVIEW_MAX_WEEK -> max_week (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("RANKVIEW_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "rankview_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.BackendBaseURL == "" {
		return nil, fmt.Errorf("%w: backend_base_url must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxWeek < 1 {
		return nil, fmt.Errorf("%w: max_week must be positive", ErrInvalidConfig)
	}
	return &cfg, nil
}
