package testsupport

import (
	"path/filepath"
	"testing"

	"transmute/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp paths per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Checkpoint.Path = filepath.Join(base, "checkpoint.db")
	cfg.Principals.Remove = []string{"admin"}
	cfg.Principals.Default = "editor"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSteps overrides the configured pipeline step list.
func WithSteps(steps ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Pipeline.Steps = steps
	}
}

// WithAllowedPaths sets the allowed path prefixes on the path filter.
func WithAllowedPaths(prefixes ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.Filter.Allowed = prefixes
	}
}

// WithDropPaths sets the dropped path prefixes on the path filter.
func WithDropPaths(prefixes ...string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Paths.Filter.Drop = prefixes
	}
}
