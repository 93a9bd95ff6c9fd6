// Package testsupport provides helpers shared by package tests: temp-dir
// seeded configurations and CSV fixtures.
package testsupport

import (
	"path/filepath"
	"testing"

	"gazetteer/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CanonicalCSV = filepath.Join(base, "canonical.csv")
	cfg.Logging.Level = "error"

	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}

// WithCutoff overrides the link acceptance cutoff on the test config.
func WithCutoff(cutoff float64) ConfigOption {
	return func(c *config.Config) {
		c.Linker.Cutoff = cutoff
	}
}

// WithLabelingBudget caps labels collected per session on the test config.
func WithLabelingBudget(budget int) ConfigOption {
	return func(c *config.Config) {
		c.Linker.LabelingBudget = budget
	}
}
