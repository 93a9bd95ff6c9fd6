package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration values and returns a combined error listing
// every problem found.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Paths.CanonicalCSV) == "" {
		errs = append(errs, errors.New("paths.canonical_csv must be set"))
	}
	if c.Linker.Cutoff < 0 || c.Linker.Cutoff >= 1 {
		errs = append(errs, fmt.Errorf("linker.cutoff must be in [0, 1), got %v", c.Linker.Cutoff))
	}
	if c.Linker.SampleSize <= 0 {
		errs = append(errs, fmt.Errorf("linker.sample_size must be positive, got %d", c.Linker.SampleSize))
	}
	if c.Linker.LabelingBudget < 0 {
		errs = append(errs, fmt.Errorf("linker.labeling_budget must not be negative, got %d", c.Linker.LabelingBudget))
	}
	if c.Linker.ScoreWorkers < 0 {
		errs = append(errs, fmt.Errorf("linker.score_workers must not be negative, got %d", c.Linker.ScoreWorkers))
	}
	if c.Blocking.MaxCandidateRatio <= 0 {
		errs = append(errs, fmt.Errorf("blocking.max_candidate_ratio must be positive, got %v", c.Blocking.MaxCandidateRatio))
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
