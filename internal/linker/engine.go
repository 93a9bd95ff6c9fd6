package linker

import (
	"fmt"
	"log/slog"

	"gazetteer/internal/compare"
	"gazetteer/internal/config"
	"gazetteer/internal/logging"
	"gazetteer/internal/record"
	"gazetteer/internal/settings"
)

// Engine ties the linkage stages to the configured data directory.
type Engine struct {
	cfg    *config.Config
	logger *slog.Logger
}

// New constructs an Engine. A nil logger logs nowhere.
func New(cfg *config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "linker"),
	}
}

// Settings loads the trained settings for this engine's data directory.
func (e *Engine) Settings() (*settings.Settings, error) {
	return settings.Load(e.cfg.SettingsPath())
}

func (e *Engine) acquireLock() (*settings.Lock, error) {
	if err := e.cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return settings.AcquireLock(e.cfg.LockPath())
}

func (e *Engine) loadDatasets(messyPath string) (canonical, messy *record.Dataset, err error) {
	canonical, err = record.LoadCanonical(e.cfg.Paths.CanonicalCSV)
	if err != nil {
		return nil, nil, fmt.Errorf("load canonical gazetteer: %w", err)
	}
	messy, err = record.LoadMessy(messyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load messy input: %w", err)
	}
	e.logger.Info("datasets loaded",
		logging.Int("canonical_records", canonical.Len()),
		logging.Int("messy_records", messy.Len()))
	return canonical, messy, nil
}

func (e *Engine) predicateBudget(canonical, messy *record.Dataset) int {
	larger := canonical.Len()
	if messy.Len() > larger {
		larger = messy.Len()
	}
	return int(e.cfg.Blocking.MaxCandidateRatio * float64(larger))
}

func newScorer(canonical, messy *record.Dataset) (*compare.Scorer, error) {
	return compare.NewScorer(compare.DefaultFields(), canonical, messy)
}
