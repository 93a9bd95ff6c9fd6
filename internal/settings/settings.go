package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gazetteer/internal/blocking"
	"gazetteer/internal/compare"
	"gazetteer/internal/learner"
)

// Version is the current settings schema version. Bump on incompatible
// changes; stale files are rejected, forcing a retrain.
const Version = 1

// ErrNotFound indicates no settings file exists yet.
var ErrNotFound = errors.New("settings file not found")

// ErrVersionMismatch indicates the settings file was written by an
// incompatible schema version.
var ErrVersionMismatch = errors.New("settings schema version mismatch")

// Settings is the serialized linker state.
type Settings struct {
	Version          int                  `json:"version"`
	TrainedAt        time.Time            `json:"trained_at"`
	Fields           []compare.Field      `json:"fields"`
	Predicates       []blocking.Predicate `json:"predicates"`
	PredicateWeights []float64            `json:"predicate_weights"`
	Model            *learner.Model       `json:"model"`
	IDF              []map[string]float64 `json:"idf"`
}

// Load reads and validates a settings file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse settings %s: %w", path, err)
	}
	if loaded.Version != Version {
		return nil, fmt.Errorf("%w: %s has version %d, expected %d (delete the file to retrain)",
			ErrVersionMismatch, path, loaded.Version, Version)
	}
	if loaded.Model == nil {
		return nil, fmt.Errorf("settings %s has no trained model", path)
	}
	return &loaded, nil
}

// Save writes the settings atomically: a temp file in the target directory is
// renamed over the destination once fully written.
func (s *Settings) Save(path string) error {
	s.Version = Version

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write settings %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close settings %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace settings %s: %w", path, err)
	}
	return nil
}
