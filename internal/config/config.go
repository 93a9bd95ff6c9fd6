package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and input file configuration.
type Paths struct {
	DataDir      string `toml:"data_dir"`
	LogDir       string `toml:"log_dir"`
	CanonicalCSV string `toml:"canonical_csv"`
}

// Linker contains thresholds for classification and labeling.
type Linker struct {
	// Cutoff is the minimum match probability required to accept a link.
	Cutoff float64 `toml:"cutoff"`
	// SampleSize caps the candidate pool presented to active learning.
	SampleSize int `toml:"sample_size"`
	// LabelingBudget caps labels collected per session. Zero means no cap.
	LabelingBudget int `toml:"labeling_budget"`
	// ScoreWorkers bounds concurrent pair scoring. Zero means one worker
	// per CPU.
	ScoreWorkers int `toml:"score_workers"`
}

// Blocking contains candidate generation budgets.
type Blocking struct {
	// MaxCandidateRatio bounds how many candidate pairs a single predicate
	// may generate, as a multiple of the larger dataset's size. Predicates
	// over the budget are dropped from the cover search.
	MaxCandidateRatio float64 `toml:"max_candidate_ratio"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for gazetteer.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Linker   Linker   `toml:"linker"`
	Blocking Blocking `toml:"blocking"`
	Logging  Logging  `toml:"logging"`
}

// SettingsPath is where the trained model and predicates live.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Paths.DataDir, "settings.json")
}

// TrainingDBPath is where labeled examples accumulate.
func (c *Config) TrainingDBPath() string {
	return filepath.Join(c.Paths.DataDir, "training.db")
}

// LockPath guards the data directory against concurrent runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "gazetteer.lock")
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/gazetteer/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("gazetteer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config %s: %w", path, err)
	}
	return nil
}

// ExpandPath resolves ~ and environment variables in a filesystem path.
func ExpandPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if path == "~" {
			return home, nil
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Clean(path), nil
}
