package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLinker()
	c.normalizeBlocking()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = ExpandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CanonicalCSV) == "" {
		c.Paths.CanonicalCSV = defaultCanonicalCSV
	}
	if c.Paths.CanonicalCSV, err = ExpandPath(c.Paths.CanonicalCSV); err != nil {
		return fmt.Errorf("paths.canonical_csv: %w", err)
	}
	return nil
}

func (c *Config) normalizeLinker() {
	if c.Linker.SampleSize == 0 {
		c.Linker.SampleSize = defaultSampleSize
	}
}

func (c *Config) normalizeBlocking() {
	if c.Blocking.MaxCandidateRatio == 0 {
		c.Blocking.MaxCandidateRatio = defaultMaxCandidateRatio
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
