package main

import (
	"log/slog"
	"strings"
	"sync"

	"gazetteer/internal/config"
	"gazetteer/internal/logging"
)

type commandContext struct {
	configFlag *string
	verbosity  *int

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string, verbosity *int) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		verbosity:  verbosity,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the shared logger. Repeated -v flags raise the
// configured level: one for info, two or more for debug.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.verbosity != nil {
			switch {
			case *c.verbosity >= 2:
				level = "debug"
			case *c.verbosity == 1:
				level = "info"
			}
		}
		override := *cfg
		override.Logging.Level = level
		c.logger, c.loggerErr = logging.NewFromConfig(&override)
	})
	return c.logger, c.loggerErr
}
