package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"audiocut/internal/config"
	"audiocut/internal/cutter"
	"audiocut/internal/deps"
	"audiocut/internal/logging"
	"audiocut/internal/media/ffmpeg"
	"audiocut/internal/tablestore"
	"audiocut/internal/timecode"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error

	toolkitOnce sync.Once
	toolkit     *ffmpeg.Client
	toolkitErr  error

	store *tablestore.Store
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
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

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		level := cfg.Logging.Level
		if c.logLevelFlag != nil && strings.TrimSpace(*c.logLevelFlag) != "" {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		format := cfg.Logging.Format
		if c.logFormatFlag != nil && strings.TrimSpace(*c.logFormatFlag) != "" {
			format = strings.TrimSpace(*c.logFormatFlag)
		}
		c.logger, c.loggerErr = logging.New(logging.Options{Level: level, Format: format})
	})
	return c.logger, c.loggerErr
}

func (c *commandContext) ensureToolkit() (*ffmpeg.Client, error) {
	c.toolkitOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.toolkitErr = err
			return
		}
		logger, err := c.ensureLogger()
		if err != nil {
			c.toolkitErr = err
			return
		}
		ffmpegPath, ffprobePath, err := deps.ResolveFFmpeg(cfg.FFmpeg.SearchPath)
		if err != nil {
			c.toolkitErr = err
			return
		}
		c.toolkit, c.toolkitErr = ffmpeg.New(ffmpegPath, ffprobePath, ffmpeg.WithLogger(logger))
	})
	return c.toolkit, c.toolkitErr
}

// newCutter wires a Cutter with the configured work directory and, when
// enabled, the persistent timecode table cache. The store stays open for the
// process lifetime; closeStore releases it.
func (c *commandContext) newCutter() (*cutter.Cutter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, err
	}
	toolkit, err := c.ensureToolkit()
	if err != nil {
		return nil, err
	}

	cache := timecode.NewCache()
	if cfg.TableCache.Enabled {
		store, err := tablestore.Open(cfg.TableCache.Path)
		if err != nil {
			logger.Warn("timecode table cache unavailable", logging.Error(err))
		} else {
			c.store = store
			cache = cache.WithStore(store)
		}
	}
	return cutter.New(toolkit, cfg.Paths.WorkDir, cutter.WithLogger(logger), cutter.WithCache(cache))
}

func (c *commandContext) closeStore() {
	if c.store != nil {
		_ = c.store.Close()
		c.store = nil
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
