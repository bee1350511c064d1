package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeFFmpeg(); err != nil {
		return err
	}
	if err := c.normalizeTableCache(); err != nil {
		return err
	}
	c.normalizeOutput()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() error {
	c.FFmpeg.SearchPath = strings.TrimSpace(c.FFmpeg.SearchPath)
	if c.FFmpeg.SearchPath == "" {
		if value, ok := os.LookupEnv("AUDIOCUT_FFMPEG_DIR"); ok {
			c.FFmpeg.SearchPath = strings.TrimSpace(value)
		}
	}
	if c.FFmpeg.SearchPath != "" {
		expanded, err := expandPath(c.FFmpeg.SearchPath)
		if err != nil {
			return fmt.Errorf("ffmpeg.search_path: %w", err)
		}
		c.FFmpeg.SearchPath = expanded
	}
	return nil
}

func (c *Config) normalizeTableCache() error {
	c.TableCache.Path = strings.TrimSpace(c.TableCache.Path)
	if c.TableCache.Path == "" {
		c.TableCache.Enabled = false
		return nil
	}
	expanded, err := expandPath(c.TableCache.Path)
	if err != nil {
		return fmt.Errorf("table_cache.path: %w", err)
	}
	c.TableCache.Path = expanded
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Template = strings.TrimSpace(c.Output.Template)
	if c.Output.Template == "" {
		c.Output.Template = defaultOutputTemplate
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
