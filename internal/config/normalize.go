package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeTools(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DBDir) == "" {
		c.Paths.DBDir = defaultDBDir
	}
	if c.Paths.DBDir, err = expandPath(c.Paths.DBDir); err != nil {
		return fmt.Errorf("paths.db_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() error {
	var err error
	if strings.TrimSpace(c.Tools.DiarizerJar) == "" {
		c.Tools.DiarizerJar = defaultDiarizerJar
	}
	if c.Tools.DiarizerJar, err = expandPath(c.Tools.DiarizerJar); err != nil {
		return fmt.Errorf("tools.diarizer_jar: %w", err)
	}
	if strings.TrimSpace(c.Tools.UBMPath) == "" {
		c.Tools.UBMPath = defaultUBMPath
	}
	if c.Tools.UBMPath, err = expandPath(c.Tools.UBMPath); err != nil {
		return fmt.Errorf("tools.ubm_path: %w", err)
	}
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Tools.Java = strings.TrimSpace(c.Tools.Java)
	return nil
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
