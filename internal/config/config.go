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

// Paths contains directory configuration.
type Paths struct {
	DBDir   string `toml:"db_dir"`
	WorkDir string `toml:"work_dir"`
	LogDir  string `toml:"log_dir"`
}

// Tools contains the external executables and model files the pipeline
// shells out to.
type Tools struct {
	FFmpeg      string `toml:"ffmpeg"`
	FFprobe     string `toml:"ffprobe"`
	Java        string `toml:"java"`
	DiarizerJar string `toml:"diarizer_jar"`
	UBMPath     string `toml:"ubm_path"`
}

// Identify contains the scoring chain parameters.
//
// Scores coming back from the voiceprint database are GMM log-likelihood
// ratios where higher is better; Threshold is an absolute floor and Margin
// is the maximum allowed distance from the best surviving score.
type Identify struct {
	Threshold float64 `toml:"threshold"`
	Margin    float64 `toml:"margin"`
}

// Transcode contains format-normalization behavior.
type Transcode struct {
	// Strict surfaces a non-zero transcoder exit as an error instead of
	// logging it and continuing with the derived canonical path.
	Strict bool `toml:"strict"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for speakerid.
//
// Configuration sections by subsystem:
//   - Paths: voiceprint database, per-run work area, and log directories
//   - Tools: external binaries (ffmpeg/ffprobe/java) and diarizer assets
//   - Identify: threshold and near-tie margin for the strategy chain
//   - Transcode: strict vs. legacy handling of transcoder failures
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Tools     Tools     `toml:"tools"`
	Identify  Identify  `toml:"identify"`
	Transcode Transcode `toml:"transcode"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/speakerid/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
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
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
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

	projectPath, err := filepath.Abs("speakerid.toml")
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

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// EnsureDirectories creates the directories a run needs before any phase executes.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	// The database directory is partitioned by gender; missing partitions
	// are created so enrollment and lookup agree on the layout.
	for _, gender := range []string{"M", "F", "U"} {
		dir := filepath.Join(c.Paths.DBDir, gender)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create model directory %q: %w", dir, err)
		}
	}
	return nil
}

// FFmpegBinary returns the ffmpeg executable used for transcoding and slicing.
func (c *Config) FFmpegBinary() string {
	if strings.TrimSpace(c.Tools.FFmpeg) != "" {
		return c.Tools.FFmpeg
	}
	return "ffmpeg"
}

// FFprobeBinary returns the ffprobe executable used for the format probe.
func (c *Config) FFprobeBinary() string {
	if strings.TrimSpace(c.Tools.FFprobe) != "" {
		return c.Tools.FFprobe
	}
	return "ffprobe"
}

// JavaBinary returns the JVM executable used to run the diarizer and scorer.
func (c *Config) JavaBinary() string {
	if strings.TrimSpace(c.Tools.Java) != "" {
		return c.Tools.Java
	}
	return "java"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}
