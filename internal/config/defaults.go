package config

const (
	defaultDBDir       = "~/.local/share/speakerid/gmm_db"
	defaultWorkDir     = "~/.local/share/speakerid/work"
	defaultLogDir      = "~/.local/share/speakerid/logs"
	defaultDiarizerJar = "~/.local/share/speakerid/lib/LIUM_SpkDiarization-4.7.jar"
	defaultUBMPath     = "~/.local/share/speakerid/lib/ubm.gmm"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"

	// Scoring defaults match the database's log-likelihood metric:
	// models below the floor are rejected outright, and the margin keeps
	// only candidates effectively tied with the best one.
	defaultThreshold = -33.0
	defaultMargin    = 0.01
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DBDir:   defaultDBDir,
			WorkDir: defaultWorkDir,
			LogDir:  defaultLogDir,
		},
		Tools: Tools{
			FFmpeg:      "ffmpeg",
			FFprobe:     "ffprobe",
			Java:        "java",
			DiarizerJar: defaultDiarizerJar,
			UBMPath:     defaultUBMPath,
		},
		Identify: Identify{
			Threshold: defaultThreshold,
			Margin:    defaultMargin,
		},
		Transcode: Transcode{
			Strict: false,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
