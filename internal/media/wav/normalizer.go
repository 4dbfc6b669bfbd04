// Package wav ensures a canonical wav file exists before diarization runs.
//
// Canonical format is mono, 16 kHz, 16-bit PCM: the only input the external
// diarizer accepts. Anything else is handed to the transcoder with a fixed
// conversion recipe.
package wav

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"speakerid/internal/logging"
	"speakerid/internal/media/ffmpeg"
	"speakerid/internal/media/ffprobe"
	"speakerid/internal/services"
)

const (
	canonicalCodec      = "pcm_s16le"
	canonicalSampleRate = 16000
	canonicalChannels   = 1
)

// ProbeFunc inspects a media file. Injectable for tests.
type ProbeFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// Normalizer probes input files and transcodes the ones that are not
// already canonical wavs.
type Normalizer struct {
	probe      ProbeFunc
	transcoder *ffmpeg.Client
	strict     bool
	logger     *slog.Logger
}

// NewNormalizer builds a normalizer around the given ffprobe binary and
// ffmpeg client. When strict is false a failed transcode is logged and the
// derived canonical path is returned anyway, preserving the legacy
// silent-continuation behavior.
func NewNormalizer(probeBinary string, transcoder *ffmpeg.Client, strict bool, logger *slog.Logger) *Normalizer {
	return &Normalizer{
		probe: func(ctx context.Context, path string) (ffprobe.Result, error) {
			return ffprobe.Inspect(ctx, probeBinary, path)
		},
		transcoder: transcoder,
		strict:     strict,
		logger:     logging.NewComponentLogger(logger, "normalize"),
	}
}

// WithProbe sets a custom probe (for testing).
func (n *Normalizer) WithProbe(probe ProbeFunc) *Normalizer {
	if probe != nil {
		n.probe = probe
	}
	return n
}

// CanonicalPath derives the canonical wav location from the file's base
// name: the same directory, extension replaced with ".wav". The derivation
// is purely lexical and does not check that the file exists.
func CanonicalPath(file string) string {
	dir := filepath.Dir(file)
	base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	return filepath.Join(dir, base+".wav")
}

// EnsureCanonicalWav returns the canonical wav path for file, transcoding
// first when the input is not already mono 16 kHz 16-bit wav. A probe
// failure counts as an undecodable container and also routes through the
// transcoder.
func (n *Normalizer) EnsureCanonicalWav(ctx context.Context, file string) (string, error) {
	canonical := CanonicalPath(file)

	if n.isCanonical(ctx, file) {
		return canonical, nil
	}

	result := n.transcoder.ToCanonicalWav(ctx, file, canonical)
	if result.Failed() {
		if n.strict {
			return "", services.Wrap(services.ErrExternalTool, "normalize", "transcode", file, result.Err)
		}
		// Legacy behavior: the exit status is observed but does not
		// change the returned path or abort the run.
		n.logger.Warn("transcode failed; continuing with derived canonical path",
			logging.String(logging.FieldFile, file),
			logging.Int(logging.FieldExitCode, result.ExitCode),
			logging.Error(result.Err),
		)
		return canonical, nil
	}

	n.logger.Info("transcoded to canonical wav",
		logging.String(logging.FieldFile, file),
		logging.String("canonical", canonical),
	)
	return canonical, nil
}

func (n *Normalizer) isCanonical(ctx context.Context, file string) bool {
	if !strings.EqualFold(filepath.Ext(file), ".wav") {
		return false
	}
	result, err := n.probe(ctx, file)
	if err != nil {
		n.logger.Warn("probe could not decode input",
			logging.String(logging.FieldFile, file),
			logging.Error(services.Wrap(services.ErrUnsupportedFormat, "normalize", "probe", file, err)),
		)
		return false
	}
	stream, ok := result.FirstAudioStream()
	if !ok {
		return false
	}
	return stream.CodecName == canonicalCodec &&
		stream.SampleRateHz() == canonicalSampleRate &&
		stream.Channels == canonicalChannels
}
