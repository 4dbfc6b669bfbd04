package diarize

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"speakerid/internal/cluster"
	"speakerid/internal/logging"
	"speakerid/internal/services"
)

// LIUM runs a LIUM-style diarizer jar against a canonical wav and parses
// the segmentation file it writes next to the input.
type LIUM struct {
	java   string
	jar    string
	logger *slog.Logger
	runner func(ctx context.Context, name string, args ...string) error
}

// NewLIUM builds a diarizer around the given JVM binary and jar path.
func NewLIUM(java, jar string, logger *slog.Logger) *LIUM {
	java = strings.TrimSpace(java)
	if java == "" {
		java = "java"
	}
	return &LIUM{
		java:   java,
		jar:    jar,
		logger: logging.NewComponentLogger(logger, "diarize"),
	}
}

// WithRunner sets a custom command runner (for testing).
func (l *LIUM) WithRunner(runner func(ctx context.Context, name string, args ...string) error) *LIUM {
	if runner != nil {
		l.runner = runner
	}
	return l
}

// ExtractClusters implements Diarizer.
func (l *LIUM) ExtractClusters(ctx context.Context, wavPath string) ([]*cluster.Cluster, error) {
	show := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))
	segPath := show + ".seg"

	args := []string{
		"-Xmx2024m",
		"-jar", l.jar,
		"--fInputMask=" + show + ".wav",
		"--sOutputMask=" + show + ".seg",
		"--doCEClustering",
		filepath.Base(show),
	}
	if err := l.run(ctx, l.java, args...); err != nil {
		return nil, services.Wrap(services.ErrDiarization, "diarize", "run engine", wavPath, err)
	}

	file, err := os.Open(segPath)
	if err != nil {
		return nil, services.Wrap(services.ErrDiarization, "diarize", "open segmentation", segPath, err)
	}
	defer file.Close()

	clusters, err := ParseSeg(file)
	if err != nil {
		return nil, services.Wrap(services.ErrDiarization, "diarize", "parse segmentation", segPath, err)
	}
	l.logger.Info("diarization complete",
		logging.String(logging.FieldFile, wavPath),
		logging.Int("clusters", len(clusters)),
	)
	return clusters, nil
}

func (l *LIUM) run(ctx context.Context, name string, args ...string) error {
	if l.runner != nil {
		return l.runner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
