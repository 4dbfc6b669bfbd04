// Package trim slices the canonical wav into per-cluster segment files and
// assembles each cluster's sample from them.
package trim

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"speakerid/internal/cluster"
	"speakerid/internal/logging"
	"speakerid/internal/services"
)

// Slicer extracts one time span from a source file. Satisfied by the
// ffmpeg client.
type Slicer interface {
	Slice(ctx context.Context, source string, start, end time.Duration, dest string) error
}

// Merger concatenates audio files. Satisfied by the ffmpeg client.
type Merger interface {
	Merge(ctx context.Context, inputs []string, dest string) error
}

// Trimmer writes segment files under <workDir>/<label>/ in segment order.
type Trimmer struct {
	slicer  Slicer
	merger  Merger
	workDir string
	logger  *slog.Logger
}

// New builds a trimmer that writes under workDir.
func New(slicer Slicer, merger Merger, workDir string, logger *slog.Logger) *Trimmer {
	return &Trimmer{
		slicer:  slicer,
		merger:  merger,
		workDir: workDir,
		logger:  logging.NewComponentLogger(logger, "trim"),
	}
}

// TrimCluster slices every segment of the cluster out of the canonical wav,
// strictly in ascending offset order, appending each produced path to the
// cluster as it lands. A slicing failure aborts the remaining segments of
// this cluster; files already produced stay on disk.
func (t *Trimmer) TrimCluster(ctx context.Context, c *cluster.Cluster, canonicalWav string) error {
	clusterDir := filepath.Join(t.workDir, c.Label)
	if err := os.MkdirAll(clusterDir, 0o755); err != nil {
		return services.Wrap(services.ErrExternalTool, "trim", "create cluster dir", c.Label, err)
	}

	for i, seg := range c.Segments {
		dest := filepath.Join(clusterDir, fmt.Sprintf("%s_%.2f.wav", c.Label, seg.Start.Seconds()))
		if err := t.slicer.Slice(ctx, canonicalWav, seg.Start, seg.End, dest); err != nil {
			return services.Wrap(services.ErrExternalTool, "trim", "slice segment",
				fmt.Sprintf("%s segment %d (%s)", c.Label, i, seg), err)
		}
		c.SegmentFiles = append(c.SegmentFiles, dest)
	}
	t.logger.Debug("cluster trimmed",
		logging.String(logging.FieldCluster, c.Label),
		logging.Int("segments", len(c.SegmentFiles)),
	)
	return nil
}

// BuildSample merges the cluster's segment files into one wav and records
// it as the cluster's sample, the input for the voiceprint lookup.
func (t *Trimmer) BuildSample(ctx context.Context, c *cluster.Cluster) error {
	if len(c.SegmentFiles) == 0 {
		return services.Wrap(services.ErrExternalTool, "trim", "build sample", c.Label+": no segment files", nil)
	}
	dest := filepath.Join(t.workDir, c.Label+".wav")
	if err := t.merger.Merge(ctx, c.SegmentFiles, dest); err != nil {
		return services.Wrap(services.ErrExternalTool, "trim", "merge segments", c.Label, err)
	}
	c.Sample = dest
	return nil
}
