// Package diarize wraps the external speaker-diarization engine.
//
// The engine itself is an external collaborator: it partitions a canonical
// wav into per-speaker turn groups and writes a segmentation file. This
// package runs it and converts its output into the cluster model, in the
// order the engine reported the clusters.
package diarize

import (
	"context"

	"speakerid/internal/cluster"
)

// Diarizer is the narrow capability contract the pipeline depends on.
type Diarizer interface {
	// ExtractClusters partitions the given canonical wav into speaker
	// clusters, returned in diarization order. Failures are fatal to the
	// run and are never retried.
	ExtractClusters(ctx context.Context, wavPath string) ([]*cluster.Cluster, error)
}
