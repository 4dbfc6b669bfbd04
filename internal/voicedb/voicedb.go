// Package voicedb defines the voiceprint database capability the
// identification engine queries.
package voicedb

import (
	"context"

	"speakerid/internal/scoring"
	"speakerid/internal/speaker"
)

// Database is the narrow lookup contract the pipeline depends on.
//
// Lookup compares a cluster's sample against every stored voiceprint for
// the given gender and returns one score per comparable identity. Scores
// are log-likelihood ratios: higher is better. ok is false when the
// database holds no comparable voiceprints for that gender, which the
// caller must treat as "no match possible", not as an error.
type Database interface {
	Lookup(ctx context.Context, samplePath string, gender speaker.Gender) (scores scoring.Scores, ok bool, err error)
}
