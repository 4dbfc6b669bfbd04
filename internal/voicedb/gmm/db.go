// Package gmm implements the voiceprint database over a directory of
// Gaussian-mixture speaker models with a SQLite registry.
//
// Models live under <db_dir>/<gender>/ and are scored against a cluster's
// sample by an external scoring process. The registry maps model files to
// speaker names; lookups consult only the partition matching the cluster's
// estimated gender, the same layout the enrollment side writes.
package gmm

import (
	"context"
	"log/slog"

	"speakerid/internal/logging"
	"speakerid/internal/scoring"
	"speakerid/internal/speaker"
)

// DB implements voicedb.Database.
type DB struct {
	store  *Store
	scorer Scorer
	logger *slog.Logger
}

// NewDB wires a registry store and a scorer into a Database.
func NewDB(store *Store, scorer Scorer, logger *slog.Logger) *DB {
	return &DB{
		store:  store,
		scorer: scorer,
		logger: logging.NewComponentLogger(logger, "voicedb"),
	}
}

// Lookup scores samplePath against every registered model for gender.
// ok is false when the partition holds no speakers: there is nothing to
// compare against, which is not an error.
func (d *DB) Lookup(ctx context.Context, samplePath string, gender speaker.Gender) (scoring.Scores, bool, error) {
	speakers, err := d.store.SpeakersByGender(ctx, gender)
	if err != nil {
		return nil, false, err
	}
	if len(speakers) == 0 {
		return nil, false, nil
	}

	scores := make(scoring.Scores, len(speakers))
	for _, sp := range speakers {
		value, err := d.scorer.Score(ctx, samplePath, sp.ModelPath)
		if err != nil {
			return nil, false, err
		}
		id := speaker.NewIdentifier(sp.Name)
		// A speaker may have several enrolled models; keep the best.
		if existing, ok := scores[id]; !ok || value > existing {
			scores[id] = value
		}
	}
	d.logger.Debug("voiceprint lookup complete",
		logging.String("gender", gender.String()),
		logging.Int("models", len(speakers)),
		logging.Int("candidates", len(scores)),
	)
	return scores, true, nil
}
