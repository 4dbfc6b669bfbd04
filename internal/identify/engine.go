// Package identify converts voiceprint lookup results into per-cluster
// speaker assignments via the fixed strategy chain.
package identify

import (
	"context"
	"log/slog"

	"speakerid/internal/cluster"
	"speakerid/internal/logging"
	"speakerid/internal/scoring"
	"speakerid/internal/speaker"
	"speakerid/internal/voicedb"
)

// Engine matches clusters against the voiceprint database. It never fails:
// any error during lookup, filtering, or selection collapses to the unknown
// sentinel for that cluster, and the pipeline moves on.
type Engine struct {
	db         voicedb.Database
	strategies []scoring.Strategy
	logger     *slog.Logger
}

// NewEngine builds an engine with the fixed strategy chain: an absolute
// threshold first, then the near-tie distance filter.
func NewEngine(db voicedb.Database, threshold, margin float64, logger *slog.Logger) *Engine {
	return &Engine{
		db: db,
		strategies: []scoring.Strategy{
			scoring.Threshold{Cutoff: threshold},
			scoring.Distance{Margin: margin},
		},
		logger: logging.NewComponentLogger(logger, "identify"),
	}
}

// MatchCluster assigns an identity to the cluster and returns it.
//
// When the lookup reports no comparable voiceprints the cluster is left
// unassigned, which resolves to unknown, without running the strategy
// chain. Lookup errors and an empty post-filter candidate set both assign
// the unknown sentinel explicitly.
func (e *Engine) MatchCluster(ctx context.Context, c *cluster.Cluster) speaker.Identifier {
	scores, ok, err := e.db.Lookup(ctx, c.Sample, c.Gender)
	if err != nil {
		e.logger.Warn("voiceprint lookup failed; cluster stays unknown",
			logging.String(logging.FieldCluster, c.Label),
			logging.Error(err),
		)
		c.SetIdentifier(speaker.Unknown())
		return c.Identity()
	}
	if !ok || len(scores) == 0 {
		e.logger.Debug("no comparable voiceprints",
			logging.String(logging.FieldCluster, c.Label),
			logging.String("gender", c.Gender.String()),
		)
		return c.Identity()
	}

	if diag, ok := scores.Describe(); ok {
		e.logger.Debug("lookup scores",
			logging.String(logging.FieldCluster, c.Label),
			logging.Float64("best", diag.Best),
			logging.Float64("mean", diag.Mean),
			logging.Float64("mean_distance", diag.MeanDistance),
		)
	}

	winner, ok := scores.Best(e.strategies...)
	if !ok {
		c.SetIdentifier(speaker.Unknown())
		return c.Identity()
	}

	c.SetIdentifier(winner)
	e.logger.Info("cluster matched",
		logging.String(logging.FieldCluster, c.Label),
		logging.String(logging.FieldSpeaker, winner.Name()),
	)
	return c.Identity()
}
