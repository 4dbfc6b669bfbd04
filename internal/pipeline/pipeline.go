// Package pipeline drives one identification run through its phases:
// validate, normalize format, diarize, trim, identify, report. Phases run
// strictly in order and a pipeline instance serves exactly one input file;
// a batch driver creates one pipeline per file.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"speakerid/internal/cluster"
	"speakerid/internal/logging"
	"speakerid/internal/report"
	"speakerid/internal/services"
	"speakerid/internal/speaker"
)

// State names the pipeline's position in its linear phase sequence.
type State string

const (
	StateCreated     State = "created"
	StateValidated   State = "validated"
	StateFormatReady State = "format_ready"
	StateDiarized    State = "diarized"
	StateMatched     State = "matched"
	StateReported    State = "reported"
)

// Normalizer converts the input into the canonical mono 16 kHz 16-bit wav.
type Normalizer interface {
	EnsureCanonicalWav(ctx context.Context, file string) (string, error)
}

// Diarizer segments the canonical wav into speaker clusters.
type Diarizer interface {
	ExtractClusters(ctx context.Context, wavPath string) ([]*cluster.Cluster, error)
}

// Trimmer slices per-segment audio and assembles each cluster's sample.
type Trimmer interface {
	TrimCluster(ctx context.Context, c *cluster.Cluster, canonicalWav string) error
	BuildSample(ctx context.Context, c *cluster.Cluster) error
}

// Matcher resolves one cluster's identity. It absorbs its own failures and
// never returns an error.
type Matcher interface {
	MatchCluster(ctx context.Context, c *cluster.Cluster) speaker.Identifier
}

// Pipeline owns the cluster sequence for a single run. It is not safe for
// concurrent use.
type Pipeline struct {
	input      string
	canonical  string
	state      State
	clusters   []*cluster.Cluster
	trimErrors map[string]error

	normalizer Normalizer
	diarizer   Diarizer
	trimmer    Trimmer
	matcher    Matcher
	logger     *slog.Logger
}

// New builds a pipeline for one input file.
func New(input string, normalizer Normalizer, diarizer Diarizer, trimmer Trimmer, matcher Matcher, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		input:      input,
		state:      StateCreated,
		trimErrors: make(map[string]error),
		normalizer: normalizer,
		diarizer:   diarizer,
		trimmer:    trimmer,
		matcher:    matcher,
		logger:     logging.NewComponentLogger(logger, "pipeline"),
	}
}

// State returns the pipeline's current phase.
func (p *Pipeline) State() State {
	return p.state
}

// Clusters returns the run's cluster sequence in diarization order. Valid
// once the pipeline reaches the diarized state.
func (p *Pipeline) Clusters() []*cluster.Cluster {
	return p.clusters
}

// TrimFailures returns per-cluster trim errors keyed by cluster label.
func (p *Pipeline) TrimFailures() map[string]error {
	return p.trimErrors
}

func (p *Pipeline) require(expected State, operation string) error {
	if p.state != expected {
		err := services.Wrap(services.ErrState, "pipeline", operation,
			fmt.Sprintf("state %s, want %s", p.state, expected), nil)
		p.logger.Error("phase out of order",
			logging.String(logging.FieldPhase, operation),
			logging.Error(err),
		)
		return err
	}
	return nil
}

// Validate checks that the input path names a regular, readable file.
// Failure is fatal and leaves the pipeline in the created state.
func (p *Pipeline) Validate() error {
	if err := p.require(StateCreated, "validate"); err != nil {
		return err
	}
	info, err := os.Stat(p.input)
	if err != nil {
		return services.Wrap(services.ErrInput, "pipeline", "validate", p.input, err)
	}
	if !info.Mode().IsRegular() {
		return services.Wrap(services.ErrInput, "pipeline", "validate",
			p.input+": not a regular file", nil)
	}
	f, err := os.Open(p.input)
	if err != nil {
		return services.Wrap(services.ErrInput, "pipeline", "validate", p.input, err)
	}
	f.Close()
	p.state = StateValidated
	return nil
}

// EnsureCanonicalWav normalizes the validated input to the canonical wav
// format and records the canonical path for the later phases.
func (p *Pipeline) EnsureCanonicalWav(ctx context.Context) error {
	if err := p.require(StateValidated, "ensure canonical wav"); err != nil {
		return err
	}
	canonical, err := p.normalizer.EnsureCanonicalWav(ctx, p.input)
	if err != nil {
		return err
	}
	p.canonical = canonical
	p.state = StateFormatReady
	p.logger.Debug("canonical wav ready", logging.String(logging.FieldFile, canonical))
	return nil
}

// ExtractClusters runs diarization and then trims every returned cluster in
// order, building its merged sample. Diarization failure is fatal and not
// retried. A trim or merge failure is fatal for that cluster only: it is
// recorded, the cluster keeps no sample, and the remaining clusters are
// still processed.
func (p *Pipeline) ExtractClusters(ctx context.Context) error {
	if err := p.require(StateFormatReady, "extract clusters"); err != nil {
		return err
	}
	clusters, err := p.diarizer.ExtractClusters(ctx, p.canonical)
	if err != nil {
		return err
	}
	p.clusters = clusters
	p.logger.Info("diarization complete", logging.Int("clusters", len(clusters)))

	for _, c := range p.clusters {
		if err := p.trimmer.TrimCluster(ctx, c, p.canonical); err != nil {
			p.trimErrors[c.Label] = err
			p.logger.Warn("trimming failed, skipping cluster sample",
				logging.String(logging.FieldCluster, c.Label),
				logging.Error(err),
			)
			continue
		}
		if err := p.trimmer.BuildSample(ctx, c); err != nil {
			p.trimErrors[c.Label] = err
			p.logger.Warn("sample assembly failed",
				logging.String(logging.FieldCluster, c.Label),
				logging.Error(err),
			)
		}
	}
	p.state = StateDiarized
	return nil
}

// MatchClusters resolves an identity for every cluster in diarization
// order. It always completes: per-cluster failures are absorbed by the
// matcher, which substitutes the unknown sentinel.
func (p *Pipeline) MatchClusters(ctx context.Context) error {
	if err := p.require(StateDiarized, "match clusters"); err != nil {
		return err
	}
	start := time.Now()
	for _, c := range p.clusters {
		id := p.matcher.MatchCluster(ctx, c)
		p.logger.Info("cluster matched",
			logging.String(logging.FieldCluster, c.Label),
			logging.String(logging.FieldSpeaker, id.Name()),
		)
	}
	p.logger.Debug("matching complete",
		logging.Int("clusters", len(p.clusters)),
		logging.Duration("elapsed", time.Since(start)),
	)
	p.state = StateMatched
	return nil
}

// Report yields the (label, identity) assignments in diarization order.
func (p *Pipeline) Report() ([]report.Assignment, error) {
	if err := p.require(StateMatched, "report"); err != nil {
		return nil, err
	}
	assignments := make([]report.Assignment, 0, len(p.clusters))
	for _, c := range p.clusters {
		assignments = append(assignments, report.Assignment{
			Label:      c.Label,
			Identifier: c.Identity(),
			Speech:     c.Speech().Seconds(),
		})
	}
	p.state = StateReported
	return assignments, nil
}

// Run executes every phase in order and returns the final assignments.
func (p *Pipeline) Run(ctx context.Context) ([]report.Assignment, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.EnsureCanonicalWav(ctx); err != nil {
		return nil, err
	}
	if err := p.ExtractClusters(ctx); err != nil {
		return nil, err
	}
	if err := p.MatchClusters(ctx); err != nil {
		return nil, err
	}
	return p.Report()
}
