package identify

import (
	"context"
	"errors"
	"testing"

	"speakerid/internal/cluster"
	"speakerid/internal/logging"
	"speakerid/internal/scoring"
	"speakerid/internal/speaker"
)

type stubDB struct {
	scores scoring.Scores
	ok     bool
	err    error
	calls  int
}

func (s *stubDB) Lookup(_ context.Context, _ string, _ speaker.Gender) (scoring.Scores, bool, error) {
	s.calls++
	return s.scores, s.ok, s.err
}

func newTestEngine(db *stubDB) *Engine {
	return NewEngine(db, -33.0, 0.01, logging.NewNop())
}

func TestMatchClusterAssignsWinner(t *testing.T) {
	db := &stubDB{
		scores: scoring.Scores{speaker.NewIdentifier("alice"): -20.0},
		ok:     true,
	}
	c := cluster.New("S0", speaker.GenderFemale)

	got := newTestEngine(db).MatchCluster(context.Background(), c)
	if got.Name() != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
	if !c.Identified() {
		t.Fatal("cluster should be identified")
	}
}

func TestMatchClusterAbsentScoresLeavesUnassigned(t *testing.T) {
	db := &stubDB{ok: false}
	c := cluster.New("S1", speaker.GenderMale)

	got := newTestEngine(db).MatchCluster(context.Background(), c)
	if !got.IsUnknown() {
		t.Fatalf("expected unknown, got %q", got)
	}
	if c.Identified() {
		t.Fatal("absent scores must not mark the cluster assigned")
	}
}

func TestMatchClusterLookupErrorBecomesUnknown(t *testing.T) {
	db := &stubDB{err: errors.New("database offline")}
	c := cluster.New("S0", speaker.GenderUnknown)

	got := newTestEngine(db).MatchCluster(context.Background(), c)
	if !got.IsUnknown() {
		t.Fatalf("expected unknown on lookup error, got %q", got)
	}
	if !c.Identified() {
		t.Fatal("lookup error should assign the sentinel explicitly")
	}
}

func TestMatchClusterAllFilteredBecomesUnknown(t *testing.T) {
	db := &stubDB{
		scores: scoring.Scores{speaker.NewIdentifier("alice"): -50.0},
		ok:     true,
	}
	c := cluster.New("S0", speaker.GenderFemale)

	got := newTestEngine(db).MatchCluster(context.Background(), c)
	if !got.IsUnknown() {
		t.Fatalf("expected unknown below threshold, got %q", got)
	}
}

func TestMatchClusterDeterministicTie(t *testing.T) {
	db := &stubDB{
		scores: scoring.Scores{
			speaker.NewIdentifier("zoe"):   -20.0,
			speaker.NewIdentifier("alice"): -20.0,
		},
		ok: true,
	}

	for i := 0; i < 20; i++ {
		c := cluster.New("S0", speaker.GenderFemale)
		got := newTestEngine(db).MatchCluster(context.Background(), c)
		if got.Name() != "alice" {
			t.Fatalf("run %d: tie-break should pick alice, got %q", i, got)
		}
	}
}
