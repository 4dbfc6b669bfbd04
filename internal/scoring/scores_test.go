package scoring

import (
	"math"
	"testing"

	"speakerid/internal/speaker"
)

func id(name string) speaker.Identifier {
	return speaker.NewIdentifier(name)
}

func TestThresholdKeepsPassingScores(t *testing.T) {
	in := Scores{
		id("alice"): -20.0,
		id("bob"):   -40.0,
		id("carol"): -33.0,
	}
	out := Threshold{Cutoff: -33.0}.Apply(in)
	if len(out) != 1 {
		t.Fatalf("expected one survivor, got %v", out)
	}
	if _, ok := out[id("alice")]; !ok {
		t.Fatalf("expected alice to survive, got %v", out)
	}
	if len(in) != 3 {
		t.Fatal("input must not be mutated")
	}
}

func TestDistanceKeepsNearTies(t *testing.T) {
	in := Scores{
		id("alice"): -20.0,
		id("bob"):   -20.005,
		id("carol"): -25.0,
	}
	out := Distance{Margin: 0.01}.Apply(in)
	if len(out) != 2 {
		t.Fatalf("expected two survivors, got %v", out)
	}
	if _, ok := out[id("carol")]; ok {
		t.Fatalf("carol should be filtered, got %v", out)
	}
}

func TestDistanceEmptyInput(t *testing.T) {
	out := Distance{Margin: 0.01}.Apply(Scores{})
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %v", out)
	}
}

func TestBestSingleCandidateIsDeterministic(t *testing.T) {
	in := Scores{id("alice"): -20.0}
	for i := 0; i < 10; i++ {
		winner, ok := in.Best(Threshold{Cutoff: -33.0}, Distance{Margin: 0.01})
		if !ok {
			t.Fatal("expected a winner")
		}
		if winner.Name() != "alice" {
			t.Fatalf("expected alice, got %q", winner)
		}
	}
}

func TestBestTieBreaksByName(t *testing.T) {
	in := Scores{
		id("zoe"):   -20.0,
		id("alice"): -20.0,
	}
	for i := 0; i < 10; i++ {
		winner, ok := in.Best(Threshold{Cutoff: -33.0}, Distance{Margin: 0.01})
		if !ok {
			t.Fatal("expected a winner")
		}
		if winner.Name() != "alice" {
			t.Fatalf("tie-break should pick alice, got %q", winner)
		}
	}
}

func TestBestPrefersHigherScoreOverName(t *testing.T) {
	in := Scores{
		id("zoe"):   -19.999,
		id("alice"): -20.0,
	}
	winner, ok := in.Best(Distance{Margin: 0.01})
	if !ok {
		t.Fatal("expected a winner")
	}
	if winner.Name() != "zoe" {
		t.Fatalf("higher score should win, got %q", winner)
	}
}

func TestBestAllFilteredOut(t *testing.T) {
	in := Scores{id("alice"): -50.0}
	if _, ok := in.Best(Threshold{Cutoff: -33.0}); ok {
		t.Fatal("expected no winner below threshold")
	}
}

func TestDescribe(t *testing.T) {
	in := Scores{
		id("alice"): -20.0,
		id("bob"):   -30.0,
	}
	d, ok := in.Describe()
	if !ok {
		t.Fatal("expected diagnostics")
	}
	if d.Best != -20.0 {
		t.Fatalf("unexpected best: %v", d.Best)
	}
	if math.Abs(d.Mean-(-25.0)) > 1e-9 {
		t.Fatalf("unexpected mean: %v", d.Mean)
	}
	if math.Abs(d.MeanDistance-5.0) > 1e-9 {
		t.Fatalf("unexpected mean distance: %v", d.MeanDistance)
	}

	if _, ok := (Scores{}).Describe(); ok {
		t.Fatal("empty set should not describe")
	}
}
