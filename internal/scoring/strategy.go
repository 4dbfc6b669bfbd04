package scoring

import "fmt"

// Strategy is a pure, stateless filtering rule over a candidate score set.
// Each call returns a possibly smaller set; strategies never mutate their
// input.
type Strategy interface {
	Name() string
	Apply(Scores) Scores
}

// Threshold keeps candidates whose score clears a fixed floor. With the
// database's higher-is-better metric that means score > Cutoff.
type Threshold struct {
	Cutoff float64
}

func (t Threshold) Name() string {
	return fmt.Sprintf("threshold(%g)", t.Cutoff)
}

func (t Threshold) Apply(in Scores) Scores {
	out := make(Scores, len(in))
	for id, value := range in {
		if value > t.Cutoff {
			out[id] = value
		}
	}
	return out
}

// Distance keeps candidates within a fixed margin of the best remaining
// score, tolerating near-ties the later selection must break explicitly.
type Distance struct {
	Margin float64
}

func (d Distance) Name() string {
	return fmt.Sprintf("distance(%g)", d.Margin)
}

func (d Distance) Apply(in Scores) Scores {
	best, ok := in.Max()
	if !ok {
		return Scores{}
	}
	out := make(Scores, len(in))
	for id, value := range in {
		if best-value <= d.Margin {
			out[id] = value
		}
	}
	return out
}
