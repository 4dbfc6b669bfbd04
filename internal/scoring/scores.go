// Package scoring implements the candidate filtering chain that turns raw
// voiceprint similarity scores into a single speaker assignment.
package scoring

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/stat"

	"speakerid/internal/speaker"
)

// Scores maps candidate identities to the similarity value produced by one
// voiceprint database lookup.
//
// Polarity is fixed by the database contract: values are GMM log-likelihood
// ratios, so a HIGHER score is a better match. Every strategy and the final
// selection depend on that contract, not on the sign of any configured
// constant.
type Scores map[speaker.Identifier]float64

// Clone returns an independent copy.
func (s Scores) Clone() Scores {
	out := make(Scores, len(s))
	for id, value := range s {
		out[id] = value
	}
	return out
}

// Max returns the best score in the set; ok is false for an empty set.
func (s Scores) Max() (float64, bool) {
	first := true
	var best float64
	for _, value := range s {
		if first || value > best {
			best = value
			first = false
		}
	}
	return best, !first
}

// tieOrder pins the documented tie-break: candidates with identical scores
// are resolved by collation order on the identity name, so repeated runs on
// identical input always select the same speaker.
var tieOrder = collate.New(language.Und)

// Best applies the ordered strategy chain and selects the winning identity
// from whatever survives. Selection is deterministic: the highest-scoring
// candidate wins, and exact score ties fall back to collation order on the
// name. ok is false when the chain filters every candidate out.
func (s Scores) Best(strategies ...Strategy) (speaker.Identifier, bool) {
	candidates := s.Clone()
	for _, strategy := range strategies {
		candidates = strategy.Apply(candidates)
	}

	var winner speaker.Identifier
	var winning float64
	found := false
	for id, value := range candidates {
		switch {
		case !found, value > winning:
			winner, winning, found = id, value, true
		case value == winning && tieOrder.CompareString(id.Name(), winner.Name()) < 0:
			winner = id
		}
	}
	return winner, found
}

// Diagnostics summarizes a score set the way operators expect to read it:
// the best value, the mean across candidates, and how far the best value
// sits from the mean.
type Diagnostics struct {
	Best         float64
	Mean         float64
	MeanDistance float64
}

// Describe computes diagnostics for a non-empty score set; ok is false
// otherwise.
func (s Scores) Describe() (Diagnostics, bool) {
	if len(s) == 0 {
		return Diagnostics{}, false
	}
	values := make([]float64, 0, len(s))
	for _, value := range s {
		values = append(values, value)
	}
	best, _ := s.Max()
	mean := stat.Mean(values, nil)
	d := Diagnostics{Best: best, Mean: mean, MeanDistance: best - mean}
	return d, true
}
