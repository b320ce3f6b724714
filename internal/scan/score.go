package scan

import "github.com/jrgordon/spreadscan/internal/domain"

// Scorer computes a bounded similarity score between one market from each
// venue using keyword overlap plus a bonus for shared high-signal terms.
type Scorer struct {
	cfg Config
}

// NewScorer creates a Scorer with the given constants.
func NewScorer(cfg Config) Scorer {
	return Scorer{cfg: cfg}
}

// Score returns a value in [0,1]: the Jaccard index of the two keyword sets
// plus KeyTermBonus for every configured key term present on both sides,
// clamped to 1. The bonus can deliberately push a weak overlap above the
// acceptance threshold when both titles name the same high-value term.
// Degenerate inputs (empty sets) score 0.
func (s Scorer) Score(a, b domain.NormalizedMarket) float64 {
	overlap := 0
	for tok := range a.Keywords {
		if b.Keywords.Contains(tok) {
			overlap++
		}
	}

	union := len(a.Keywords) + len(b.Keywords) - overlap
	score := 0.0
	if union > 0 {
		score = float64(overlap) / float64(union)
	}

	for _, term := range s.cfg.KeyTerms {
		if a.Keywords.Contains(term) && b.Keywords.Contains(term) {
			score += s.cfg.KeyTermBonus
		}
	}

	if score > 1 {
		score = 1
	}
	return score
}
