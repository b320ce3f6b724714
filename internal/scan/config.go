// Package scan implements the normalization, matching, and spread-scoring
// pipeline: keyword extraction from market titles, per-venue normalization,
// Jaccard-plus-bonus similarity scoring, greedy one-to-one matching, and
// arbitrage classification of the resulting price spreads.
package scan

// Config holds every matching and classification constant. It is passed by
// value into the scorer, matcher, and pipeline so tests can substitute
// alternate constant sets; nothing in this package keeps mutable state.
type Config struct {
	// KeyTerms are high-signal political terms. When a term is present in
	// both markets' keyword sets, KeyTermBonus is added to the raw Jaccard
	// score once per term.
	KeyTerms     []string
	KeyTermBonus float64

	// MinMatchScore is the acceptance floor for a cross-venue pairing.
	MinMatchScore float64

	// HighConfidence and MediumConfidence are the lower bounds of the
	// confidence bands. A score in [MinMatchScore, MediumConfidence) is a
	// kept-but-low-confidence match.
	HighConfidence   float64
	MediumConfidence float64

	// DirectionPct is the spread percentage above which a buy-side direction
	// is suggested. ArbitragePct is the higher, independent threshold above
	// which the pair is flagged as an opportunity.
	DirectionPct float64
	ArbitragePct float64

	// MinResults is the unified-market count below which the wrapper
	// substitutes the demo dataset.
	MinResults int
}

// DefaultConfig returns the canonical constants.
func DefaultConfig() Config {
	return Config{
		KeyTerms: []string{
			"trump", "biden", "harris",
			"president", "election", "winner",
			"2024", "2025",
		},
		KeyTermBonus:     0.15,
		MinMatchScore:    0.3,
		HighConfidence:   0.6,
		MediumConfidence: 0.4,
		DirectionPct:     3,
		ArbitragePct:     5,
		MinResults:       3,
	}
}
