package scan

import (
	"sort"

	"github.com/jrgordon/spreadscan/internal/domain"
)

// Matcher pairs semantically-equivalent markets across the two venues with a
// greedy, order-dependent, first-claim-wins pass, then classifies the price
// spread of every resulting record.
//
// The greediness is deliberate: an earlier venue-A entry can claim a venue-B
// entry that would have matched a later venue-A entry better. Keeping that
// behavior keeps output reproducible across versions; do not replace it with
// an optimal assignment.
type Matcher struct {
	cfg    Config
	scorer Scorer
}

// NewMatcher creates a Matcher with the given constants.
func NewMatcher(cfg Config) *Matcher {
	return &Matcher{cfg: cfg, scorer: NewScorer(cfg)}
}

// Match consumes the two normalized lists and emits one UnifiedMarket per
// distinguishable event: matched pairs first-claim-wins in listA order, then
// the leftovers of either venue as single-venue entries. The result is
// stably sorted by descending spread percentage, so unmatched entries (spread
// 0) settle at the bottom. Each venue-B market is claimed at most once.
func (m *Matcher) Match(polys, kalshis []domain.NormalizedMarket) []domain.UnifiedMarket {
	claimed := make(map[string]bool, len(kalshis))
	out := make([]domain.UnifiedMarket, 0, len(polys)+len(kalshis))

	for i := range polys {
		bestIdx := -1
		bestScore := 0.0
		for j := range kalshis {
			if claimed[kalshis[j].ID] {
				continue
			}
			// Strictly-greater keeps the first of tied candidates.
			score := m.scorer.Score(polys[i], kalshis[j])
			if score >= m.cfg.MinMatchScore && score > bestScore {
				bestIdx = j
				bestScore = score
			}
		}

		if bestIdx >= 0 {
			claimed[kalshis[bestIdx].ID] = true
			out = append(out, m.unify(&polys[i], &kalshis[bestIdx], bestScore))
		} else {
			out = append(out, m.single(&polys[i], nil))
		}
	}

	for j := range kalshis {
		if !claimed[kalshis[j].ID] {
			out = append(out, m.single(nil, &kalshis[j]))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SpreadPct > out[j].SpreadPct
	})
	return out
}

// unify builds a matched record and classifies its spread: absolute spread in
// cents, spread relative to the mean price (0 when the mean is 0), the
// arbitrage flag above ArbitragePct, and a buy-the-cheaper-venue direction
// above the lower, independent DirectionPct threshold.
func (m *Matcher) unify(p, k *domain.NormalizedMarket, score float64) domain.UnifiedMarket {
	poly, kal := *p, *k
	u := domain.UnifiedMarket{
		Title:      poly.DisplayName,
		Polymarket: &poly,
		Kalshi:     &kal,
		MatchScore: score,
		Confidence: m.confidence(score),
		Direction:  domain.DirectionNone,
	}

	u.SpreadAbs = poly.PriceCents - kal.PriceCents
	if u.SpreadAbs < 0 {
		u.SpreadAbs = -u.SpreadAbs
	}

	mean := float64(poly.PriceCents+kal.PriceCents) / 2
	if mean > 0 {
		u.SpreadPct = float64(u.SpreadAbs) / mean * 100
	}

	u.HasArbitrage = u.SpreadPct > m.cfg.ArbitragePct
	if u.SpreadPct > m.cfg.DirectionPct {
		if poly.PriceCents < kal.PriceCents {
			u.Direction = domain.DirectionBuyPolymarket
		} else {
			u.Direction = domain.DirectionBuyKalshi
		}
	}

	return u
}

// single builds an unmatched one-venue record: no spread, low confidence by
// construction.
func (m *Matcher) single(p, k *domain.NormalizedMarket) domain.UnifiedMarket {
	u := domain.UnifiedMarket{
		Confidence: domain.ConfidenceLow,
		Direction:  domain.DirectionNone,
	}
	if p != nil {
		poly := *p
		u.Polymarket = &poly
		u.Title = poly.DisplayName
	}
	if k != nil {
		kal := *k
		u.Kalshi = &kal
		u.Title = kal.DisplayName
	}
	return u
}

// confidence maps the match score into its band. Matches accepted in
// [MinMatchScore, MediumConfidence) are kept but reported low-confidence.
func (m *Matcher) confidence(score float64) domain.MatchConfidence {
	switch {
	case score >= m.cfg.HighConfidence:
		return domain.ConfidenceHigh
	case score >= m.cfg.MediumConfidence:
		return domain.ConfidenceMedium
	default:
		return domain.ConfidenceLow
	}
}
