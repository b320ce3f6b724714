package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrgordon/spreadscan/internal/domain"
)

// nm builds a normalized market from a title the way the normalizers do.
func nm(id string, venue domain.Venue, title string, cents int) domain.NormalizedMarket {
	return domain.NormalizedMarket{
		ID:           id,
		Venue:        venue,
		DisplayName:  title,
		CanonicalKey: CanonicalKey(title),
		PriceCents:   cents,
		Keywords:     Keywords(title),
	}
}

// jaccardOnly strips the key-term bonus so tests can assert raw overlap math.
func jaccardOnly() Config {
	cfg := DefaultConfig()
	cfg.KeyTerms = nil
	return cfg
}

func TestScoreJaccard(t *testing.T) {
	s := NewScorer(jaccardOnly())

	a := nm("a", domain.VenuePolymarket, "alpha bravo charlie delta", 50)
	b := nm("b", domain.VenueKalshi, "alpha bravo charlie zulu", 50)

	// Overlap 3, union 5.
	assert.InDelta(t, 0.6, s.Score(a, b), 1e-9)
}

func TestScoreEmptySets(t *testing.T) {
	s := NewScorer(DefaultConfig())

	empty := nm("a", domain.VenuePolymarket, "", 50)
	other := nm("b", domain.VenueKalshi, "alpha bravo charlie", 50)

	assert.Zero(t, s.Score(empty, other))
	assert.Zero(t, s.Score(empty, empty), "empty union guards divide-by-zero")
}

func TestScoreKeyTermBonusRequiresBothSides(t *testing.T) {
	cfg := jaccardOnly()
	cfg.KeyTerms = []string{"trump"}
	cfg.KeyTermBonus = 0.15
	s := NewScorer(cfg)

	a := nm("a", domain.VenuePolymarket, "alpha bravo trump", 50)
	b := nm("b", domain.VenueKalshi, "alpha bravo trump", 50)
	c := nm("c", domain.VenueKalshi, "alpha bravo charlie", 50)

	// Identical sets: jaccard 1.0 already, bonus clamps at 1.
	assert.Equal(t, 1.0, s.Score(a, b))

	// Term on one side only: no bonus. Overlap 2, union 4.
	assert.InDelta(t, 0.5, s.Score(a, c), 1e-9)
}

func TestScoreBonusLiftsWeakOverlap(t *testing.T) {
	cfg := jaccardOnly()
	cfg.KeyTerms = []string{"president", "2024"}
	cfg.KeyTermBonus = 0.15
	s := NewScorer(cfg)

	a := nm("a", domain.VenuePolymarket, "president race 2024 alpha bravo charlie", 50)
	b := nm("b", domain.VenueKalshi, "president margin 2024 delta echo foxtrot", 50)

	withBonus := s.Score(a, b)
	noBonus := NewScorer(jaccardOnly()).Score(a, b)

	assert.InDelta(t, noBonus+0.30, withBonus, 1e-9)
	assert.Greater(t, withBonus, 0.3, "bonus pushes shared-term pairs over the acceptance floor")
}

func TestScoreBounds(t *testing.T) {
	s := NewScorer(DefaultConfig())

	titles := []string{
		"",
		"Trump wins the 2024 presidential election winner",
		"Trump 2024 election winner",
		"Fed cuts rates",
		"a b c",
	}
	for _, ta := range titles {
		for _, tb := range titles {
			got := s.Score(
				nm("a", domain.VenuePolymarket, ta, 50),
				nm("b", domain.VenueKalshi, tb, 50),
			)
			require.GreaterOrEqual(t, got, 0.0, "%q vs %q", ta, tb)
			require.LessOrEqual(t, got, 1.0, "%q vs %q", ta, tb)
		}
	}
}

func TestScoreUnrelatedTitlesBelowThreshold(t *testing.T) {
	cfg := DefaultConfig()
	s := NewScorer(cfg)

	a := nm("a", domain.VenuePolymarket, "Trump wins Pennsylvania", 50)
	b := nm("b", domain.VenueKalshi, "Supreme Court rules on abortion ban", 50)

	assert.Less(t, s.Score(a, b), cfg.MinMatchScore)
}

func TestScoreDeterministic(t *testing.T) {
	s := NewScorer(DefaultConfig())
	a := nm("a", domain.VenuePolymarket, "Trump wins the 2024 presidential election", 52)
	b := nm("b", domain.VenueKalshi, "Trump 2024 election winner", 58)

	first := s.Score(a, b)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, s.Score(a, b))
	}
}
