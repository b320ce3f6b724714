package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrgordon/spreadscan/internal/domain"
)

func TestMatchPairsAndClassifies(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	polys := []domain.NormalizedMarket{nm("p1", domain.VenuePolymarket, "Trump wins the 2024 election", 52)}
	kalshis := []domain.NormalizedMarket{nm("k1", domain.VenueKalshi, "Trump wins the 2024 election", 58)}

	out := m.Match(polys, kalshis)
	require.Len(t, out, 1)

	u := out[0]
	require.True(t, u.Matched())
	assert.Equal(t, "p1", u.Polymarket.ID)
	assert.Equal(t, "k1", u.Kalshi.ID)
	assert.Equal(t, domain.ConfidenceHigh, u.Confidence)
	assert.Equal(t, 6, u.SpreadAbs)
	assert.InDelta(t, 10.909, u.SpreadPct, 0.001)
	assert.True(t, u.HasArbitrage)
	assert.Equal(t, domain.DirectionBuyPolymarket, u.Direction)
}

func TestMatchZeroPricesYieldZeroSpread(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	out := m.Match(
		[]domain.NormalizedMarket{nm("p1", domain.VenuePolymarket, "alpha bravo charlie", 0)},
		[]domain.NormalizedMarket{nm("k1", domain.VenueKalshi, "alpha bravo charlie", 0)},
	)
	require.Len(t, out, 1)
	require.True(t, out[0].Matched())
	assert.Equal(t, 0, out[0].SpreadAbs)
	assert.Zero(t, out[0].SpreadPct)
	assert.False(t, out[0].HasArbitrage)
	assert.Equal(t, domain.DirectionNone, out[0].Direction)
}

func TestMatchGreedyFirstClaimWins(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	// p1 comes first and claims the only kalshi market at 0.6, even though
	// p2 would have scored a perfect 1.0 against it.
	polys := []domain.NormalizedMarket{
		nm("p1", domain.VenuePolymarket, "alpha bravo charlie delta", 50),
		nm("p2", domain.VenuePolymarket, "alpha bravo charlie zulu", 50),
	}
	kalshis := []domain.NormalizedMarket{
		nm("k1", domain.VenueKalshi, "alpha bravo charlie zulu", 50),
	}

	out := m.Match(polys, kalshis)
	require.Len(t, out, 2)

	matched := findByPolyID(t, out, "p1")
	require.True(t, matched.Matched())
	assert.Equal(t, "k1", matched.Kalshi.ID)
	assert.InDelta(t, 0.6, matched.MatchScore, 0.001)

	leftover := findByPolyID(t, out, "p2")
	assert.False(t, leftover.Matched())
	assert.Nil(t, leftover.Kalshi)
}

func TestMatchConfidenceBands(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	tests := []struct {
		name      string
		polyTitle string
		kalTitle  string
		score     float64
		want      domain.MatchConfidence
	}{
		{"identical is high", "alpha bravo charlie", "alpha bravo charlie", 1.0, domain.ConfidenceHigh},
		{"half overlap is medium", "alpha bravo charlie", "alpha bravo zulu", 0.5, domain.ConfidenceMedium},
		{"barely accepted is matched but low", "alpha bravo", "alpha charlie", 1.0 / 3.0, domain.ConfidenceLow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := m.Match(
				[]domain.NormalizedMarket{nm("p", domain.VenuePolymarket, tt.polyTitle, 40)},
				[]domain.NormalizedMarket{nm("k", domain.VenueKalshi, tt.kalTitle, 40)},
			)
			require.Len(t, out, 1)
			require.True(t, out[0].Matched(), "scores at or above the acceptance floor still match")
			assert.InDelta(t, tt.score, out[0].MatchScore, 0.001)
			assert.Equal(t, tt.want, out[0].Confidence)
		})
	}
}

func TestMatchBelowFloorStaysUnmatched(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	out := m.Match(
		[]domain.NormalizedMarket{nm("p", domain.VenuePolymarket, "alpha bravo charlie delta", 40)},
		[]domain.NormalizedMarket{nm("k", domain.VenueKalshi, "alpha zulu yankee xray", 40)},
	)
	require.Len(t, out, 2, "both survive as single-venue records")
	for _, u := range out {
		assert.False(t, u.Matched())
		assert.Equal(t, domain.ConfidenceLow, u.Confidence)
		assert.Equal(t, domain.DirectionNone, u.Direction)
	}
}

func TestMatchEveryInputAppearsExactlyOnce(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	polys := []domain.NormalizedMarket{
		nm("p1", domain.VenuePolymarket, "alpha bravo charlie", 30),
		nm("p2", domain.VenuePolymarket, "delta echo foxtrot", 40),
		nm("p3", domain.VenuePolymarket, "golf hotel india", 50),
	}
	kalshis := []domain.NormalizedMarket{
		nm("k1", domain.VenueKalshi, "alpha bravo charlie", 35),
		nm("k2", domain.VenueKalshi, "golf hotel india", 55),
		nm("k3", domain.VenueKalshi, "juliet kilo lima", 60),
	}

	out := m.Match(polys, kalshis)
	require.Len(t, out, 4)

	seen := map[string]int{}
	for _, u := range out {
		if u.Polymarket != nil {
			seen[u.Polymarket.ID]++
		}
		if u.Kalshi != nil {
			seen[u.Kalshi.ID]++
		}
	}
	for _, id := range []string{"p1", "p2", "p3", "k1", "k2", "k3"} {
		assert.Equal(t, 1, seen[id], "market %s must appear exactly once", id)
	}
}

func TestMatchSortsByDescendingSpreadPct(t *testing.T) {
	m := NewMatcher(jaccardOnly())

	polys := []domain.NormalizedMarket{
		nm("p1", domain.VenuePolymarket, "alpha bravo charlie", 50), // pct 0
		nm("p2", domain.VenuePolymarket, "delta echo foxtrot", 40),  // pct ~22.2
		nm("p3", domain.VenuePolymarket, "golf hotel india", 48),    // pct 8
	}
	kalshis := []domain.NormalizedMarket{
		nm("k1", domain.VenueKalshi, "alpha bravo charlie", 50),
		nm("k2", domain.VenueKalshi, "delta echo foxtrot", 50),
		nm("k3", domain.VenueKalshi, "golf hotel india", 52),
	}

	out := m.Match(polys, kalshis)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		assert.GreaterOrEqual(t, out[i-1].SpreadPct, out[i].SpreadPct)
	}
	assert.Equal(t, "p2", out[0].Polymarket.ID)
}

func TestMatchThresholdConsistency(t *testing.T) {
	// The arbitrage cutoff sits above the direction cutoff, so a flagged
	// record always carries a direction.
	for _, u := range DemoMarkets(DefaultConfig()) {
		if u.HasArbitrage {
			assert.Greater(t, u.SpreadPct, 5.0)
			assert.NotEqual(t, domain.DirectionNone, u.Direction)
		}
	}
}

func TestMatchDeterministic(t *testing.T) {
	m := NewMatcher(DefaultConfig())

	a := []domain.NormalizedMarket{
		nm("p1", domain.VenuePolymarket, "Trump wins the presidential election", 52),
		nm("p2", domain.VenuePolymarket, "Fed cuts rates in March", 30),
	}
	b := []domain.NormalizedMarket{
		nm("k1", domain.VenueKalshi, "Presidential election winner Trump", 58),
		nm("k2", domain.VenueKalshi, "Fed rate cut in March", 29),
	}

	first := m.Match(a, b)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, m.Match(a, b))
	}
}

func findByPolyID(t *testing.T, out []domain.UnifiedMarket, id string) domain.UnifiedMarket {
	t.Helper()
	for _, u := range out {
		if u.Polymarket != nil && u.Polymarket.ID == id {
			return u
		}
	}
	t.Fatalf("no record with polymarket ID %s", id)
	return domain.UnifiedMarket{}
}
