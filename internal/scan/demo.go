package scan

import (
	"github.com/jrgordon/spreadscan/internal/domain"
)

// demoPoly and demoKalshi are the fixed listings substituted when a live
// scan comes back too thin (venue outage, topic drought). They run through
// the same matcher as live data so the demo output carries real spreads,
// confidences, and ordering.
var demoPoly = []struct {
	id, title, volume string
	cents             int
}{
	{"demo-pm-1", "Trump wins the 2024 presidential election", "2150000", 52},
	{"demo-pm-2", "Democrats win control of the Senate", "480000", 41},
	{"demo-pm-3", "Fed cuts rates before the election", "310000", 30},
	{"demo-pm-4", "Biden approval above 45 percent in 2025", "95000", 22},
}

var demoKalshi = []struct {
	id, title, volume string
	cents             int
}{
	{"DEMO-PRES-24", "Trump 2024 election winner", "1890000", 58},
	{"DEMO-SENATE", "Democrats win the Senate majority", "350000", 43},
	{"DEMO-FEDCUT", "Fed cuts rates before election day", "120000", 29},
}

// DemoMarkets returns the demo dataset classified under cfg. Deterministic
// for a fixed cfg.
func DemoMarkets(cfg Config) []domain.UnifiedMarket {
	polys := make([]domain.NormalizedMarket, 0, len(demoPoly))
	for _, d := range demoPoly {
		polys = append(polys, demoNormalized(d.id, domain.VenuePolymarket, d.title, d.cents, d.volume))
	}
	kalshis := make([]domain.NormalizedMarket, 0, len(demoKalshi))
	for _, d := range demoKalshi {
		kalshis = append(kalshis, demoNormalized(d.id, domain.VenueKalshi, d.title, d.cents, d.volume))
	}
	return NewMatcher(cfg).Match(polys, kalshis)
}

func demoNormalized(id string, venue domain.Venue, title string, cents int, volume string) domain.NormalizedMarket {
	url := "https://polymarket.com/event/" + id
	if venue == domain.VenueKalshi {
		url = "https://kalshi.com/markets/" + id
	}
	return domain.NormalizedMarket{
		ID:           id,
		Venue:        venue,
		DisplayName:  title,
		CanonicalKey: CanonicalKey(title),
		PriceCents:   cents,
		Keywords:     Keywords(title),
		URL:          url,
		Volume:       volume,
	}
}
