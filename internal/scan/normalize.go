package scan

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/platform/kalshi"
	"github.com/jrgordon/spreadscan/internal/platform/polymarket"
)

// defaultPriceCents is the fallback when a venue's price data is malformed or
// absent. A single bad market never aborts the batch.
const defaultPriceCents = 50

// NormalizePolymarket converts Gamma events into normalized markets, one per
// tradable sub-market. Closed or inactive sub-markets are skipped.
func NormalizePolymarket(events []polymarket.APIEvent) []domain.NormalizedMarket {
	var out []domain.NormalizedMarket
	for i := range events {
		ev := &events[i]
		for j := range ev.Markets {
			m := &ev.Markets[j]
			if !m.Tradable() {
				continue
			}

			name := m.GroupItemTitle
			if name == "" {
				name = m.Question
			}
			if name == "" {
				name = ev.Title
			}

			out = append(out, domain.NormalizedMarket{
				ID:           m.ID,
				Venue:        domain.VenuePolymarket,
				DisplayName:  name,
				CanonicalKey: CanonicalKey(name),
				PriceCents:   polymarketYesCents(m.Outcomes, m.OutcomePrices),
				Keywords:     Keywords(name),
				URL:          "https://polymarket.com/event/" + ev.Slug,
				Volume:       m.Volume,
			})
		}
	}
	return out
}

// polymarketYesCents extracts the Yes price from the JSON-encoded parallel
// outcomes/outcomePrices arrays and converts it from a [0,1] fraction to
// integer cents. Every parse failure falls back to defaultPriceCents.
func polymarketYesCents(outcomesJSON, pricesJSON string) int {
	var outcomes []string
	if err := json.Unmarshal([]byte(outcomesJSON), &outcomes); err != nil {
		return defaultPriceCents
	}

	// Prices arrive either as JSON strings ("0.52") or bare numbers
	// depending on the endpoint; accept both.
	var raw []any
	if err := json.Unmarshal([]byte(pricesJSON), &raw); err != nil {
		return defaultPriceCents
	}

	idx := 0
	for i, o := range outcomes {
		if strings.EqualFold(o, "yes") {
			idx = i
			break
		}
	}
	if idx >= len(raw) {
		return defaultPriceCents
	}

	var frac float64
	switch v := raw[idx].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return defaultPriceCents
		}
		frac = f
	case float64:
		frac = v
	default:
		return defaultPriceCents
	}

	return clampCents(int(math.Round(frac * 100)))
}

// NormalizeKalshi converts Kalshi events into normalized markets. Only
// sub-markets whose status is exactly "active" survive.
func NormalizeKalshi(events []kalshi.APIEvent) []domain.NormalizedMarket {
	var out []domain.NormalizedMarket
	for i := range events {
		ev := &events[i]
		for j := range ev.Markets {
			m := &ev.Markets[j]
			if m.Status != "active" {
				continue
			}

			name := m.Title
			if name == "" {
				name = ev.Title
			}

			out = append(out, domain.NormalizedMarket{
				ID:           m.Ticker,
				Venue:        domain.VenueKalshi,
				DisplayName:  name,
				CanonicalKey: CanonicalKey(name),
				PriceCents:   kalshiCents(m),
				Keywords:     Keywords(name),
				URL:          "https://kalshi.com/markets/" + m.Ticker,
				Volume:       strconv.FormatInt(m.Volume, 10),
			})
		}
	}
	return out
}

// kalshiCents picks the yes-bid when the field is present, falls back to the
// last traded price, and defaults when neither was reported.
func kalshiCents(m *kalshi.APIMarket) int {
	switch {
	case m.YesBid != nil:
		return clampCents(int(*m.YesBid))
	case m.LastPrice != nil:
		return clampCents(int(*m.LastPrice))
	default:
		return defaultPriceCents
	}
}

func clampCents(c int) int {
	if c < 0 {
		return 0
	}
	if c > 100 {
		return 100
	}
	return c
}
