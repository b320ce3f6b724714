// Package domain holds the core data model for the spread scanner: the
// normalized per-venue market, the unified cross-venue record, and the
// interfaces implemented by the cache, store, and blob layers.
package domain

// Venue identifies the prediction-market platform a record came from.
type Venue string

const (
	VenuePolymarket Venue = "polymarket"
	VenueKalshi     Venue = "kalshi"
)

// KeywordSet is an unordered set of normalized title tokens.
type KeywordSet map[string]struct{}

// Add inserts a token into the set.
func (s KeywordSet) Add(token string) { s[token] = struct{}{} }

// Contains reports whether token is in the set.
func (s KeywordSet) Contains(token string) bool {
	_, ok := s[token]
	return ok
}

// NormalizedMarket is the canonical internal unit: one tradable sub-market
// from either venue, reduced to the fields the matcher cares about. Records
// are created fresh each scan cycle and never mutated afterwards.
type NormalizedMarket struct {
	// ID is unique within the record's venue (Gamma market ID or Kalshi ticker).
	ID    string `json:"id"`
	Venue Venue  `json:"venue"`

	DisplayName string `json:"display_name"`

	// CanonicalKey is the lowercased, punctuation-stripped, whitespace-collapsed
	// form of DisplayName. Kept for exact-match shortcuts and debugging only;
	// matching runs on Keywords.
	CanonicalKey string `json:"canonical_key"`

	// PriceCents is the probability-as-price on a 0-100 cent scale.
	// Always in [0,100] for any market that survived normalization.
	PriceCents int `json:"price_cents"`

	Keywords KeywordSet `json:"-"`

	// URL is the deep link back to the venue's listing.
	URL string `json:"url"`

	// Volume is the venue-reported trading volume, opaque for matching.
	Volume string `json:"volume"`
}
