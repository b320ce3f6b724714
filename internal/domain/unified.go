package domain

// MatchConfidence is a coarse bucket summarizing how strong the textual
// similarity evidence was for a cross-venue pairing.
type MatchConfidence string

const (
	ConfidenceHigh   MatchConfidence = "high"
	ConfidenceMedium MatchConfidence = "medium"
	ConfidenceLow    MatchConfidence = "low"
)

// SpreadDirection points at the venue with the lower price, i.e. the side a
// theoretical arbitrageur would buy.
type SpreadDirection string

const (
	DirectionBuyPolymarket SpreadDirection = "buy_polymarket"
	DirectionBuyKalshi     SpreadDirection = "buy_kalshi"
	DirectionNone          SpreadDirection = "none"
)

// UnifiedMarket is one distinguishable real-world event in the scan output.
// Either both venue sides are present (a matched pair) or exactly one is (a
// single-venue entry); never both absent.
type UnifiedMarket struct {
	Title string `json:"title"`

	Polymarket *NormalizedMarket `json:"polymarket,omitempty"`
	Kalshi     *NormalizedMarket `json:"kalshi,omitempty"`

	// SpreadAbs is |polymarket - kalshi| in cents; 0 for single-venue entries.
	SpreadAbs int `json:"spread_abs"`

	// SpreadPct is SpreadAbs over the mean of the two prices, in percent.
	// Defined as 0 when the mean is 0.
	SpreadPct float64 `json:"spread_pct"`

	// MatchScore is the similarity score that produced this pairing; 0 for
	// single-venue entries.
	MatchScore float64 `json:"match_score"`

	Confidence MatchConfidence `json:"confidence"`

	HasArbitrage bool            `json:"has_arbitrage"`
	Direction    SpreadDirection `json:"direction"`
}

// Matched reports whether both venue sides are present.
func (u *UnifiedMarket) Matched() bool {
	return u.Polymarket != nil && u.Kalshi != nil
}
