package domain

import "time"

// ScanResult is the output of one full fetch/normalize/match cycle.
type ScanResult struct {
	ID string `json:"id"`

	// Markets is sorted by descending SpreadPct.
	Markets []UnifiedMarket `json:"markets"`

	PolymarketCount int `json:"polymarket_count"`
	KalshiCount     int `json:"kalshi_count"`

	// UsedDemoData is set when the live result was too thin and the fixed
	// demo dataset was substituted.
	UsedDemoData bool `json:"used_demo_data"`

	ScannedAt time.Time `json:"scanned_at"`
}

// ArbitrageCount returns the number of flagged opportunities in the result.
func (r *ScanResult) ArbitrageCount() int {
	n := 0
	for i := range r.Markets {
		if r.Markets[i].HasArbitrage {
			n++
		}
	}
	return n
}

// Opportunity is a flagged arbitrage row as persisted to history.
type Opportunity struct {
	ID     string `json:"id"`
	ScanID string `json:"scan_id"`
	Title  string `json:"title"`

	PolymarketCents int `json:"polymarket_cents"`
	KalshiCents     int `json:"kalshi_cents"`

	SpreadAbs int     `json:"spread_abs"`
	SpreadPct float64 `json:"spread_pct"`

	Confidence MatchConfidence `json:"confidence"`
	Direction  SpreadDirection `json:"direction"`

	PolymarketURL string `json:"polymarket_url"`
	KalshiURL     string `json:"kalshi_url"`

	DetectedAt time.Time `json:"detected_at"`
}
