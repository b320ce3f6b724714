package kalshi

// APIEvent represents an event as returned by the Kalshi REST API with its
// nested markets.
type APIEvent struct {
	EventTicker string      `json:"event_ticker"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Markets     []APIMarket `json:"markets"`
}

// APIMarket represents one market under a Kalshi event. Prices are integer
// cents. YesBid and LastPrice are pointers so a genuinely absent field is
// distinguishable from an explicit zero; normalization branches on presence.
type APIMarket struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Status      string `json:"status"`

	YesBid    *int64 `json:"yes_bid,omitempty"`
	YesAsk    *int64 `json:"yes_ask,omitempty"`
	LastPrice *int64 `json:"last_price,omitempty"`

	Volume       int64 `json:"volume"`
	OpenInterest int64 `json:"open_interest"`
}
