package polymarket

import (
	"encoding/json"
	"strings"
)

// flexBool unmarshals from JSON bool or string ("true"/"false") so Gamma API
// responses work whether "active" is sent as bool or string.
type flexBool bool

func (f *flexBool) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = flexBool(b)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = flexBool(strings.EqualFold(s, "true") || s == "1")
	return nil
}

// APIEvent represents an event as returned by the Polymarket Gamma API.
// An event groups one or more related sub-markets under a shared slug.
type APIEvent struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Slug    string      `json:"slug"`
	Active  flexBool    `json:"active"`
	Closed  bool        `json:"closed"`
	Markets []APIMarket `json:"markets"`
}

// APIMarket represents one tradable sub-market inside a Gamma event. The
// Outcomes and OutcomePrices fields arrive JSON-encoded inside the JSON
// document (e.g. "[\"Yes\",\"No\"]" and "[\"0.52\",\"0.48\"]").
type APIMarket struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	GroupItemTitle string   `json:"groupItemTitle"`
	Slug           string   `json:"slug"`
	Active         flexBool `json:"active"`
	Closed         bool     `json:"closed"`
	Outcomes       string   `json:"outcomes"`
	OutcomePrices  string   `json:"outcomePrices"`
	Volume         string   `json:"volume"`
	EndDateISO     string   `json:"endDate"`
}

// Tradable reports whether the sub-market should enter normalization:
// not closed and flagged active by the API.
func (m *APIMarket) Tradable() bool {
	return !m.Closed && bool(m.Active)
}
