// Package kalshi provides the REST client for the Kalshi exchange API, the
// venue-B source. Only the public market-data surface is used; no portfolio
// or order endpoints.
package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// ClientConfig holds Kalshi API parameters.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://api.elections.kalshi.com/trade-api/v2".
	BaseURL string
	// Category restricts events to one topic (the scanner runs on "Politics").
	Category string
	// Limit caps the number of events per fetch.
	Limit int
}

// Client is the REST client for the Kalshi exchange API.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Kalshi REST client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListEvents returns open events with nested markets, following the cursor
// until the configured limit is reached.
func (c *Client) ListEvents(ctx context.Context) ([]APIEvent, error) {
	var out []APIEvent
	cursor := ""

	for len(out) < c.cfg.Limit {
		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.cfg.Limit-len(out)))
		params.Set("status", "open")
		params.Set("with_nested_markets", "true")
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		body, err := c.doGet(ctx, "/events?"+params.Encode())
		if err != nil {
			return nil, fmt.Errorf("kalshi: list events: %w", err)
		}

		var resp struct {
			Events []APIEvent `json:"events"`
			Cursor string     `json:"cursor"`
		}
		if err := json.Unmarshal(body, &resp); err != nil {
			return nil, fmt.Errorf("kalshi: decode events: %w", err)
		}

		for _, ev := range resp.Events {
			if c.cfg.Category != "" && ev.Category != c.cfg.Category {
				continue
			}
			out = append(out, ev)
		}

		if resp.Cursor == "" || len(resp.Events) == 0 {
			break
		}
		cursor = resp.Cursor
	}

	return out, nil
}

// doGet sends a GET request against the public Kalshi API.
func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return body, nil
}
