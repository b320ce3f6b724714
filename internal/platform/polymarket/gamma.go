// Package polymarket provides the REST client for the Polymarket Gamma API,
// the market-discovery endpoint the scanner pulls venue-A listings from.
package polymarket

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

// ClientConfig holds Gamma API query parameters.
type ClientConfig struct {
	// BaseURL is the Gamma API root, e.g. "https://gamma-api.polymarket.com".
	BaseURL string
	// Tag restricts listings to one topic (the scanner runs on "politics");
	// topic filtering happens here, never downstream.
	Tag string
	// Limit caps the number of events per fetch.
	Limit int
}

// GammaClient is the REST client for the Polymarket Gamma API.
type GammaClient struct {
	cfg        ClientConfig
	httpClient *http.Client
}

// NewGammaClient creates a new Gamma API client.
func NewGammaClient(cfg ClientConfig) *GammaClient {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	return &GammaClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ListEvents returns open events for the configured tag, with their nested
// sub-markets.
func (g *GammaClient) ListEvents(ctx context.Context) ([]APIEvent, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(g.cfg.Limit))
	params.Set("closed", "false")
	if g.cfg.Tag != "" {
		params.Set("tag_slug", g.cfg.Tag)
	}

	body, err := g.doGet(ctx, "/events?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("polymarket/gamma: list events: %w", err)
	}

	var events []APIEvent
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("polymarket/gamma: decode events: %w", err)
	}
	return events, nil
}

// doGet sends an unauthenticated GET request to the Gamma API.
func (g *GammaClient) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
