package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jrgordon/spreadscan/internal/domain"
)

// latestKey holds the most recent scan result as a JSON blob. There is only
// ever one entry; each run overwrites the previous one.
const latestKey = "scan:latest"

// latestTTL bounds staleness: a scan older than this has expired and readers
// see domain.ErrNoScan rather than outdated spreads.
const latestTTL = 10 * time.Minute

// ScanCache implements domain.ScanCache on a single Redis string key.
type ScanCache struct {
	rdb *redis.Client
}

// NewScanCache creates a ScanCache backed by the given Client.
func NewScanCache(c *Client) *ScanCache {
	return &ScanCache{rdb: c.Underlying()}
}

// SetLatest stores the scan result, replacing whatever was cached before.
func (sc *ScanCache) SetLatest(ctx context.Context, res domain.ScanResult) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("redis: marshal scan %s: %w", res.ID, err)
	}
	if err := sc.rdb.Set(ctx, latestKey, payload, latestTTL).Err(); err != nil {
		return fmt.Errorf("redis: set latest scan: %w", err)
	}
	return nil
}

// GetLatest retrieves the most recent scan result. It returns domain.ErrNoScan
// when no scan has completed yet or the cached one has expired.
func (sc *ScanCache) GetLatest(ctx context.Context) (domain.ScanResult, error) {
	payload, err := sc.rdb.Get(ctx, latestKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ScanResult{}, domain.ErrNoScan
		}
		return domain.ScanResult{}, fmt.Errorf("redis: get latest scan: %w", err)
	}

	var res domain.ScanResult
	if err := json.Unmarshal(payload, &res); err != nil {
		return domain.ScanResult{}, fmt.Errorf("redis: unmarshal latest scan: %w", err)
	}
	return res, nil
}

// Compile-time interface check.
var _ domain.ScanCache = (*ScanCache)(nil)
