package service

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/notify"
	"github.com/jrgordon/spreadscan/internal/platform/kalshi"
	"github.com/jrgordon/spreadscan/internal/platform/polymarket"
	"github.com/jrgordon/spreadscan/internal/scan"
)

type emptyPoly struct{}

func (emptyPoly) ListEvents(ctx context.Context) ([]polymarket.APIEvent, error) { return nil, nil }

type emptyKalshi struct{}

func (emptyKalshi) ListEvents(ctx context.Context) ([]kalshi.APIEvent, error) { return nil, nil }

type fakeCache struct {
	latest *domain.ScanResult
}

func (f *fakeCache) SetLatest(ctx context.Context, res domain.ScanResult) error {
	f.latest = &res
	return nil
}

func (f *fakeCache) GetLatest(ctx context.Context) (domain.ScanResult, error) {
	if f.latest == nil {
		return domain.ScanResult{}, domain.ErrNoScan
	}
	return *f.latest, nil
}

type fakeStore struct {
	inserted []domain.Opportunity
}

func (f *fakeStore) InsertBatch(ctx context.Context, opps []domain.Opportunity) error {
	f.inserted = append(f.inserted, opps...)
	return nil
}

func (f *fakeStore) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	if limit > 0 && limit < len(f.inserted) {
		return f.inserted[:limit], nil
	}
	return f.inserted, nil
}

func (f *fakeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(f.inserted)), nil
}

type fakeBus struct {
	messages map[string][][]byte
}

func (f *fakeBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if f.messages == nil {
		f.messages = map[string][][]byte{}
	}
	f.messages[channel] = append(f.messages[channel], payload)
	return nil
}

func (f *fakeBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

type captureSender struct {
	titles []string
}

func (c *captureSender) Send(ctx context.Context, title, message string) error {
	c.titles = append(c.titles, title)
	return nil
}

func (c *captureSender) Name() string { return "capture" }

// demoService builds a service whose pipeline sees empty venues, so every run
// deterministically falls back to the built-in demo dataset.
func demoService(cache domain.ScanCache, store domain.OpportunityStore, bus domain.SignalBus, notifier *notify.Notifier) *ScanService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pipeline := scan.NewPipeline(scan.DefaultConfig(), emptyPoly{}, emptyKalshi{}, logger)
	return NewScanService(pipeline, cache, store, bus, notifier, logger)
}

func TestRunOnceFansOut(t *testing.T) {
	cache := &fakeCache{}
	store := &fakeStore{}
	bus := &fakeBus{}
	sender := &captureSender{}
	notifier := notify.NewNotifier([]notify.Sender{sender}, []string{"arb_detected"}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	svc := demoService(cache, store, bus, notifier)
	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	require.True(t, res.UsedDemoData)

	// Cached.
	require.NotNil(t, cache.latest)
	assert.Equal(t, res.ID, cache.latest.ID)

	// The demo dataset carries exactly one flagged opportunity.
	require.Len(t, store.inserted, 1)
	opp := store.inserted[0]
	assert.Equal(t, res.ID, opp.ScanID)
	assert.NotEmpty(t, opp.ID)
	assert.Equal(t, 6, opp.SpreadAbs)
	assert.Equal(t, domain.DirectionBuyPolymarket, opp.Direction)
	assert.Equal(t, res.ScannedAt, opp.DetectedAt)

	// Published: one summary plus one message per opportunity.
	require.Len(t, bus.messages[ChannelScans], 1)
	require.Len(t, bus.messages[ChannelArbs], 1)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(bus.messages[ChannelScans][0], &summary))
	assert.Equal(t, res.ID, summary["scan_id"])
	assert.Equal(t, float64(1), summary["arbitrage"])

	// Notified.
	require.Len(t, sender.titles, 1)
	assert.Contains(t, sender.titles[0], "Trump")
}

func TestRunOnceWithoutInfrastructure(t *testing.T) {
	svc := demoService(nil, nil, nil, nil)

	res, err := svc.RunOnce(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, res.Markets)
}

func TestLatestReadsThroughCache(t *testing.T) {
	cache := &fakeCache{}
	svc := demoService(cache, nil, nil, nil)

	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoScan)

	run, err := svc.RunOnce(context.Background())
	require.NoError(t, err)

	got, err := svc.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, run.ID, got.ID)
}

func TestLatestWithoutCache(t *testing.T) {
	svc := demoService(nil, nil, nil, nil)
	_, err := svc.Latest(context.Background())
	assert.ErrorIs(t, err, domain.ErrNoScan)
}

func TestListRecentWithoutStore(t *testing.T) {
	svc := demoService(nil, nil, nil, nil)
	opps, err := svc.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, opps)
}

func TestCountOpportunitiesWithoutStore(t *testing.T) {
	svc := demoService(nil, nil, nil, nil)
	n, err := svc.CountOpportunities(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCountOpportunitiesGrowsAcrossRuns(t *testing.T) {
	store := &fakeStore{}
	svc := demoService(nil, store, nil, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.RunOnce(context.Background())
		require.NoError(t, err)
	}

	// Each demo run flags exactly one opportunity.
	n, err := svc.CountOpportunities(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
