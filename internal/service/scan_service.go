// Package service orchestrates scan runs against the cache, history store,
// signal bus, and notifier.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/notify"
	"github.com/jrgordon/spreadscan/internal/scan"
)

// Pub/Sub channels written after each run.
const (
	ChannelScans = "scans"
	ChannelArbs  = "arbs"
)

// ScanService runs scan cycles and fans the results out. Every collaborator
// except the pipeline is optional; a nil cache, store, bus, or notifier is
// skipped, which is how the one-shot CLI mode runs without infrastructure.
type ScanService struct {
	pipeline *scan.Pipeline
	cache    domain.ScanCache
	store    domain.OpportunityStore
	bus      domain.SignalBus
	notifier *notify.Notifier
	logger   *slog.Logger
}

// NewScanService wires a ScanService. pipeline must be non-nil; everything
// else may be nil.
func NewScanService(
	pipeline *scan.Pipeline,
	cache domain.ScanCache,
	store domain.OpportunityStore,
	bus domain.SignalBus,
	notifier *notify.Notifier,
	logger *slog.Logger,
) *ScanService {
	return &ScanService{
		pipeline: pipeline,
		cache:    cache,
		store:    store,
		bus:      bus,
		notifier: notifier,
		logger:   logger.With(slog.String("component", "scan_service")),
	}
}

// RunOnce executes one scan cycle: run the pipeline, cache the result,
// persist flagged opportunities, publish signals, and notify. Fan-out
// failures are logged but do not fail the run; the scan result itself is
// always returned to the caller.
func (s *ScanService) RunOnce(ctx context.Context) (domain.ScanResult, error) {
	res, err := s.pipeline.Run(ctx)
	if err != nil {
		return domain.ScanResult{}, fmt.Errorf("service: scan run: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetLatest(ctx, res); err != nil {
			s.logger.ErrorContext(ctx, "cache latest scan failed",
				slog.String("scan_id", res.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	opps := collectOpportunities(res)
	if s.store != nil && len(opps) > 0 {
		if err := s.store.InsertBatch(ctx, opps); err != nil {
			s.logger.ErrorContext(ctx, "persist opportunities failed",
				slog.String("scan_id", res.ID),
				slog.Int("count", len(opps)),
				slog.String("error", err.Error()),
			)
		}
	}

	s.publish(ctx, res, opps)
	s.notifyArbs(ctx, opps)

	return res, nil
}

// Latest returns the most recent scan from the cache. When no cache is wired
// it reports domain.ErrNoScan.
func (s *ScanService) Latest(ctx context.Context) (domain.ScanResult, error) {
	if s.cache == nil {
		return domain.ScanResult{}, domain.ErrNoScan
	}
	return s.cache.GetLatest(ctx)
}

// ListRecent returns the most recently persisted opportunities.
func (s *ScanService) ListRecent(ctx context.Context, limit int) ([]domain.Opportunity, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListRecent(ctx, limit)
}

// CountOpportunities reports how many opportunities have ever been persisted.
// Without a store the history is empty by definition.
func (s *ScanService) CountOpportunities(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, nil
	}
	return s.store.Count(ctx)
}

// collectOpportunities converts the flagged rows of a scan into persistable
// history records. Only matched markets with the arbitrage flag qualify.
func collectOpportunities(res domain.ScanResult) []domain.Opportunity {
	var opps []domain.Opportunity
	for i := range res.Markets {
		m := &res.Markets[i]
		if !m.HasArbitrage || !m.Matched() {
			continue
		}
		opps = append(opps, domain.Opportunity{
			ID:              uuid.Must(uuid.NewRandom()).String(),
			ScanID:          res.ID,
			Title:           m.Title,
			PolymarketCents: m.Polymarket.PriceCents,
			KalshiCents:     m.Kalshi.PriceCents,
			SpreadAbs:       m.SpreadAbs,
			SpreadPct:       m.SpreadPct,
			Confidence:      m.Confidence,
			Direction:       m.Direction,
			PolymarketURL:   m.Polymarket.URL,
			KalshiURL:       m.Kalshi.URL,
			DetectedAt:      res.ScannedAt,
		})
	}
	return opps
}

// publish emits a compact summary on the scans channel and one message per
// opportunity on the arbs channel.
func (s *ScanService) publish(ctx context.Context, res domain.ScanResult, opps []domain.Opportunity) {
	if s.bus == nil {
		return
	}

	summary, err := json.Marshal(map[string]any{
		"scan_id":    res.ID,
		"unified":    len(res.Markets),
		"arbitrage":  len(opps),
		"demo_data":  res.UsedDemoData,
		"scanned_at": res.ScannedAt.Format(time.RFC3339),
	})
	if err == nil {
		if err := s.bus.Publish(ctx, ChannelScans, summary); err != nil {
			s.logger.WarnContext(ctx, "publish scan summary failed",
				slog.String("error", err.Error()),
			)
		}
	}

	for _, opp := range opps {
		payload, err := json.Marshal(opp)
		if err != nil {
			continue
		}
		if err := s.bus.Publish(ctx, ChannelArbs, payload); err != nil {
			s.logger.WarnContext(ctx, "publish opportunity failed",
				slog.String("opportunity_id", opp.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// notifyArbs sends one alert per flagged opportunity.
func (s *ScanService) notifyArbs(ctx context.Context, opps []domain.Opportunity) {
	if s.notifier == nil {
		return
	}

	for _, opp := range opps {
		title := fmt.Sprintf("Spread %.1f%%: %s", opp.SpreadPct, opp.Title)
		message := fmt.Sprintf(
			"Polymarket %d¢ vs Kalshi %d¢ (%d¢ apart)\nDirection: %s, confidence: %s\n%s\n%s",
			opp.PolymarketCents, opp.KalshiCents, opp.SpreadAbs,
			opp.Direction, opp.Confidence,
			opp.PolymarketURL, opp.KalshiURL,
		)
		if err := s.notifier.Notify(ctx, "arb_detected", title, message); err != nil {
			s.logger.WarnContext(ctx, "notify failed",
				slog.String("opportunity_id", opp.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}
