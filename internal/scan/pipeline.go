package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/platform/kalshi"
	"github.com/jrgordon/spreadscan/internal/platform/polymarket"
)

// PolymarketSource lists venue-A events. Implemented by polymarket.GammaClient.
type PolymarketSource interface {
	ListEvents(ctx context.Context) ([]polymarket.APIEvent, error)
}

// KalshiSource lists venue-B events. Implemented by kalshi.Client.
type KalshiSource interface {
	ListEvents(ctx context.Context) ([]kalshi.APIEvent, error)
}

// Pipeline runs one full fetch/normalize/match cycle. Each run is stateless;
// nothing persists between invocations.
type Pipeline struct {
	cfg     Config
	poly    PolymarketSource
	kalshi  KalshiSource
	matcher *Matcher
	logger  *slog.Logger
}

// NewPipeline creates a Pipeline over the two venue sources.
func NewPipeline(cfg Config, poly PolymarketSource, kalshi KalshiSource, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		poly:    poly,
		kalshi:  kalshi,
		matcher: NewMatcher(cfg),
		logger:  logger.With(slog.String("component", "pipeline")),
	}
}

// Run fetches both venues (concurrently, as an optimization only), normalizes
// each side, matches across venues, and classifies spreads. When fewer than
// cfg.MinResults unified markets come back, the fixed demo dataset is
// substituted and the result is flagged accordingly.
func (p *Pipeline) Run(ctx context.Context) (domain.ScanResult, error) {
	var (
		polyEvents   []polymarket.APIEvent
		kalshiEvents []kalshi.APIEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		evs, err := p.poly.ListEvents(gctx)
		if err != nil {
			return fmt.Errorf("scan: fetch polymarket: %w", err)
		}
		polyEvents = evs
		return nil
	})
	g.Go(func() error {
		evs, err := p.kalshi.ListEvents(gctx)
		if err != nil {
			return fmt.Errorf("scan: fetch kalshi: %w", err)
		}
		kalshiEvents = evs
		return nil
	})
	if err := g.Wait(); err != nil {
		return domain.ScanResult{}, err
	}

	polys := NormalizePolymarket(polyEvents)
	kalshis := NormalizeKalshi(kalshiEvents)

	res := domain.ScanResult{
		ID:              uuid.Must(uuid.NewRandom()).String(),
		Markets:         p.matcher.Match(polys, kalshis),
		PolymarketCount: len(polys),
		KalshiCount:     len(kalshis),
		ScannedAt:       time.Now().UTC(),
	}

	if len(res.Markets) < p.cfg.MinResults {
		p.logger.WarnContext(ctx, "thin scan result, substituting demo dataset",
			slog.Int("unified", len(res.Markets)),
			slog.Int("min_results", p.cfg.MinResults),
		)
		res.Markets = DemoMarkets(p.cfg)
		res.UsedDemoData = true
	}

	p.logger.InfoContext(ctx, "scan complete",
		slog.String("scan_id", res.ID),
		slog.Int("polymarket", res.PolymarketCount),
		slog.Int("kalshi", res.KalshiCount),
		slog.Int("unified", len(res.Markets)),
		slog.Int("arbitrage", res.ArbitrageCount()),
		slog.Bool("demo_data", res.UsedDemoData),
	)
	return res, nil
}
