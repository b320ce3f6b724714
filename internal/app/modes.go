package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/server"
)

// ScanMode runs a single scan cycle and prints the result as a table on
// stdout. It is the default mode and needs no infrastructure at all.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting scan mode")

	res, err := deps.Service.RunOnce(ctx)
	if err != nil {
		return fmt.Errorf("app: scan mode: %w", err)
	}

	printScanTable(os.Stdout, res)
	return nil
}

// WatchMode runs scan cycles on the configured interval until the context is
// cancelled. Each completed scan is archived when an archiver is wired. The
// first cycle runs immediately rather than one interval in.
func (a *App) WatchMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting watch mode",
		slog.Duration("interval", a.cfg.Scanner.Interval.Duration),
	)

	ticker := time.NewTicker(a.cfg.Scanner.Interval.Duration)
	defer ticker.Stop()

	for {
		a.runCycle(ctx, deps)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// ServerMode starts the HTTP API and a background watch loop feeding it.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting server mode")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.WatchMode(ctx, deps)
	})
	a.startHTTPServer(ctx, g, deps)

	return g.Wait()
}

// FullMode is ServerMode plus archiving; the wiring differences are handled
// in Wire, so the runtime behavior is identical.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.InfoContext(ctx, "starting full mode")

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.WatchMode(ctx, deps)
	})
	a.startHTTPServer(ctx, g, deps)

	return g.Wait()
}

// runCycle executes one scan and archives the snapshot. Cycle errors are
// logged, not returned: a venue outage must not kill the watch loop.
func (a *App) runCycle(ctx context.Context, deps *Dependencies) {
	res, err := deps.Service.RunOnce(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "scan cycle failed",
			slog.String("error", err.Error()),
		)
		return
	}

	if deps.Archiver != nil {
		key, err := deps.Archiver.ArchiveScan(ctx, res)
		if err != nil {
			a.logger.ErrorContext(ctx, "archive scan failed",
				slog.String("scan_id", res.ID),
				slog.String("error", err.Error()),
			)
		} else {
			a.logger.DebugContext(ctx, "scan archived",
				slog.String("scan_id", res.ID),
				slog.String("key", key),
			)
		}
	}
}

// startHTTPServer launches the HTTP API on the errgroup and ties its
// lifetime to the context.
func (a *App) startHTTPServer(ctx context.Context, g *errgroup.Group, deps *Dependencies) {
	if !a.cfg.Server.Enabled {
		a.logger.InfoContext(ctx, "http server disabled by config")
		return
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
	}, deps.Service, a.logger)

	g.Go(func() error {
		return srv.Start()
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// printScanTable renders the unified list the way the CLI shows it: one row
// per market, highest spread first.
func printScanTable(w io.Writer, res domain.ScanResult) {
	fmt.Fprintf(w, "scan %s  polymarket=%d kalshi=%d unified=%d arbitrage=%d",
		res.ID, res.PolymarketCount, res.KalshiCount, len(res.Markets), res.ArbitrageCount())
	if res.UsedDemoData {
		fmt.Fprint(w, "  (demo data)")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tPOLY\tKALSHI\tSPREAD\tPCT\tCONF\tDIRECTION\tARB")
	for i := range res.Markets {
		m := &res.Markets[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateTitle(m.Title),
			centsOrDash(m.Polymarket),
			centsOrDash(m.Kalshi),
			spreadOrDash(m),
			pctOrDash(m),
			m.Confidence,
			m.Direction,
			arbFlag(m.HasArbitrage),
		)
	}
	tw.Flush()
}

func truncateTitle(s string) string {
	const max = 48
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func centsOrDash(m *domain.NormalizedMarket) string {
	if m == nil {
		return "-"
	}
	return fmt.Sprintf("%d¢", m.PriceCents)
}

func spreadOrDash(m *domain.UnifiedMarket) string {
	if !m.Matched() {
		return "-"
	}
	return fmt.Sprintf("%d¢", m.SpreadAbs)
}

func pctOrDash(m *domain.UnifiedMarket) string {
	if !m.Matched() {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", m.SpreadPct)
}

func arbFlag(has bool) string {
	if has {
		return "YES"
	}
	return ""
}
