package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/jrgordon/spreadscan/internal/blob/s3"
	"github.com/jrgordon/spreadscan/internal/cache/redis"
	"github.com/jrgordon/spreadscan/internal/config"
	"github.com/jrgordon/spreadscan/internal/domain"
	"github.com/jrgordon/spreadscan/internal/notify"
	"github.com/jrgordon/spreadscan/internal/platform/kalshi"
	"github.com/jrgordon/spreadscan/internal/platform/polymarket"
	"github.com/jrgordon/spreadscan/internal/scan"
	"github.com/jrgordon/spreadscan/internal/service"
	"github.com/jrgordon/spreadscan/internal/store/postgres"
)

// Dependencies bundles everything the application modes need to operate. It
// is constructed by Wire and torn down by the returned cleanup function.
// Fields that the active mode does not need stay nil; the service layer
// treats nil collaborators as disabled.
type Dependencies struct {
	Service  *service.ScanService
	Archiver *s3blob.Archiver
}

// needsStores returns true for modes that keep history: they require both
// Postgres and Redis connections.
func needsStores(mode string) bool {
	switch mode {
	case "watch", "server", "full":
		return true
	default:
		return false
	}
}

// needsS3 reports whether the mode archives scan snapshots. The archive is
// additionally gated on cfg.S3.Enabled.
func needsS3(mode string) bool {
	switch mode {
	case "watch", "full":
		return true
	default:
		return false
	}
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them together with a cleanup function that should
// be called on shutdown to release resources.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	var (
		cache domain.ScanCache
		store domain.OpportunityStore
		bus   domain.SignalBus
	)

	if needsStores(cfg.Mode) {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}
		store = postgres.NewOpportunityStore(pgClient.Pool())

		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		cache = redis.NewScanCache(redisClient)
		bus = redis.NewSignalBus(redisClient)
	}

	deps := &Dependencies{}

	if needsS3(cfg.Mode) && cfg.S3.Enabled {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}
		closers = append(closers, func() { _ = s3Client.Close() })

		deps.Archiver = s3blob.NewArchiver(s3blob.NewWriter(s3Client))
	}

	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	var notifier *notify.Notifier
	if len(senders) > 0 {
		notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)
	}

	gamma := polymarket.NewGammaClient(polymarket.ClientConfig{
		BaseURL: cfg.Polymarket.GammaHost,
		Tag:     cfg.Polymarket.Tag,
		Limit:   cfg.Polymarket.Limit,
	})
	kalshiClient := kalshi.NewClient(kalshi.ClientConfig{
		BaseURL:  cfg.Kalshi.BaseURL,
		Category: cfg.Kalshi.Category,
		Limit:    cfg.Kalshi.Limit,
	})

	pipeline := scan.NewPipeline(scanConfig(cfg), gamma, kalshiClient, logger)
	deps.Service = service.NewScanService(pipeline, cache, store, bus, notifier, logger)

	return deps, cleanup, nil
}

// scanConfig maps the TOML scanner section onto the scan package constants,
// starting from the built-in defaults so zero values in the file never zero a
// threshold.
func scanConfig(cfg *config.Config) scan.Config {
	sc := scan.DefaultConfig()
	if len(cfg.Scanner.KeyTerms) > 0 {
		sc.KeyTerms = cfg.Scanner.KeyTerms
	}
	if cfg.Scanner.KeyTermBonus > 0 {
		sc.KeyTermBonus = cfg.Scanner.KeyTermBonus
	}
	if cfg.Scanner.MinMatchScore > 0 {
		sc.MinMatchScore = cfg.Scanner.MinMatchScore
	}
	if cfg.Scanner.HighConfidence > 0 {
		sc.HighConfidence = cfg.Scanner.HighConfidence
	}
	if cfg.Scanner.MediumConfidence > 0 {
		sc.MediumConfidence = cfg.Scanner.MediumConfidence
	}
	if cfg.Scanner.DirectionPct > 0 {
		sc.DirectionPct = cfg.Scanner.DirectionPct
	}
	if cfg.Scanner.ArbitragePct > 0 {
		sc.ArbitragePct = cfg.Scanner.ArbitragePct
	}
	if cfg.Scanner.MinResults > 0 {
		sc.MinResults = cfg.Scanner.MinResults
	}
	return sc
}
