package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies SPREADSCAN_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known SPREADSCAN_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Polymarket ──
	setStr(&cfg.Polymarket.GammaHost, "SPREADSCAN_POLYMARKET_GAMMA_HOST")
	setStr(&cfg.Polymarket.Tag, "SPREADSCAN_POLYMARKET_TAG")
	setInt(&cfg.Polymarket.Limit, "SPREADSCAN_POLYMARKET_LIMIT")

	// ── Kalshi ──
	setStr(&cfg.Kalshi.BaseURL, "SPREADSCAN_KALSHI_BASE_URL")
	setStr(&cfg.Kalshi.Category, "SPREADSCAN_KALSHI_CATEGORY")
	setInt(&cfg.Kalshi.Limit, "SPREADSCAN_KALSHI_LIMIT")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "SPREADSCAN_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "SPREADSCAN_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "SPREADSCAN_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "SPREADSCAN_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "SPREADSCAN_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "SPREADSCAN_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "SPREADSCAN_POSTGRES_SSLMODE")
	setInt(&cfg.Postgres.PoolMaxConns, "SPREADSCAN_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "SPREADSCAN_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "SPREADSCAN_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "SPREADSCAN_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "SPREADSCAN_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "SPREADSCAN_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "SPREADSCAN_REDIS_POOL_SIZE")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "SPREADSCAN_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "SPREADSCAN_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "SPREADSCAN_S3_REGION")
	setStr(&cfg.S3.Bucket, "SPREADSCAN_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "SPREADSCAN_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "SPREADSCAN_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "SPREADSCAN_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "SPREADSCAN_S3_FORCE_PATH_STYLE")

	// ── Scanner ──
	setDuration(&cfg.Scanner.Interval, "SPREADSCAN_SCANNER_INTERVAL")
	setStringSlice(&cfg.Scanner.KeyTerms, "SPREADSCAN_SCANNER_KEY_TERMS")
	setFloat64(&cfg.Scanner.KeyTermBonus, "SPREADSCAN_SCANNER_KEY_TERM_BONUS")
	setFloat64(&cfg.Scanner.MinMatchScore, "SPREADSCAN_SCANNER_MIN_MATCH_SCORE")
	setFloat64(&cfg.Scanner.HighConfidence, "SPREADSCAN_SCANNER_HIGH_CONFIDENCE")
	setFloat64(&cfg.Scanner.MediumConfidence, "SPREADSCAN_SCANNER_MEDIUM_CONFIDENCE")
	setFloat64(&cfg.Scanner.DirectionPct, "SPREADSCAN_SCANNER_DIRECTION_PCT")
	setFloat64(&cfg.Scanner.ArbitragePct, "SPREADSCAN_SCANNER_ARBITRAGE_PCT")
	setInt(&cfg.Scanner.MinResults, "SPREADSCAN_SCANNER_MIN_RESULTS")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "SPREADSCAN_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "SPREADSCAN_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "SPREADSCAN_SERVER_CORS_ORIGINS")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "SPREADSCAN_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "SPREADSCAN_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "SPREADSCAN_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "SPREADSCAN_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "SPREADSCAN_MODE")
	setStr(&cfg.LogLevel, "SPREADSCAN_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
