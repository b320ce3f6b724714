package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsValidate(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "scan", cfg.Mode)
	assert.Equal(t, 0.3, cfg.Scanner.MinMatchScore)
	assert.Equal(t, 5.0, cfg.Scanner.ArbitragePct)
	assert.Equal(t, 3.0, cfg.Scanner.DirectionPct)
	assert.Equal(t, 60*time.Second, cfg.Scanner.Interval.Duration)
}

func TestLoadMergesTOMLOverDefaults(t *testing.T) {
	path := writeTOML(t, `
mode = "server"

[scanner]
interval = "5m"
arbitrage_pct = 7.5

[kalshi]
category = "Economics"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "server", cfg.Mode)
	assert.Equal(t, 5*time.Minute, cfg.Scanner.Interval.Duration)
	assert.Equal(t, 7.5, cfg.Scanner.ArbitragePct)
	assert.Equal(t, "Economics", cfg.Kalshi.Category)
	// Untouched sections keep their defaults.
	assert.Equal(t, "https://gamma-api.polymarket.com", cfg.Polymarket.GammaHost)
	assert.Equal(t, 0.3, cfg.Scanner.MinMatchScore)
}

func TestLoadEnvOverridesWinOverTOML(t *testing.T) {
	path := writeTOML(t, `
[redis]
addr = "toml-redis:6379"
`)
	t.Setenv("SPREADSCAN_REDIS_ADDR", "env-redis:6379")
	t.Setenv("SPREADSCAN_SCANNER_MIN_MATCH_SCORE", "0.5")
	t.Setenv("SPREADSCAN_SCANNER_KEY_TERMS", "fed, rates , cpi")
	t.Setenv("SPREADSCAN_SCANNER_INTERVAL", "90s")
	t.Setenv("SPREADSCAN_S3_ENABLED", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-redis:6379", cfg.Redis.Addr)
	assert.Equal(t, 0.5, cfg.Scanner.MinMatchScore)
	assert.Equal(t, []string{"fed", "rates", "cpi"}, cfg.Scanner.KeyTerms)
	assert.Equal(t, 90*time.Second, cfg.Scanner.Interval.Duration)
	assert.True(t, cfg.S3.Enabled)
}

func TestLoadIgnoresMalformedEnvValues(t *testing.T) {
	t.Setenv("SPREADSCAN_SCANNER_MIN_RESULTS", "not-a-number")
	t.Setenv("SPREADSCAN_SCANNER_INTERVAL", "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Defaults().Scanner.MinResults, cfg.Scanner.MinResults)
	assert.Equal(t, Defaults().Scanner.Interval.Duration, cfg.Scanner.Interval.Duration)
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Defaults()
	cfg.Mode = "bogus"
	cfg.LogLevel = "loud"
	cfg.Polymarket.GammaHost = ""
	cfg.Scanner.MinMatchScore = 1.5
	cfg.Scanner.ArbitragePct = 1 // below direction_pct

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown mode "bogus"`)
	assert.Contains(t, err.Error(), `unknown log_level "loud"`)
	assert.Contains(t, err.Error(), "gamma_host must not be empty")
	assert.Contains(t, err.Error(), "min_match_score must be in [0, 1]")
	assert.Contains(t, err.Error(), "arbitrage_pct must be >= direction_pct")
}

func TestValidateStoreChecksOnlyInPersistentModes(t *testing.T) {
	cfg := Defaults()
	cfg.Postgres.Host = ""
	cfg.Redis.Addr = ""

	cfg.Mode = "scan"
	assert.NoError(t, cfg.Validate(), "one-shot scan mode never dials the stores")

	cfg.Mode = "watch"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: host must not be empty")
	assert.Contains(t, err.Error(), "redis: addr must not be empty")
}

func writeTOML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
