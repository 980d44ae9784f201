package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, "data/tradex.db", cfg.App.DBPath)
	assert.Equal(t, "static", cfg.Market.Provider)
	assert.Equal(t, 5, cfg.Market.QuoteTTLSec)
	assert.Equal(t, "configs/quotes.yaml", cfg.Market.QuotesFilePath)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
app:
  log_level: warn
  http_addr: ":9090"
  db_path: /tmp/venue.db
market:
  provider: binance
  quote_ttl_sec: 10
  binance:
    rest_base_url: https://fapi.binance.com
    http_timeout_sec: 15
risk:
  max_order_qty: 10000
  max_notional: 2000000
  price_band_pct: 0.2
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.Equal(t, "binance", cfg.Market.Provider)
	assert.Equal(t, 10, cfg.Market.QuoteTTLSec)
	assert.Equal(t, 15, cfg.Market.Binance.HTTPTimeoutSec)
	assert.Equal(t, int64(10000), cfg.Risk.MaxOrderQty)
	assert.Equal(t, float64(2000000), cfg.Risk.MaxNotional)
	assert.Equal(t, 0.2, cfg.Risk.PriceBandPct)
}

func TestLoadRejectsBadConfig(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		path := writeConfig(t, `
market:
  provider: kraken
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "market.provider")
	})

	t.Run("price band out of range", func(t *testing.T) {
		path := writeConfig(t, `
risk:
  price_band_pct: 1.5
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "price_band_pct")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		assert.Error(t, err)
	})
}
