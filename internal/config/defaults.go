package config

func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.App.HTTPAddr == "" {
		c.App.HTTPAddr = ":8080"
	}
	if c.App.DBPath == "" {
		c.App.DBPath = "data/tradex.db"
	}
	if c.App.TapePath == "" {
		c.App.TapePath = "data/tape.db"
	}
	if c.Market.Provider == "" {
		c.Market.Provider = "static"
	}
	if c.Market.QuoteTTLSec <= 0 {
		c.Market.QuoteTTLSec = 5
	}
	if c.Market.QuotesFilePath == "" {
		c.Market.QuotesFilePath = "configs/quotes.yaml"
	}
	if c.Market.Binance.HTTPTimeoutSec <= 0 {
		c.Market.Binance.HTTPTimeoutSec = 10
	}
}
