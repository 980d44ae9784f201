package config

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	Market MarketConfig `mapstructure:"market"`
	Risk   RiskConfig   `mapstructure:"risk"`
}

type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
	LogPath  string `mapstructure:"log_path"`
	HTTPAddr string `mapstructure:"http_addr"`
	DBPath   string `mapstructure:"db_path"`
	TapePath string `mapstructure:"tape_path"`
}

type MarketConfig struct {
	// Provider selects the quote source: "binance" or "static".
	Provider       string        `mapstructure:"provider"`
	QuoteTTLSec    int           `mapstructure:"quote_ttl_sec"`
	QuotesFilePath string        `mapstructure:"quotes_file"`
	Binance        BinanceConfig `mapstructure:"binance"`
}

type BinanceConfig struct {
	RESTBaseURL    string `mapstructure:"rest_base_url"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec"`
}

type RiskConfig struct {
	MaxOrderQty  int64   `mapstructure:"max_order_qty"`
	MaxNotional  float64 `mapstructure:"max_notional"`
	PriceBandPct float64 `mapstructure:"price_band_pct"`
}
