package config

import (
	"fmt"
	"strings"
)

func validate(cfg *Config) error {
	switch strings.ToLower(strings.TrimSpace(cfg.Market.Provider)) {
	case "binance", "static":
	default:
		return fmt.Errorf("market.provider must be binance or static, got %q", cfg.Market.Provider)
	}
	if cfg.Risk.MaxOrderQty < 0 {
		return fmt.Errorf("risk.max_order_qty must not be negative")
	}
	if cfg.Risk.MaxNotional < 0 {
		return fmt.Errorf("risk.max_notional must not be negative")
	}
	if cfg.Risk.PriceBandPct < 0 || cfg.Risk.PriceBandPct >= 1 {
		return fmt.Errorf("risk.price_band_pct must be in [0, 1)")
	}
	return nil
}
