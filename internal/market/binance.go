package market

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tradex/internal/pkg/convert"
	"tradex/internal/types"

	"github.com/adshao/go-binance/v2/futures"
)

// BinanceConfig configures the REST quote source.
type BinanceConfig struct {
	RESTBaseURL string
	HTTPTimeout time.Duration
}

func (c BinanceConfig) withDefaults() BinanceConfig {
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 10 * time.Second
	}
	return c
}

// BinanceSource serves reference quotes from the Binance futures 24h
// ticker endpoint.
type BinanceSource struct {
	cfg    BinanceConfig
	client *futures.Client
}

func NewBinanceSource(cfg BinanceConfig) *BinanceSource {
	final := cfg.withDefaults()
	client := futures.NewClient("", "")
	if base := strings.TrimSpace(final.RESTBaseURL); base != "" {
		client.BaseURL = base
	}
	client.HTTPClient = &http.Client{Timeout: final.HTTPTimeout}
	return &BinanceSource{cfg: final, client: client}
}

func (s *BinanceSource) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return types.Quote{}, fmt.Errorf("symbol is required")
	}
	stats, err := s.client.NewListPriceChangeStatsService().Symbol(symbol).Do(ctx)
	if err != nil {
		return types.Quote{}, fmt.Errorf("fetching ticker for %s failed: %w", symbol, err)
	}
	if len(stats) == 0 || stats[0] == nil {
		return types.Quote{}, fmt.Errorf("%w: %s", types.ErrQuoteNotFound, symbol)
	}
	st := stats[0]
	quote := types.Quote{
		Symbol:    symbol,
		Open:      convert.ToDecimal(st.OpenPrice),
		High:      convert.ToDecimal(st.HighPrice),
		Low:       convert.ToDecimal(st.LowPrice),
		Close:     convert.ToDecimal(st.LastPrice),
		LastPrice: convert.ToDecimal(st.LastPrice),
		Volume:    convert.ToDecimal(st.Volume),
		Timestamp: time.UnixMilli(st.CloseTime),
	}
	if !quote.LastPrice.IsPositive() {
		return types.Quote{}, fmt.Errorf("%w: %s", types.ErrQuoteNotFound, symbol)
	}
	return quote, nil
}

func (s *BinanceSource) Close() error { return nil }
