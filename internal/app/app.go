// Package app wires configuration into a runnable venue process.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradex/internal/cash"
	"tradex/internal/config"
	"tradex/internal/engine"
	"tradex/internal/ledger"
	"tradex/internal/logger"
	"tradex/internal/market"
	"tradex/internal/risk"
	storesqlite "tradex/internal/store/sqlite"
	"tradex/internal/tape"
	httpapi "tradex/internal/transport/http"
	"tradex/internal/venue"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type App struct {
	cfg     *config.Config
	store   *storesqlite.SqliteStore
	tape    *tape.Tape
	quotes  market.Source
	venue   *venue.Service
	httpSrv *httpapi.Server
}

// NewApp builds the application from config without starting it.
func NewApp(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	logger.SetLevel(cfg.App.LogLevel)

	st, err := storesqlite.NewSqliteStore(cfg.App.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening store failed: %w", err)
	}
	tp, err := tape.New(cfg.App.TapePath)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("opening tape failed: %w", err)
	}
	quotes, err := buildQuoteSource(cfg)
	if err != nil {
		tp.Close()
		st.Close()
		return nil, err
	}

	led := ledger.New()
	eng := engine.New(led)
	validator := risk.NewValidator(risk.Limits{
		MaxOrderQty:  cfg.Risk.MaxOrderQty,
		MaxNotional:  decimal.NewFromFloat(cfg.Risk.MaxNotional),
		PriceBandPct: decimal.NewFromFloat(cfg.Risk.PriceBandPct),
	})
	svc := venue.NewService(st, eng, led, quotes, validator, cash.NewLedger(st), tp)

	httpSrv, err := httpapi.NewServer(httpapi.ServerConfig{
		Addr:  cfg.App.HTTPAddr,
		Venue: svc,
	})
	if err != nil {
		quotes.Close()
		tp.Close()
		st.Close()
		return nil, err
	}

	return &App{
		cfg:     cfg,
		store:   st,
		tape:    tp,
		quotes:  quotes,
		venue:   svc,
		httpSrv: httpSrv,
	}, nil
}

// Run serves until the context is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.cfg == nil {
		return fmt.Errorf("app not initialized")
	}
	logger.Infof("tradex listening on %s (quotes=%s)", a.cfg.App.HTTPAddr, a.cfg.Market.Provider)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		if err := a.httpSrv.Start(ctx); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	err := group.Wait()
	a.close()
	return err
}

// Venue exposes the underlying service (for test harnesses).
func (a *App) Venue() *venue.Service {
	if a == nil {
		return nil
	}
	return a.venue
}

func (a *App) close() {
	if a.quotes != nil {
		if err := a.quotes.Close(); err != nil {
			logger.Warnf("quote source close failed: %v", err)
		}
	}
	if a.tape != nil {
		if err := a.tape.Close(); err != nil {
			logger.Warnf("tape close failed: %v", err)
		}
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			logger.Warnf("store close failed: %v", err)
		}
	}
}

func buildQuoteSource(cfg *config.Config) (market.Source, error) {
	var inner market.Source
	switch strings.ToLower(strings.TrimSpace(cfg.Market.Provider)) {
	case "binance":
		inner = market.NewGuardedSource(market.NewBinanceSource(market.BinanceConfig{
			RESTBaseURL: cfg.Market.Binance.RESTBaseURL,
			HTTPTimeout: time.Duration(cfg.Market.Binance.HTTPTimeoutSec) * time.Second,
		}), "binance-quotes")
	case "static":
		src, err := market.NewStaticSource(cfg.Market.QuotesFilePath)
		if err != nil {
			return nil, fmt.Errorf("building static quote source failed: %w", err)
		}
		inner = src
	default:
		return nil, fmt.Errorf("unknown market provider %q", cfg.Market.Provider)
	}
	return market.NewCachedSource(inner, time.Duration(cfg.Market.QuoteTTLSec)*time.Second), nil
}
