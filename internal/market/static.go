package market

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"tradex/internal/logger"
	"tradex/internal/types"

	"github.com/fsnotify/fsnotify"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// staticQuote is one entry of the quotes file.
type staticQuote struct {
	Symbol    string  `yaml:"symbol"`
	Open      float64 `yaml:"open"`
	High      float64 `yaml:"high"`
	Low       float64 `yaml:"low"`
	Close     float64 `yaml:"close"`
	LastPrice float64 `yaml:"last_price"`
	Volume    float64 `yaml:"volume"`
}

type staticQuoteFile struct {
	Quotes []staticQuote `yaml:"quotes"`
}

// StaticSource serves quotes from a YAML file and hot-reloads it on
// change. Intended for development and isolated deployments, where a
// live exchange feed is unavailable.
type StaticSource struct {
	path    string
	watcher *fsnotify.Watcher

	mu     sync.RWMutex
	quotes map[string]types.Quote
}

func NewStaticSource(path string) (*StaticSource, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("static quote source requires a file path")
	}
	s := &StaticSource{path: path, quotes: make(map[string]types.Quote)}
	if err := s.reload(); err != nil {
		return nil, err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("starting quote file watcher failed: %w", err)
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching quote file failed: %w", err)
	}
	s.watcher = watcher
	go s.watchLoop()
	return s, nil
}

func (s *StaticSource) watchLoop() {
	for {
		select {
		case evt, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if err := s.reload(); err != nil {
				logger.Errorf("quote file reload failed: %v", err)
				continue
			}
			logger.Infof("quote file reloaded: %s", s.path)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warnf("quote file watcher error: %v", err)
		}
	}
}

func (s *StaticSource) reload() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("reading quote file failed: %w", err)
	}
	var file staticQuoteFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parsing quote file failed: %w", err)
	}
	quotes := make(map[string]types.Quote, len(file.Quotes))
	now := time.Now()
	for _, q := range file.Quotes {
		symbol := strings.ToUpper(strings.TrimSpace(q.Symbol))
		if symbol == "" || q.LastPrice <= 0 {
			continue
		}
		quotes[symbol] = types.Quote{
			Symbol:    symbol,
			Open:      decimal.NewFromFloat(q.Open),
			High:      decimal.NewFromFloat(q.High),
			Low:       decimal.NewFromFloat(q.Low),
			Close:     decimal.NewFromFloat(q.Close),
			LastPrice: decimal.NewFromFloat(q.LastPrice),
			Volume:    decimal.NewFromFloat(q.Volume),
			Timestamp: now,
		}
	}
	s.mu.Lock()
	s.quotes = quotes
	s.mu.Unlock()
	return nil
}

func (s *StaticSource) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	s.mu.RLock()
	quote, ok := s.quotes[symbol]
	s.mu.RUnlock()
	if !ok {
		return types.Quote{}, fmt.Errorf("%w: %s", types.ErrQuoteNotFound, symbol)
	}
	return quote, nil
}

func (s *StaticSource) Close() error {
	if s.watcher != nil {
		return s.watcher.Close()
	}
	return nil
}
