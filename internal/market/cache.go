package market

import (
	"context"
	"sync"
	"time"

	"tradex/internal/types"
)

// CachedSource bounds quote staleness with a TTL in front of any
// Source. Errors are never cached.
type CachedSource struct {
	inner Source
	ttl   time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	quote   types.Quote
	fetched time.Time
}

func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	c.mu.Lock()
	entry, ok := c.entries[symbol]
	c.mu.Unlock()
	if ok && time.Since(entry.fetched) < c.ttl {
		return entry.quote, nil
	}

	quote, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return types.Quote{}, err
	}
	c.mu.Lock()
	c.entries[symbol] = cacheEntry{quote: quote, fetched: time.Now()}
	c.mu.Unlock()
	return quote, nil
}

func (c *CachedSource) Close() error { return c.inner.Close() }
