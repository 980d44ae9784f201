package market

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tradex/internal/pkg/circuit"
	"tradex/internal/types"
)

// GuardedSource protects a remote quote source with a circuit breaker
// so a flapping upstream fails fast instead of stalling submissions.
type GuardedSource struct {
	inner   Source
	breaker *circuit.Breaker
}

func NewGuardedSource(inner Source, name string) *GuardedSource {
	return &GuardedSource{
		inner:   inner,
		breaker: circuit.NewBreaker(name, 5, 30*time.Second),
	}
}

func (g *GuardedSource) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	if !g.breaker.Allow() {
		return types.Quote{}, fmt.Errorf("quote source unavailable (breaker open)")
	}
	quote, err := g.inner.GetQuote(ctx, symbol)
	if err != nil {
		// An unknown symbol is an answer, not an upstream failure.
		if !errors.Is(err, types.ErrQuoteNotFound) {
			g.breaker.RecordFailure()
		}
		return types.Quote{}, err
	}
	g.breaker.RecordSuccess()
	return quote, nil
}

func (g *GuardedSource) Close() error { return g.inner.Close() }
