// Package market supplies reference quotes. The venue consumes one
// reading per symbol: last price plus volume. Quote history replay is
// explicitly out of scope.
package market

import (
	"context"

	"tradex/internal/types"
)

// Source resolves the current reference quote for a symbol. Absence is
// reported as types.ErrQuoteNotFound.
type Source interface {
	GetQuote(ctx context.Context, symbol string) (types.Quote, error)
	Close() error
}
