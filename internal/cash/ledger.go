// Package cash adjusts account balances by the signed notional of each
// fill. It sits outside the matching correctness contract: failures are
// reported to the caller, who logs and moves on.
package cash

import (
	"context"
	"fmt"

	"tradex/internal/store"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
)

// Ledger is notified after fills with the account's signed notional.
type Ledger interface {
	ApplyTrade(ctx context.Context, accountID string, side types.Side, qty int64, price decimal.Decimal) error
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
}

type storeLedger struct {
	store store.Store
}

func NewLedger(s store.Store) Ledger {
	return &storeLedger{store: s}
}

// ApplyTrade debits the account for a BUY (-price*qty) and credits it
// for a SELL (+price*qty).
func (l *storeLedger) ApplyTrade(ctx context.Context, accountID string, side types.Side, qty int64, price decimal.Decimal) error {
	notional := price.Mul(decimal.NewFromInt(qty))
	if side == types.SideBuy {
		notional = notional.Neg()
	}
	uow, err := l.store.Begin(ctx)
	if err != nil {
		return fmt.Errorf("starting cash adjustment failed: %w", err)
	}
	if err := uow.Cash().Adjust(ctx, accountID, notional); err != nil {
		uow.Rollback()
		return fmt.Errorf("adjusting cash balance failed: %w", err)
	}
	return uow.Commit()
}

func (l *storeLedger) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	uow, err := l.store.Begin(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer uow.Rollback()
	return uow.Cash().Balance(ctx, accountID)
}
