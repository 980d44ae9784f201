package store

import (
	"context"

	"tradex/internal/store/model"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
)

// UnitOfWork defines a transaction scope. A matching pass runs entirely
// inside one unit of work so an aborted pass persists nothing.
type UnitOfWork interface {
	// Commit commits the transaction.
	Commit() error
	// Rollback rolls back the transaction.
	Rollback() error

	// Orders returns the order repository within this transaction.
	Orders() OrderRepository
	// Fills returns the fill repository within this transaction.
	Fills() FillRepository
	// Positions returns the position repository within this transaction.
	Positions() PositionRepository
	// Activity returns the symbol activity repository within this transaction.
	Activity() SymbolActivityRepository
	// Cash returns the cash account repository within this transaction.
	Cash() CashRepository
}

// Store is the entry point for database access.
type Store interface {
	// Begin starts a new UnitOfWork (transaction).
	Begin(ctx context.Context) (UnitOfWork, error)
	// Close closes the store connection.
	Close() error
}

// OrderRepository handles order persistence.
type OrderRepository interface {
	Save(ctx context.Context, order *model.OrderModel) error
	FindByUID(ctx context.Context, uid string) (*model.OrderModel, error)
	// FindResting returns resting orders (WORKING or PARTIALLY_FILLED)
	// on the given side of the book that carry a limit price. A nil
	// priceLimit disables the price filter (market order semantics).
	// Results come back in price-time priority for an aggressor on the
	// opposite side: best price first, then earliest created.
	FindResting(ctx context.Context, symbol string, side types.Side, priceLimit *decimal.Decimal) ([]model.OrderModel, error)
}

// FillRepository handles the append-only fill log.
type FillRepository interface {
	Insert(ctx context.Context, fill *model.FillModel) error
	ListByOrder(ctx context.Context, orderUID string) ([]model.FillModel, error)
}

// PositionRepository handles per (account, symbol) positions.
type PositionRepository interface {
	Find(ctx context.Context, accountID, symbol string) (*model.PositionModel, error)
	Save(ctx context.Context, pos *model.PositionModel) error
	Delete(ctx context.Context, accountID, symbol string) error
	ListByAccount(ctx context.Context, accountID string) ([]model.PositionModel, error)
}

// SymbolActivityRepository tracks whether a symbol has ever contained an
// order. The cold-start bootstrap consults this, not the current book.
type SymbolActivityRepository interface {
	MarkTouched(ctx context.Context, symbol string) error
	Touched(ctx context.Context, symbol string) (bool, error)
}

// CashRepository adjusts per-account cash balances by signed notional.
type CashRepository interface {
	Adjust(ctx context.Context, accountID string, delta decimal.Decimal) error
	Balance(ctx context.Context, accountID string) (decimal.Decimal, error)
}
