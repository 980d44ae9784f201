package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// Opposite returns the counter side used when querying resting liquidity.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

func (s Side) Valid() bool { return s == SideBuy || s == SideSell }

type OrderType string

const (
	OrderTypeMarket OrderType = "MARKET"
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeTWAP   OrderType = "TWAP"
)

func (t OrderType) Valid() bool {
	return t == OrderTypeMarket || t == OrderTypeLimit || t == OrderTypeTWAP
}

type OrderStatus string

const (
	// StatusNew exists only between creation and the first matching pass.
	StatusNew             OrderStatus = "NEW"
	StatusWorking         OrderStatus = "WORKING"
	StatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	StatusFilled          OrderStatus = "FILLED"
	StatusCancelled       OrderStatus = "CANCELLED"
)

// Terminal reports whether no further mutation of the order is allowed.
func (s OrderStatus) Terminal() bool {
	return s == StatusFilled || s == StatusCancelled
}

// Order is a request to trade a quantity of a symbol.
// FilledQty and AvgFillPrice are derived values, recomputed from the
// order's full fill history after every matching pass.
type Order struct {
	ID            string
	ClientOrderID string
	AccountID     string
	Symbol        string
	Side          Side
	Type          OrderType
	Qty           int64
	LimitPrice    decimal.NullDecimal
	TimeInForce   string
	Status        OrderStatus
	FilledQty     int64
	AvgFillPrice  decimal.NullDecimal
	CreatedAt     time.Time
}

// RemainingQty returns the unexecuted quantity.
func (o *Order) RemainingQty() int64 { return o.Qty - o.FilledQty }

// Fill is an immutable execution record. Fills are never updated or
// deleted; order aggregates are always recomputed from them.
type Fill struct {
	ID         string
	OrderID    string
	Qty        int64
	Price      decimal.Decimal
	ExecutedAt time.Time
}

// Position tracks the signed quantity and weighted average cost held by
// an account in one symbol. Qty > 0 is long, Qty < 0 is short. AvgCost
// is meaningful only while Qty != 0.
type Position struct {
	AccountID string
	Symbol    string
	Qty       int64
	AvgCost   decimal.Decimal
	UpdatedAt time.Time
}

// Quote is a read-only market reference: the last traded price and the
// day volume backing the liquidity estimate.
type Quote struct {
	Symbol    string
	Open      decimal.Decimal
	High      decimal.Decimal
	Low       decimal.Decimal
	Close     decimal.Decimal
	LastPrice decimal.Decimal
	Volume    decimal.Decimal
	Timestamp time.Time
}
