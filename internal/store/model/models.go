package model

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderModel struct {
	ID            int64               `gorm:"column:id;primaryKey"`
	OrderUID      string              `gorm:"column:order_uid;uniqueIndex"`
	ClientOrderID string              `gorm:"column:client_order_id;index"`
	AccountID     string              `gorm:"column:account_id;index"`
	Symbol        string              `gorm:"column:symbol;index:idx_orders_book,priority:1"`
	Side          string              `gorm:"column:side;index:idx_orders_book,priority:2"`
	Type          string              `gorm:"column:type"`
	Qty           int64               `gorm:"column:qty"`
	LimitPrice    decimal.NullDecimal `gorm:"column:limit_price;type:decimal(32,8)"`
	TimeInForce   string              `gorm:"column:time_in_force"`
	Status        string              `gorm:"column:status;index:idx_orders_book,priority:3"`
	FilledQty     int64               `gorm:"column:filled_qty"`
	AvgFillPrice  decimal.NullDecimal `gorm:"column:avg_fill_price;type:decimal(32,8)"`
	RawRequest    datatypes.JSON      `gorm:"column:raw_request;type:TEXT"`
	CreatedAtNs   int64               `gorm:"column:created_at_ns;index"`
	UpdatedAtNs   int64               `gorm:"column:updated_at_ns"`
}

func (OrderModel) TableName() string { return "orders" }

type FillModel struct {
	ID           int64           `gorm:"column:id;primaryKey"`
	FillUID      string          `gorm:"column:fill_uid;uniqueIndex"`
	OrderUID     string          `gorm:"column:order_uid;index"`
	Qty          int64           `gorm:"column:qty"`
	Price        decimal.Decimal `gorm:"column:price;type:decimal(32,8)"`
	ExecutedAtNs int64           `gorm:"column:executed_at_ns"`
}

func (FillModel) TableName() string { return "fills" }

type PositionModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	AccountID   string          `gorm:"column:account_id;uniqueIndex:idx_position_key,priority:1"`
	Symbol      string          `gorm:"column:symbol;uniqueIndex:idx_position_key,priority:2"`
	Qty         int64           `gorm:"column:qty"`
	AvgCost     decimal.Decimal `gorm:"column:avg_cost;type:decimal(32,8)"`
	UpdatedAtNs int64           `gorm:"column:updated_at_ns"`
}

func (PositionModel) TableName() string { return "positions" }

// SymbolActivityModel records the first order ever seen on a symbol.
// Its presence permanently disables the cold-start bootstrap.
type SymbolActivityModel struct {
	ID           int64  `gorm:"column:id;primaryKey"`
	Symbol       string `gorm:"column:symbol;uniqueIndex"`
	FirstOrderNs int64  `gorm:"column:first_order_ns"`
}

func (SymbolActivityModel) TableName() string { return "symbol_activity" }

type CashAccountModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	AccountID   string          `gorm:"column:account_id;uniqueIndex"`
	Balance     decimal.Decimal `gorm:"column:balance;type:decimal(32,8)"`
	UpdatedAtNs int64           `gorm:"column:updated_at_ns"`
}

func (CashAccountModel) TableName() string { return "cash_accounts" }
