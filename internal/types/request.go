package types

import "github.com/shopspring/decimal"

// OrderRequest is a client submission before validation and persistence.
type OrderRequest struct {
	AccountID     string              `json:"account_id"`
	ClientOrderID string              `json:"client_order_id,omitempty"`
	Symbol        string              `json:"symbol"`
	Side          Side                `json:"side"`
	Type          OrderType           `json:"type"`
	Qty           int64               `json:"qty"`
	LimitPrice    decimal.NullDecimal `json:"limit_price,omitempty"`
	TimeInForce   string              `json:"time_in_force,omitempty"`
}
