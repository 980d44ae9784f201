// Package risk performs pre-trade checks against the reference quote.
// A rejected request is never persisted.
package risk

import (
	"fmt"

	"tradex/internal/types"

	"github.com/shopspring/decimal"
)

// Validator is consulted once per submission, before persistence.
type Validator interface {
	Validate(req types.OrderRequest, quote types.Quote) error
}

// Limits configures the default validator. Zero values disable the
// corresponding check.
type Limits struct {
	// MaxOrderQty caps the requested quantity of a single order.
	MaxOrderQty int64
	// MaxNotional caps qty times the reference price.
	MaxNotional decimal.Decimal
	// PriceBandPct rejects LIMIT prices further than this fraction from
	// the reference last price (e.g. 0.2 = 20%).
	PriceBandPct decimal.Decimal
}

type validator struct {
	limits Limits
}

func NewValidator(limits Limits) Validator {
	return &validator{limits: limits}
}

func (v *validator) Validate(req types.OrderRequest, quote types.Quote) error {
	if v.limits.MaxOrderQty > 0 && req.Qty > v.limits.MaxOrderQty {
		return &types.RiskViolationError{
			Rule:   "max_order_qty",
			Detail: fmt.Sprintf("qty %d exceeds limit %d", req.Qty, v.limits.MaxOrderQty),
		}
	}

	refPrice := quote.LastPrice
	if req.LimitPrice.Valid {
		refPrice = req.LimitPrice.Decimal
	}
	if v.limits.MaxNotional.IsPositive() {
		notional := refPrice.Mul(decimal.NewFromInt(req.Qty))
		if notional.GreaterThan(v.limits.MaxNotional) {
			return &types.RiskViolationError{
				Rule:   "max_notional",
				Detail: fmt.Sprintf("notional %s exceeds limit %s", notional, v.limits.MaxNotional),
			}
		}
	}

	if v.limits.PriceBandPct.IsPositive() && req.LimitPrice.Valid && quote.LastPrice.IsPositive() {
		dist := req.LimitPrice.Decimal.Sub(quote.LastPrice).Abs().Div(quote.LastPrice)
		if dist.GreaterThan(v.limits.PriceBandPct) {
			return &types.RiskViolationError{
				Rule:   "price_band",
				Detail: fmt.Sprintf("limit price %s deviates %s from reference %s", req.LimitPrice.Decimal, dist, quote.LastPrice),
			}
		}
	}
	return nil
}
