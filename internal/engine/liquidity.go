package engine

import (
	"tradex/internal/types"

	"github.com/shopspring/decimal"
)

// LiquidityModel estimates how much synthetic quantity a TWAP slice can
// take at the reference price. Book-matched orders never consult it;
// they are bounded by actual resting quantities.
type LiquidityModel struct {
	fraction decimal.Decimal
	minQty   int64
	maxQty   int64
}

// NewLiquidityModel returns the default model: 10% of quoted volume,
// clamped to [50, 10000].
func NewLiquidityModel() LiquidityModel {
	return LiquidityModel{
		fraction: decimal.NewFromFloat(0.10),
		minQty:   50,
		maxQty:   10000,
	}
}

// AvailableAt estimates available quantity from the quote's volume,
// truncated to a whole quantity.
func (m LiquidityModel) AvailableAt(quote types.Quote) int64 {
	est := quote.Volume.Mul(m.fraction).IntPart()
	if est < m.minQty {
		return m.minQty
	}
	if est > m.maxQty {
		return m.maxQty
	}
	return est
}
