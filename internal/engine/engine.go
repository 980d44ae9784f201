// Package engine pairs incoming orders with resting interest in
// price-time priority and produces the resulting fills. TWAP orders
// bypass the book and execute against a synthetic liquidity estimate;
// the two strategies share the same lifecycle and aggregate rules.
package engine

import (
	"tradex/internal/ledger"
	"tradex/internal/types"
)

// Execution is one unit of executed quantity produced by a pass. Maker
// is nil for synthetic executions (bootstrap and TWAP slices), which
// have no resting counterparty.
type Execution struct {
	Taker          types.Fill
	Maker          *types.Fill
	MakerAccountID string
	MakerSide      types.Side
}

type Engine struct {
	ledger    *ledger.Ledger
	liquidity LiquidityModel
}

func New(l *ledger.Ledger) *Engine {
	return &Engine{
		ledger:    l,
		liquidity: NewLiquidityModel(),
	}
}

// Liquidity exposes the synthetic liquidity model (used by TWAP slicing).
func (e *Engine) Liquidity() LiquidityModel { return e.liquidity }
