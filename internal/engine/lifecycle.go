package engine

import (
	"context"
	"fmt"

	"tradex/internal/store"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
)

// priceScale is the fixed scale for derived average fill prices.
const priceScale = 8

// reclassify recomputes an order's aggregate fields and status from its
// full fill history. It is evaluated after every matching pass that
// touched the order, for both aggressor and resting sides. An overfill
// means the matching algorithm itself is broken, so it surfaces as an
// InternalInvariantError rather than being clamped.
func reclassify(ctx context.Context, fills store.FillRepository, order *types.Order) error {
	rows, err := fills.ListByOrder(ctx, order.ID)
	if err != nil {
		return fmt.Errorf("loading fills for %s failed: %w", order.ID, err)
	}

	var filled int64
	notional := decimal.Zero
	for i := range rows {
		filled += rows[i].Qty
		notional = notional.Add(rows[i].Price.Mul(decimal.NewFromInt(rows[i].Qty)))
	}

	if filled > order.Qty {
		return &types.InternalInvariantError{
			OrderID: order.ID,
			Detail:  fmt.Sprintf("filled qty %d exceeds order qty %d", filled, order.Qty),
		}
	}

	order.FilledQty = filled
	if filled > 0 {
		avg := notional.DivRound(decimal.NewFromInt(filled), priceScale)
		order.AvgFillPrice = decimal.NewNullDecimal(avg)
	}

	switch {
	case filled == 0:
		order.Status = types.StatusWorking
	case filled < order.Qty:
		order.Status = types.StatusPartiallyFilled
	default:
		order.Status = types.StatusFilled
	}
	return nil
}
