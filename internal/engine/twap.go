package engine

import (
	"context"
	"fmt"
	"time"

	"tradex/internal/store"
	"tradex/internal/store/model"
	"tradex/internal/types"
)

// twapMaxSlices caps the number of synthetic slices per pass.
const twapMaxSlices = 10

// twapSliceStep offsets consecutive slice timestamps so fill ordering
// within one pass stays deterministic.
const twapSliceStep = time.Millisecond

// SliceTWAP executes a TWAP order as a schedule of synthetic slices
// against the liquidity estimate, never against the resting book. Each
// slice fills at the quote's last price; a supplied limit price is
// ignored. Slicing stops early the moment the estimate cannot cover a
// full slice.
func (e *Engine) SliceTWAP(ctx context.Context, uow store.UnitOfWork, order *types.Order, quote types.Quote) ([]Execution, error) {
	numSlices := order.Qty
	if numSlices > twapMaxSlices {
		numSlices = twapMaxSlices
	}
	if numSlices < 1 {
		numSlices = 1
	}

	baseSliceQty := order.Qty / numSlices
	remainder := order.Qty % numSlices
	remaining := order.Qty
	passStart := time.Now()

	var execs []Execution
	for i := int64(0); i < numSlices && remaining > 0; i++ {
		plannedQty := baseSliceQty
		if i < remainder {
			plannedQty++
		}
		sliceQty := plannedQty
		if remaining < sliceQty {
			sliceQty = remaining
		}
		available := e.liquidity.AvailableAt(quote)
		fillQty := sliceQty
		if available < fillQty {
			fillQty = available
		}
		if fillQty <= 0 {
			break
		}

		fill, err := e.recordFill(ctx, uow, order, fillQty, quote.LastPrice, passStart.Add(time.Duration(i)*twapSliceStep))
		if err != nil {
			return nil, err
		}
		if err := e.ledger.ApplyFill(ctx, uow.Positions(), order.AccountID, order.Symbol, signedQty(order.Side, fillQty), fill.Price); err != nil {
			return nil, err
		}
		remaining -= fillQty
		execs = append(execs, Execution{Taker: *fill})

		// Insufficient synthetic liquidity: emit the partial slice and
		// give up on the rest of this pass.
		if fillQty < sliceQty {
			break
		}
	}

	if err := reclassify(ctx, uow.Fills(), order); err != nil {
		return nil, err
	}
	if err := uow.Orders().Save(ctx, model.OrderFromDomain(order)); err != nil {
		return nil, fmt.Errorf("saving order failed: %w", err)
	}
	return execs, nil
}
