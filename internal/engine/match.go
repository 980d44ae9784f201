package engine

import (
	"context"
	"fmt"
	"time"

	"tradex/internal/logger"
	"tradex/internal/store"
	"tradex/internal/store/model"
	"tradex/internal/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Match runs one matching pass for a MARKET or LIMIT order inside the
// caller's unit of work. The caller must hold the symbol lock and must
// have persisted the order in status NEW already. On return the order's
// aggregates and status are recomputed and persisted.
//
// bootstrapEligible reports whether the symbol had never contained any
// order before this submission; only then may a first MARKET BUY
// execute against the reference price.
func (e *Engine) Match(ctx context.Context, uow store.UnitOfWork, order *types.Order, quote types.Quote, bootstrapEligible bool) ([]Execution, error) {
	if order.Type == types.OrderTypeLimit && !order.LimitPrice.Valid {
		return nil, types.NewValidationError("limit_price", "LIMIT order requires a limit price")
	}

	var priceLimit *decimal.Decimal
	if order.Type == types.OrderTypeLimit {
		p := order.LimitPrice.Decimal
		priceLimit = &p
	}

	candidates, err := uow.Orders().FindResting(ctx, order.Symbol, order.Side.Opposite(), priceLimit)
	if err != nil {
		return nil, fmt.Errorf("querying resting orders failed: %w", err)
	}

	remaining := order.Qty
	var execs []Execution

	for i := range candidates {
		if remaining <= 0 {
			break
		}
		// Re-fetch: the candidate may have been consumed earlier in
		// this pass via a stale snapshot, or cancelled meanwhile.
		current, err := uow.Orders().FindByUID(ctx, candidates[i].OrderUID)
		if err != nil {
			return nil, fmt.Errorf("refetching resting order failed: %w", err)
		}
		if current == nil || types.OrderStatus(current.Status).Terminal() {
			continue
		}
		restingRemaining := current.Qty - current.FilledQty
		if restingRemaining <= 0 {
			continue
		}

		fillQty := remaining
		if restingRemaining < fillQty {
			fillQty = restingRemaining
		}
		// Price improvement goes to the aggressor: execution happens at
		// the resting order's limit price.
		execPrice := current.LimitPrice.Decimal
		execAt := time.Now()

		takerFill, err := e.recordFill(ctx, uow, order, fillQty, execPrice, execAt)
		if err != nil {
			return nil, err
		}
		resting := current.ToDomain()
		makerFill, err := e.recordFill(ctx, uow, resting, fillQty, execPrice, execAt)
		if err != nil {
			return nil, err
		}
		if err := reclassify(ctx, uow.Fills(), resting); err != nil {
			return nil, err
		}
		if err := uow.Orders().Save(ctx, model.OrderFromDomain(resting)); err != nil {
			return nil, fmt.Errorf("saving resting order failed: %w", err)
		}
		if err := e.ledger.ApplyFill(ctx, uow.Positions(), resting.AccountID, resting.Symbol, signedQty(resting.Side, fillQty), execPrice); err != nil {
			return nil, err
		}

		remaining -= fillQty
		execs = append(execs, Execution{
			Taker:          *takerFill,
			Maker:          makerFill,
			MakerAccountID: resting.AccountID,
			MakerSide:      resting.Side,
		})
	}

	if len(execs) == 0 && remaining == order.Qty && bootstrapEligible &&
		order.Side == types.SideBuy && order.Type == types.OrderTypeMarket {
		fill, err := e.recordFill(ctx, uow, order, order.Qty, quote.LastPrice, time.Now())
		if err != nil {
			return nil, err
		}
		logger.Infof("bootstrap fill: %s BUY %d @ %s", order.Symbol, order.Qty, quote.LastPrice)
		execs = append(execs, Execution{Taker: *fill})
	}

	if err := reclassify(ctx, uow.Fills(), order); err != nil {
		return nil, err
	}
	if err := uow.Orders().Save(ctx, model.OrderFromDomain(order)); err != nil {
		return nil, fmt.Errorf("saving order failed: %w", err)
	}
	for i := range execs {
		if err := e.ledger.ApplyFill(ctx, uow.Positions(), order.AccountID, order.Symbol, signedQty(order.Side, execs[i].Taker.Qty), execs[i].Taker.Price); err != nil {
			return nil, err
		}
	}
	return execs, nil
}

// recordFill appends one immutable fill for the order.
func (e *Engine) recordFill(ctx context.Context, uow store.UnitOfWork, order *types.Order, qty int64, price decimal.Decimal, at time.Time) (*types.Fill, error) {
	fill := &types.Fill{
		ID:         uuid.NewString(),
		OrderID:    order.ID,
		Qty:        qty,
		Price:      price,
		ExecutedAt: at,
	}
	if err := uow.Fills().Insert(ctx, model.FillFromDomain(fill)); err != nil {
		return nil, fmt.Errorf("inserting fill failed: %w", err)
	}
	return fill, nil
}

func signedQty(side types.Side, qty int64) int64 {
	if side == types.SideSell {
		return -qty
	}
	return qty
}
