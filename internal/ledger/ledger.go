// Package ledger maintains per (account, symbol) positions. It is the
// sole writer of position rows; everything else reads.
package ledger

import (
	"context"
	"fmt"
	"time"

	"tradex/internal/store"
	"tradex/internal/store/model"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
)

// costScale is the fixed scale weighted average cost is rounded to.
const costScale = 8

type Ledger struct{}

func New() *Ledger { return &Ledger{} }

// ApplyFill blends a signed execution into the account's position.
// signedQty is positive for a buy, negative for a sell. The repository
// must belong to the caller's unit of work so position updates commit
// together with the fills that caused them.
func (l *Ledger) ApplyFill(ctx context.Context, positions store.PositionRepository, accountID, symbol string, signedQty int64, price decimal.Decimal) error {
	if signedQty == 0 {
		return nil
	}

	pos, err := positions.Find(ctx, accountID, symbol)
	if err != nil {
		return fmt.Errorf("loading position failed: %w", err)
	}

	if pos == nil {
		return positions.Save(ctx, &model.PositionModel{
			AccountID:   accountID,
			Symbol:      symbol,
			Qty:         signedQty,
			AvgCost:     price,
			UpdatedAtNs: time.Now().UnixNano(),
		})
	}

	newQty := pos.Qty + signedQty
	if newQty == 0 {
		return positions.Delete(ctx, accountID, symbol)
	}

	switch {
	case sameSign(pos.Qty, signedQty):
		pos.AvgCost = blendCost(pos.AvgCost, pos.Qty, price, signedQty, newQty)
		pos.Qty = newQty
	case absInt64(signedQty) < absInt64(pos.Qty):
		// Partial close keeps the cost basis.
		pos.Qty = newQty
	default:
		// Side flip: basis resets to the crossing fill's price.
		pos.Qty = newQty
		pos.AvgCost = price
	}
	pos.UpdatedAtNs = time.Now().UnixNano()
	return positions.Save(ctx, pos)
}

// Position returns the current position, nil when flat.
func (l *Ledger) Position(ctx context.Context, positions store.PositionRepository, accountID, symbol string) (*types.Position, error) {
	pos, err := positions.Find(ctx, accountID, symbol)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, nil
	}
	return pos.ToDomain(), nil
}

// ListPositions returns all open positions of one account.
func (l *Ledger) ListPositions(ctx context.Context, positions store.PositionRepository, accountID string) ([]types.Position, error) {
	rows, err := positions.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	out := make([]types.Position, 0, len(rows))
	for i := range rows {
		out = append(out, *rows[i].ToDomain())
	}
	return out, nil
}

func blendCost(oldCost decimal.Decimal, oldQty int64, price decimal.Decimal, signedQty, newQty int64) decimal.Decimal {
	oldAbs := decimal.NewFromInt(absInt64(oldQty))
	addAbs := decimal.NewFromInt(absInt64(signedQty))
	newAbs := decimal.NewFromInt(absInt64(newQty))
	total := oldCost.Mul(oldAbs).Add(price.Mul(addAbs))
	return total.DivRound(newAbs, costScale)
}

func sameSign(a, b int64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
