package sqlite

import (
	"context"
	"errors"

	"tradex/internal/store/model"
	"tradex/internal/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// orderRepository implements the OrderRepository interface.
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepo creates a new orderRepository.
func NewOrderRepo(db *gorm.DB) *orderRepository {
	return &orderRepository{db: db}
}

// Save saves or updates an order keyed by its UID. Only the fields a
// matching pass may legally change are updated on conflict; identity,
// raw request and creation time stay as first written.
func (r *orderRepository) Save(ctx context.Context, order *model.OrderModel) error {
	if order == nil {
		return errors.New("order cannot be nil")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "order_uid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"status", "filled_qty", "avg_fill_price", "updated_at_ns",
		}),
	}).Save(order).Error
}

// FindByUID finds an order by UID. Returns (nil, nil) when absent.
func (r *orderRepository) FindByUID(ctx context.Context, uid string) (*model.OrderModel, error) {
	var order model.OrderModel
	err := r.db.WithContext(ctx).Where("order_uid = ?", uid).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindResting returns the resting book side in price-time priority for
// an aggressor crossing it: resting SELLs come back cheapest first,
// resting BUYs highest first, created time ascending within a price.
// Orders without a limit price never count as liquidity.
func (r *orderRepository) FindResting(ctx context.Context, symbol string, side types.Side, priceLimit *decimal.Decimal) ([]model.OrderModel, error) {
	q := r.db.WithContext(ctx).
		Where("symbol = ? AND side = ?", symbol, string(side)).
		Where("status IN ?", []string{string(types.StatusWorking), string(types.StatusPartiallyFilled)}).
		Where("limit_price IS NOT NULL")

	if side == types.SideSell {
		if priceLimit != nil {
			q = q.Where("limit_price <= ?", *priceLimit)
		}
		q = q.Order("limit_price ASC, created_at_ns ASC, id ASC")
	} else {
		if priceLimit != nil {
			q = q.Where("limit_price >= ?", *priceLimit)
		}
		q = q.Order("limit_price DESC, created_at_ns ASC, id ASC")
	}

	var orders []model.OrderModel
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
