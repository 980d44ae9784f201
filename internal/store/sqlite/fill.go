package sqlite

import (
	"context"
	"errors"

	"tradex/internal/store/model"

	"gorm.io/gorm"
)

// fillRepository implements the FillRepository interface.
type fillRepository struct {
	db *gorm.DB
}

// NewFillRepo creates a new fillRepository.
func NewFillRepo(db *gorm.DB) *fillRepository {
	return &fillRepository{db: db}
}

// Insert appends a fill. Fills are immutable; there is no update path.
func (r *fillRepository) Insert(ctx context.Context, fill *model.FillModel) error {
	if fill == nil {
		return errors.New("fill cannot be nil")
	}
	return r.db.WithContext(ctx).Create(fill).Error
}

// ListByOrder lists an order's fills in execution order.
func (r *fillRepository) ListByOrder(ctx context.Context, orderUID string) ([]model.FillModel, error) {
	var fills []model.FillModel
	if err := r.db.WithContext(ctx).
		Where("order_uid = ?", orderUID).
		Order("executed_at_ns ASC, id ASC").
		Find(&fills).Error; err != nil {
		return nil, err
	}
	return fills, nil
}
