package sqlite

import (
	"context"
	"errors"
	"time"

	"tradex/internal/store/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// activityRepository implements the SymbolActivityRepository interface.
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepo creates a new activityRepository.
func NewActivityRepo(db *gorm.DB) *activityRepository {
	return &activityRepository{db: db}
}

// MarkTouched records that the symbol has contained at least one order.
// Only the first call per symbol writes; later calls are no-ops.
func (r *activityRepository) MarkTouched(ctx context.Context, symbol string) error {
	rec := &model.SymbolActivityModel{
		Symbol:       symbol,
		FirstOrderNs: time.Now().UnixNano(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(rec).Error
}

// Touched reports whether any order was ever recorded for the symbol.
func (r *activityRepository) Touched(ctx context.Context, symbol string) (bool, error) {
	var rec model.SymbolActivityModel
	err := r.db.WithContext(ctx).Where("symbol = ?", symbol).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
