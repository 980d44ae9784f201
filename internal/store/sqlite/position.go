package sqlite

import (
	"context"
	"errors"

	"tradex/internal/store/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// positionRepository implements the PositionRepository interface.
type positionRepository struct {
	db *gorm.DB
}

// NewPositionRepo creates a new positionRepository.
func NewPositionRepo(db *gorm.DB) *positionRepository {
	return &positionRepository{db: db}
}

// Find looks up the position for (account, symbol). Returns (nil, nil)
// when the account holds nothing in the symbol.
func (r *positionRepository) Find(ctx context.Context, accountID, symbol string) (*model.PositionModel, error) {
	var pos model.PositionModel
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND symbol = ?", accountID, symbol).
		First(&pos).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

// Save upserts a position keyed by (account, symbol).
func (r *positionRepository) Save(ctx context.Context, pos *model.PositionModel) error {
	if pos == nil {
		return errors.New("position cannot be nil")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "account_id"}, {Name: "symbol"}},
		UpdateAll: true,
	}).Save(pos).Error
}

// Delete removes a fully closed position.
func (r *positionRepository) Delete(ctx context.Context, accountID, symbol string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND symbol = ?", accountID, symbol).
		Delete(&model.PositionModel{}).Error
}

// ListByAccount lists all open positions for one account.
func (r *positionRepository) ListByAccount(ctx context.Context, accountID string) ([]model.PositionModel, error) {
	var positions []model.PositionModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("symbol ASC").
		Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}
