package sqlite

import (
	"context"
	"errors"
	"time"

	"tradex/internal/store/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// cashRepository implements the CashRepository interface.
type cashRepository struct {
	db *gorm.DB
}

// NewCashRepo creates a new cashRepository.
func NewCashRepo(db *gorm.DB) *cashRepository {
	return &cashRepository{db: db}
}

// Adjust applies a signed notional delta to the account balance,
// creating the account row on first touch.
func (r *cashRepository) Adjust(ctx context.Context, accountID string, delta decimal.Decimal) error {
	var acct model.CashAccountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&acct).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		acct = model.CashAccountModel{
			AccountID:   accountID,
			Balance:     delta,
			UpdatedAtNs: time.Now().UnixNano(),
		}
		return r.db.WithContext(ctx).Create(&acct).Error
	case err != nil:
		return err
	}
	acct.Balance = acct.Balance.Add(delta)
	acct.UpdatedAtNs = time.Now().UnixNano()
	return r.db.WithContext(ctx).Save(&acct).Error
}

// Balance returns the current balance, zero for unknown accounts.
func (r *cashRepository) Balance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	var acct model.CashAccountModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		First(&acct).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return acct.Balance, nil
}
