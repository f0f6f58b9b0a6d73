package repository

import (
	"context"

	"braintree-gateway/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository interface {
	// CreateIfAbsent inserts the payment unless one with the same RefID
	// exists. It reports whether a row was inserted.
	CreateIfAbsent(ctx context.Context, tx *gorm.DB, payment *model.Payment) (bool, error)
	FindByRefID(ctx context.Context, refID string) (*model.Payment, error)
	TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error)
}

type paymentRepoImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepoImpl{
		db: db,
	}
}

func (r *paymentRepoImpl) CreateIfAbsent(ctx context.Context, tx *gorm.DB, payment *model.Payment) (bool, error) {
	result := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ref_id"}},
		DoNothing: true,
	}).Create(payment)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *paymentRepoImpl) FindByRefID(ctx context.Context, refID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.WithContext(ctx).
		Where("ref_id = ?", refID).
		First(&payment).Error

	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *paymentRepoImpl) TotalPaid(ctx context.Context, orderID string) (decimal.Decimal, error) {
	var payments []*model.Payment
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&payments).Error
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, p := range payments {
		total = total.Add(p.Amount)
	}
	return total, nil
}
