package repository

import (
	"context"

	"braintree-gateway/internal/model"

	"gorm.io/gorm"
)

// IPNRepository is append-only: there is no update or delete.
type IPNRepository interface {
	Create(ctx context.Context, entry *model.IPNLog) error
	ListByTxnID(ctx context.Context, txnID string) ([]*model.IPNLog, error)
}

type ipnRepoImpl struct {
	db *gorm.DB
}

func NewIPNRepository(db *gorm.DB) IPNRepository {
	return &ipnRepoImpl{db: db}
}

func (r *ipnRepoImpl) Create(ctx context.Context, entry *model.IPNLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *ipnRepoImpl) ListByTxnID(ctx context.Context, txnID string) ([]*model.IPNLog, error) {
	var entries []*model.IPNLog
	err := r.db.WithContext(ctx).
		Where("txn_id = ?", txnID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
