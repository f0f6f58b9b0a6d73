package repository

import (
	"context"
	"time"

	"braintree-gateway/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository interface {
	Upsert(ctx context.Context, tx *gorm.DB, inventory *model.UserInventory) error
	Get(ctx context.Context) ([]*model.UserInventory, error)
	GetByUser(ctx context.Context, userID string) ([]*model.UserInventory, error)
}

type inventoryRepoImpl struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepoImpl{
		db: db,
	}
}

// Upsert adds the quantity to an existing row for the same user and product.
func (r *inventoryRepoImpl) Upsert(ctx context.Context, tx *gorm.DB, inventory *model.UserInventory) error {
	return tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("user_inventories.quantity + ?", inventory.Quantity),
			"updated_at": time.Now(),
		}),
	}).Create(inventory).Error
}

func (r *inventoryRepoImpl) Get(ctx context.Context) ([]*model.UserInventory, error) {
	var inventories []*model.UserInventory

	err := r.db.WithContext(ctx).Find(&inventories).Error
	if err != nil {
		return nil, err
	}

	return inventories, nil
}

func (r *inventoryRepoImpl) GetByUser(ctx context.Context, userID string) ([]*model.UserInventory, error) {
	var inventories []*model.UserInventory

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("product_id").
		Find(&inventories).Error
	if err != nil {
		return nil, err
	}

	return inventories, nil
}
