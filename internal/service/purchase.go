package service

import (
	"context"

	"braintree-gateway/internal/model"
	"braintree-gateway/internal/repository"

	"gorm.io/gorm"
)

// PurchaseHandler runs once per line item when an order is first paid. It
// shares the payment's database transaction.
type PurchaseHandler interface {
	HandlePurchase(ctx context.Context, tx *gorm.DB, order *model.Order, item *model.OrderItem, ipn *model.IPN) error
}

type inventoryPurchaseHandler struct {
	inventoryRepo repository.InventoryRepository
}

// NewInventoryPurchaseHandler grants purchased items to the buyer's inventory.
func NewInventoryPurchaseHandler(inventoryRepo repository.InventoryRepository) PurchaseHandler {
	return &inventoryPurchaseHandler{
		inventoryRepo: inventoryRepo,
	}
}

func (h *inventoryPurchaseHandler) HandlePurchase(ctx context.Context, tx *gorm.DB, order *model.Order, item *model.OrderItem, _ *model.IPN) error {
	return h.inventoryRepo.Upsert(ctx, tx, &model.UserInventory{
		UserID:    order.UID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	})
}
