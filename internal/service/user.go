package service

import (
	"context"

	"braintree-gateway/internal/model"
	"braintree-gateway/internal/repository"
)

type UserService interface {
	GetInventories(ctx context.Context, userID string) ([]*model.UserInventory, error)
}

type userServiceImpl struct {
	inventoryRepo repository.InventoryRepository
}

func NewUserService(
	inventoryRepo repository.InventoryRepository,
) UserService {
	return &userServiceImpl{
		inventoryRepo: inventoryRepo,
	}
}

func (s *userServiceImpl) GetInventories(ctx context.Context, userID string) ([]*model.UserInventory, error) {
	if userID == "" {
		return s.inventoryRepo.Get(ctx)
	}
	return s.inventoryRepo.GetByUser(ctx, userID)
}
