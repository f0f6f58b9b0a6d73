package service

import (
	"context"
	"errors"
	"fmt"

	"braintree-gateway/internal/dto"
	"braintree-gateway/internal/model"
	"braintree-gateway/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	Cart(ctx context.Context, orderID string) (*model.Cart, error)
}

type orderServiceImpl struct {
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
}

func NewOrderService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
) OrderService {
	return &orderServiceImpl{
		productRepo: productRepo,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
	}
}

func (s *orderServiceImpl) CreateOrder(ctx context.Context, userID string, req *dto.CreateOrderRequest) (*model.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order has no items")
	}

	productIDs := make([]string, len(req.Items))
	itemQuantityMap := make(map[string]int32)
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("item quantity must be positive")
		}
		productIDs[i] = item.Sku
		itemQuantityMap[item.Sku] += item.Quantity
	}

	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("get many products by item ids: %w", err)
	}

	if len(products) != len(itemQuantityMap) {
		return nil, fmt.Errorf("some products not found")
	}

	order := &model.Order{
		OrderID:    uuid.NewString(),
		UID:        userID,
		BuyerEmail: req.Email,
		Status:     model.OrderStatusPending,
		Currency:   "USD",
		BillTo:     toAddress(req.BillTo),
		ShipTo:     toAddress(req.ShipTo),
	}

	total := decimal.Zero
	for _, product := range products {
		quantity := itemQuantityMap[product.ID]
		total = total.Add(product.Price.Mul(decimal.NewFromInt32(quantity)))

		order.Items = append(order.Items, model.OrderItem{
			ProductID: product.ID,
			Quantity:  quantity,
			UnitPrice: product.Price,
			Physical:  product.Physical,
		})
	}
	order.Total = total

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order in db: %w", err)
	}

	return order, nil
}

func (s *orderServiceImpl) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *orderServiceImpl) Cart(ctx context.Context, orderID string) (*model.Cart, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	due, err := balanceDue(ctx, s.paymentRepo, order)
	if err != nil {
		return nil, err
	}

	return &model.Cart{
		OrderID:    order.OrderID,
		BalanceDue: due,
		Invalid:    order.HasInvalid(),
	}, nil
}

func toAddress(a dto.Address) model.Address {
	return model.Address{
		Name:     a.Name,
		Company:  a.Company,
		Address1: a.Address1,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Postal:   a.Postal,
		Country:  a.Country,
		Phone:    a.Phone,
	}
}
