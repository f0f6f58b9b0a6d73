package handler

import (
	"net/http"

	"braintree-gateway/internal/dto"
	"braintree-gateway/internal/middleware"
	"braintree-gateway/internal/service"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

func (h *OrderHandler) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	order, err := h.orderService.CreateOrder(ctx, middleware.UserID(c), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, &dto.CreateOrderResponse{
		OrderID:     order.OrderID,
		Total:       order.Total.StringFixed(2),
		CheckoutURL: "/checkout/" + order.OrderID,
	})
}
