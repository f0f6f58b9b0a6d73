package server

import (
	"context"
	"net/http"

	"braintree-gateway/internal/handler"
	"braintree-gateway/internal/lang"
	buyer "braintree-gateway/internal/middleware"
	"braintree-gateway/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	echo             *echo.Echo
	braintreeHandler *handler.BraintreeHandler
	orderHandler     *handler.OrderHandler
	userHandler      *handler.UserHandler
}

func NewServer(
	braintreeService service.BraintreeService,
	orderService service.OrderService,
	userService service.UserService,
	strs lang.Strings,
	log zerolog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			if v.Error != nil {
				event = log.Error().Err(v.Error)
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(buyer.BuyerMiddleware())

	s := &Server{
		echo:             e,
		braintreeHandler: handler.NewBraintreeHandler(braintreeService, orderService, strs, log),
		orderHandler:     handler.NewOrderHandler(orderService),
		userHandler:      handler.NewUserHandler(userService),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// -------- storefront --------
	s.echo.GET("/", s.braintreeHandler.Index)
	s.echo.GET("/checkout/:orderID", s.braintreeHandler.CheckoutPage)
	s.echo.POST("/confirm", s.braintreeHandler.Confirm)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api.GET("/inventories", s.userHandler.GetUsersInventory)
	api.POST("/orders", s.orderHandler.CreateOrder)

	// -------- braintree --------
	braintree := api.Group("/braintree")
	braintree.GET("/config", s.braintreeHandler.GatewayConfig)
	braintree.GET("/transactions/:id", s.braintreeHandler.GetTransaction)
	braintree.POST("/transactions/:id/capture", s.braintreeHandler.CaptureTransaction)
	braintree.GET("/ipn/:txnID", s.braintreeHandler.IPNLog)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
