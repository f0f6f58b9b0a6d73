package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"braintree-gateway/internal/dto"
	"braintree-gateway/internal/lang"
	"braintree-gateway/internal/middleware"
	"braintree-gateway/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type BraintreeHandler struct {
	braintreeService service.BraintreeService
	orderService     service.OrderService
	strings          lang.Strings
	log              zerolog.Logger
}

func NewBraintreeHandler(braintreeService service.BraintreeService, orderService service.OrderService, strs lang.Strings, log zerolog.Logger) *BraintreeHandler {
	return &BraintreeHandler{
		braintreeService: braintreeService,
		orderService:     orderService,
		strings:          strs,
		log:              log,
	}
}

// Index is the storefront landing page. It shows a pending flash message and
// the thank-you block when a gateway redirected here after payment.
func (h *BraintreeHandler) Index(c echo.Context) error {
	page := indexPage{Message: middleware.PopFlash(c)}

	if c.QueryParam("thanks") == service.GatewayName {
		vars := h.braintreeService.Gateway().ThanksVars()
		page.Thanks = true
		page.ThanksTitle = h.strings.Get("thanks_title")
		page.GatewayName = vars["gateway_name"]
		page.GatewayURL = vars["gateway_url"]
	}

	return render(c, "index.html", page)
}

func (h *BraintreeHandler) CheckoutPage(c echo.Context) error {
	ctx := c.Request().Context()

	cart, err := h.orderService.Cart(ctx, c.Param("orderID"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	button, err := h.braintreeService.CheckoutButton(ctx, cart)
	if err != nil {
		h.log.Error().Err(err).Str("order_id", cart.OrderID).Msg("render checkout button")
		return echo.NewHTTPError(http.StatusBadGateway, "payment gateway unavailable")
	}

	return render(c, "checkout.html", checkoutPage{
		Scripts:    h.braintreeService.Scripts(),
		CheckoutJS: template.JS(h.braintreeService.Gateway().CheckoutJS(cart)),
		OrderID:    cart.OrderID,
		Amount:     cart.BalanceDue.StringFixed(2),
		Button:     button,
	})
}

// Confirm receives the drop-in form post and redirects the buyer.
func (h *BraintreeHandler) Confirm(c echo.Context) error {
	ctx := c.Request().Context()

	orderID := c.FormValue("order_id")
	if orderID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing order_id")
	}

	result, err := h.braintreeService.ConfirmOrder(ctx, orderID, c.FormValue("payment_method_nonce"))
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "order not found")
		}
		return err
	}

	if result.Message != "" {
		middleware.SetFlash(c, result.Message)
	}
	return c.Redirect(http.StatusFound, result.RedirectURL)
}

func (h *BraintreeHandler) GatewayConfig(c echo.Context) error {
	return c.JSON(http.StatusOK, h.braintreeService.Gateway().Describe())
}

func (h *BraintreeHandler) GetTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	tx, err := h.braintreeService.GetTransaction(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMissingTransactionID) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.log.Error().Err(err).Str("txn_id", c.Param("id")).Msg("fetch transaction")
		return echo.NewHTTPError(http.StatusBadGateway, "transaction lookup failed")
	}

	return c.JSON(http.StatusOK, tx)
}

func (h *BraintreeHandler) CaptureTransaction(c echo.Context) error {
	ctx := c.Request().Context()

	var req dto.CaptureRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid req body")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid amount")
	}

	transactionID := c.Param("id")
	captured, err := h.braintreeService.CaptureTransaction(ctx, transactionID, amount)
	if err != nil {
		if errors.Is(err, service.ErrMissingTransactionID) || errors.Is(err, service.ErrAmountTooSmall) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.log.Error().Err(err).Str("txn_id", transactionID).Msg("capture transaction")
		return echo.NewHTTPError(http.StatusBadGateway, "capture failed")
	}

	return c.JSON(http.StatusOK, &dto.CaptureResponse{
		TransactionID: transactionID,
		Captured:      captured,
	})
}

// IPNLog is an admin view of the IPN entries and payment for a transaction.
func (h *BraintreeHandler) IPNLog(c echo.Context) error {
	ctx := c.Request().Context()

	resp, err := h.braintreeService.IPNLog(ctx, c.Param("txnID"))
	if err != nil {
		if errors.Is(err, service.ErrMissingTransactionID) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func render(c echo.Context, name string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}
