package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"sync"
	"time"

	"braintree-gateway/internal/client"
	"braintree-gateway/internal/dto"
	"braintree-gateway/internal/lang"
	"braintree-gateway/internal/model"
	"braintree-gateway/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMissingTransactionID = errors.New("missing transaction id")
	ErrAmountTooSmall       = errors.New("amount must be at least 0.01")
	ErrOrderNotFound        = errors.New("order not found")
)

var minCaptureAmount = decimal.New(1, -2)

type BraintreeService interface {
	Gateway() *Gateway
	Scripts() []string
	CheckoutButton(ctx context.Context, cart *model.Cart) (template.HTML, error)
	ConfirmOrder(ctx context.Context, orderID, nonce string) (*dto.ConfirmResult, error)
	ProcessOrder(ctx context.Context, order *model.Order, ipn *model.IPN) (bool, error)
	GetTransaction(ctx context.Context, transactionID string) (*model.Transaction, error)
	CaptureTransaction(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error)
	IPNLog(ctx context.Context, transactionID string) (*dto.IPNLogResponse, error)
}

type braintreeServiceImpl struct {
	db              *gorm.DB
	gateway         *Gateway
	braintreeClient client.BraintreeClient
	orderRepo       repository.OrderRepository
	paymentRepo     repository.PaymentRepository
	ipnRepo         repository.IPNRepository
	purchase        PurchaseHandler
	scripts         *ScriptRegistry
	scriptsOnce     sync.Once
	strings         lang.Strings
	log             zerolog.Logger
	now             func() time.Time
}

func NewBraintreeService(
	db *gorm.DB,
	gateway *Gateway,
	braintreeClient client.BraintreeClient,
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	ipnRepo repository.IPNRepository,
	purchase PurchaseHandler,
	scripts *ScriptRegistry,
	strs lang.Strings,
	log zerolog.Logger,
) BraintreeService {
	return &braintreeServiceImpl{
		db:              db,
		gateway:         gateway,
		braintreeClient: braintreeClient,
		orderRepo:       orderRepo,
		paymentRepo:     paymentRepo,
		ipnRepo:         ipnRepo,
		purchase:        purchase,
		scripts:         scripts,
		strings:         strs,
		log:             log.With().Str("gateway", GatewayName).Logger(),
		now:             time.Now,
	}
}

func (s *braintreeServiceImpl) Gateway() *Gateway {
	return s.gateway
}

func (s *braintreeServiceImpl) Scripts() []string {
	return s.scripts.Scripts()
}

// ConfirmOrder charges the posted nonce for the order's balance due. Every
// failure, whatever the cause, sends the buyer home with the same payment
// error message; details go to the log only.
func (s *braintreeServiceImpl) ConfirmOrder(ctx context.Context, orderID, nonce string) (*dto.ConfirmResult, error) {
	order, err := s.orderRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order %s: %w", orderID, err)
	}

	amount, err := balanceDue(ctx, s.paymentRepo, order)
	if err != nil {
		return nil, err
	}

	result, err := s.braintreeClient.Sale(ctx, s.saleRequest(order, amount, nonce))
	if err != nil {
		s.log.Error().Err(err).Str("order_id", order.OrderID).Msg("braintree sale request failed")
		return s.paymentError(), nil
	}

	// A transaction returned alongside a failed result is a decline, not a
	// sale: it is logged but never turned into a payment.
	if !result.Success || result.Transaction == nil {
		for _, e := range result.Errors {
			s.log.Error().
				Str("order_id", order.OrderID).
				Str("code", e.Code).
				Str("field", e.Field).
				Str("message", e.Message).
				Msg("Braintree Error")
		}
		if result.Transaction != nil {
			if err := s.writeIPN(ctx, order, s.newIPN(order, result.Transaction), false); err != nil {
				return nil, err
			}
		}
		return s.paymentError(), nil
	}

	ipn := s.newIPN(order, result.Transaction)
	if ipn.PmtGross.LessThan(amount) {
		s.log.Warn().
			Str("order_id", order.OrderID).
			Str("txn_id", ipn.TxnID).
			Str("amount", ipn.PmtGross.String()).
			Str("due", amount.String()).
			Msg("transaction amount below balance due")
		return s.paymentError(), nil
	}

	created, err := s.ProcessOrder(ctx, order, ipn)
	if err != nil {
		return nil, err
	}
	if !created {
		s.log.Warn().Str("order_id", order.OrderID).Str("txn_id", ipn.TxnID).Msg("transaction already processed")
		return s.paymentError(), nil
	}

	return &dto.ConfirmResult{RedirectURL: s.gateway.ThanksURL()}, nil
}

// ProcessOrder records the IPN and, the first time a transaction ID is seen,
// the payment, purchase hooks and order status. It reports whether a payment
// was created.
func (s *braintreeServiceImpl) ProcessOrder(ctx context.Context, order *model.Order, ipn *model.IPN) (bool, error) {
	if err := s.writeIPN(ctx, order, ipn, true); err != nil {
		return false, err
	}

	method := ""
	status := ""
	if ipn.Data != nil {
		method = ipn.Data.PaymentInstrumentType
		status = ipn.Data.Status
	}

	newStatus := model.OrderStatusShipped
	if order.HasPhysical() {
		newStatus = model.OrderStatusProcessing
	}

	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		created, err = s.paymentRepo.CreateIfAbsent(ctx, tx, &model.Payment{
			RefID:   ipn.TxnID,
			OrderID: order.OrderID,
			Amount:  ipn.PmtGross,
			Gateway: GatewayName,
			Status:  status,
			Method:  method,
			Comment: method + " " + ipn.TxnID,
		})
		if err != nil {
			return fmt.Errorf("store payment: %w", err)
		}
		if !created {
			return nil
		}

		for i := range order.Items {
			if err := s.purchase.HandlePurchase(ctx, tx, order, &order.Items[i], ipn); err != nil {
				return fmt.Errorf("handle purchase of %s: %w", order.Items[i].ProductID, err)
			}
		}

		return s.orderRepo.UpdateStatus(ctx, tx, order.OrderID, newStatus)
	})
	if err != nil {
		return false, fmt.Errorf("process order %s: %w", order.OrderID, err)
	}

	if created {
		order.Status = newStatus
		s.log.Info().
			Str("order_id", order.OrderID).
			Str("txn_id", ipn.TxnID).
			Str("status", string(newStatus)).
			Msg("payment recorded")
	}
	return created, nil
}

func (s *braintreeServiceImpl) GetTransaction(ctx context.Context, transactionID string) (*model.Transaction, error) {
	if transactionID == "" {
		return nil, ErrMissingTransactionID
	}
	return s.braintreeClient.FindTransaction(ctx, transactionID)
}

// CaptureTransaction settles an authorized transaction. It succeeds only when
// the processor reports exactly the requested amount.
func (s *braintreeServiceImpl) CaptureTransaction(ctx context.Context, transactionID string, amount decimal.Decimal) (bool, error) {
	if transactionID == "" {
		return false, ErrMissingTransactionID
	}
	if amount.LessThan(minCaptureAmount) {
		return false, ErrAmountTooSmall
	}

	tx, err := s.braintreeClient.SubmitForSettlement(ctx, transactionID, amount)
	if err != nil {
		return false, err
	}
	return tx.Amount.Equal(amount), nil
}

// IPNLog lists the IPN entries recorded for a transaction, oldest first, and
// the payment they produced if any.
func (s *braintreeServiceImpl) IPNLog(ctx context.Context, transactionID string) (*dto.IPNLogResponse, error) {
	if transactionID == "" {
		return nil, ErrMissingTransactionID
	}

	entries, err := s.ipnRepo.ListByTxnID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list ipn log for %s: %w", transactionID, err)
	}

	resp := &dto.IPNLogResponse{
		TxnID:   transactionID,
		Entries: make([]dto.IPNEntry, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, dto.IPNEntry{
			ID:        e.ID,
			OrderID:   e.OrderID,
			Event:     e.Event,
			Verified:  e.Verified,
			Vars:      s.gateway.IPNLogVars(e.Data),
			Data:      json.RawMessage(e.Data),
			CreatedAt: e.CreatedAt,
		})
	}

	payment, err := s.paymentRepo.FindByRefID(ctx, transactionID)
	switch {
	case err == nil:
		resp.Payment = &dto.PaymentView{
			RefID:   payment.RefID,
			OrderID: payment.OrderID,
			Amount:  payment.Amount.StringFixed(2),
			Status:  payment.Status,
			Method:  payment.Method,
			Comment: payment.Comment,
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("find payment %s: %w", transactionID, err)
	}

	return resp, nil
}

func (s *braintreeServiceImpl) saleRequest(order *model.Order, amount decimal.Decimal, nonce string) *model.SaleRequest {
	billFirst, billLast := splitName(order.BillTo.Name)

	return &model.SaleRequest{
		Amount:             amount,
		OrderID:            order.OrderID,
		PaymentMethodNonce: nonce,
		MerchantAccountID:  s.gateway.MerchantAccountID(),
		Customer: model.CustomerInfo{
			FirstName: billFirst,
			LastName:  billLast,
			Company:   order.BillTo.Company,
			Phone:     order.BillTo.Phone,
			Email:     order.BuyerEmail,
		},
		Billing:             addressInfo(order.BillTo),
		Shipping:            addressInfo(order.ShipTo),
		SubmitForSettlement: true,
	}
}

func addressInfo(a model.Address) model.AddressInfo {
	first, last := splitName(a.Name)
	return model.AddressInfo{
		FirstName:         first,
		LastName:          last,
		Company:           a.Company,
		StreetAddress:     a.Address1,
		ExtendedAddress:   a.Address2,
		Locality:          a.City,
		Region:            a.State,
		PostalCode:        a.Postal,
		CountryCodeAlpha2: a.Country,
	}
}

func (s *braintreeServiceImpl) newIPN(order *model.Order, tx *model.Transaction) *model.IPN {
	return &model.IPN{
		TxnID:    tx.ID,
		Event:    tx.Type,
		PmtGross: tx.Amount,
		GwName:   GatewayName,
		UID:      order.UID,
		SQLDate:  s.now().UTC().Format("2006-01-02 15:04:05"),
		Custom:   map[string]string{"uid": order.UID},
		Data:     tx,
	}
}

func (s *braintreeServiceImpl) writeIPN(ctx context.Context, order *model.Order, ipn *model.IPN, verified bool) error {
	data, err := json.Marshal(ipn)
	if err != nil {
		return fmt.Errorf("encode ipn: %w", err)
	}

	err = s.ipnRepo.Create(ctx, &model.IPNLog{
		OrderID:  order.OrderID,
		TxnID:    ipn.TxnID,
		Gateway:  GatewayName,
		Event:    ipn.Event,
		Verified: verified,
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("write ipn log: %w", err)
	}
	return nil
}

func (s *braintreeServiceImpl) paymentError() *dto.ConfirmResult {
	return &dto.ConfirmResult{
		RedirectURL: s.gateway.HomeURL(),
		Message:     s.strings.Get("pmt_error"),
	}
}

// balanceDue is the order total less recorded payments, never negative.
func balanceDue(ctx context.Context, payments repository.PaymentRepository, order *model.Order) (decimal.Decimal, error) {
	paid, err := payments.TotalPaid(ctx, order.OrderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total paid for order %s: %w", order.OrderID, err)
	}
	due := order.Total.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero, nil
	}
	return due, nil
}
