package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"braintree-gateway/internal/config"
	"braintree-gateway/internal/model"

	"github.com/braintree-go/braintree-go"
	"github.com/shopspring/decimal"
)

// --- INTERFACE ---

type BraintreeClient interface {
	// GenerateClientToken returns a token for the hosted drop-in UI
	GenerateClientToken(ctx context.Context) (string, error)

	// Sale submits a transaction sale. Processor declines and validation
	// failures come back as a result with Success=false, not as an error.
	Sale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error)

	// FindTransaction fetches a transaction by its processor ID
	FindTransaction(ctx context.Context, transactionID string) (*model.Transaction, error)

	// SubmitForSettlement captures a previously authorized transaction
	SubmitForSettlement(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.Transaction, error)
}

// --- IMPLEMENTATION ---

type braintreeClientImpl struct {
	gateway *braintree.Braintree
}

// NewBraintreeClient initializes the Braintree SDK gateway for the active
// environment.
func NewBraintreeClient(cfg *config.Braintree) BraintreeClient {
	env := braintree.Sandbox
	if !cfg.TestMode {
		env = braintree.Production
	}

	creds := cfg.Active()
	return newBraintreeClient(braintree.New(
		env,
		creds.MerchantID,
		creds.PublicKey,
		creds.PrivateKey,
	))
}

func newBraintreeClient(gateway *braintree.Braintree) *braintreeClientImpl {
	return &braintreeClientImpl{
		gateway: gateway,
	}
}

// --- METHODS ---

func (c *braintreeClientImpl) GenerateClientToken(ctx context.Context) (string, error) {
	token, err := c.gateway.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("generate client token: %w", err)
	}
	return token, nil
}

func (c *braintreeClientImpl) Sale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error) {
	txReq := &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             toBraintreeDecimal(req.Amount),
		OrderId:            req.OrderID,
		PaymentMethodNonce: req.PaymentMethodNonce,
		MerchantAccountId:  req.MerchantAccountID,
		Customer: &braintree.CustomerRequest{
			FirstName: req.Customer.FirstName,
			LastName:  req.Customer.LastName,
			Company:   req.Customer.Company,
			Phone:     req.Customer.Phone,
			Email:     req.Customer.Email,
		},
		BillingAddress:  toBraintreeAddress(req.Billing),
		ShippingAddress: toBraintreeAddress(req.Shipping),
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: req.SubmitForSettlement,
		},
	}

	tx, err := c.gateway.Transaction().Create(ctx, txReq)
	if err != nil {
		var apiErr *braintree.BraintreeError
		if !errors.As(err, &apiErr) {
			return nil, fmt.Errorf("transaction sale failed: %w", err)
		}
		return failedResult(apiErr), nil
	}

	return &model.SaleResult{
		Success:     true,
		Transaction: fromBraintreeTransaction(tx),
	}, nil
}

func (c *braintreeClientImpl) FindTransaction(ctx context.Context, transactionID string) (*model.Transaction, error) {
	tx, err := c.gateway.Transaction().Find(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("find transaction %s: %w", transactionID, err)
	}
	return fromBraintreeTransaction(tx), nil
}

func (c *braintreeClientImpl) SubmitForSettlement(ctx context.Context, transactionID string, amount decimal.Decimal) (*model.Transaction, error) {
	tx, err := c.gateway.Transaction().SubmitForSettlement(ctx, transactionID, toBraintreeDecimal(amount))
	if err != nil {
		return nil, fmt.Errorf("submit transaction %s for settlement: %w", transactionID, err)
	}
	return fromBraintreeTransaction(tx), nil
}

// --- MAPPING ---

func failedResult(apiErr *braintree.BraintreeError) *model.SaleResult {
	result := &model.SaleResult{
		Success:     false,
		Transaction: fromBraintreeTransaction(apiErr.Transaction),
	}
	for _, fe := range apiErr.All() {
		result.Errors = append(result.Errors, model.ProcessorError{
			Field:   fe.Attribute,
			Code:    fe.Code,
			Message: fe.Message,
		})
	}
	// processor declines carry no validation errors, only a message
	if len(result.Errors) == 0 {
		result.Errors = append(result.Errors, model.ProcessorError{
			Code:    strconv.Itoa(apiErr.StatusCode()),
			Message: apiErr.ErrorMessage,
		})
	}
	return result
}

// responseCode renders a processor response code, leaving an absent code
// empty instead of "0".
func responseCode(code braintree.ProcessorResponseCode) string {
	if code == 0 {
		return ""
	}
	return strconv.Itoa(code.Int())
}

// Braintree expects NewDecimal(unscaled, scale). For 2 decimal places:
// "50.00" * 100 = 5000 -> braintree.NewDecimal(5000, 2)
func toBraintreeDecimal(amount decimal.Decimal) *braintree.Decimal {
	cents := amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return braintree.NewDecimal(cents, 2)
}

func fromBraintreeDecimal(d *braintree.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return decimal.New(d.Unscaled, -int32(d.Scale))
}

func toBraintreeAddress(a model.AddressInfo) *braintree.Address {
	return &braintree.Address{
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		Company:           a.Company,
		StreetAddress:     a.StreetAddress,
		ExtendedAddress:   a.ExtendedAddress,
		Locality:          a.Locality,
		Region:            a.Region,
		PostalCode:        a.PostalCode,
		CountryCodeAlpha2: a.CountryCodeAlpha2,
	}
}

func fromBraintreeAddress(a *braintree.Address) *model.AddressInfo {
	if a == nil {
		return nil
	}
	return &model.AddressInfo{
		FirstName:         a.FirstName,
		LastName:          a.LastName,
		Company:           a.Company,
		StreetAddress:     a.StreetAddress,
		ExtendedAddress:   a.ExtendedAddress,
		Locality:          a.Locality,
		Region:            a.Region,
		PostalCode:        a.PostalCode,
		CountryCodeAlpha2: a.CountryCodeAlpha2,
	}
}

func fromBraintreeCustomer(c *braintree.Customer) *model.CustomerInfo {
	if c == nil {
		return nil
	}
	return &model.CustomerInfo{
		ID:        c.Id,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Company:   c.Company,
		Phone:     c.Phone,
		Email:     c.Email,
	}
}

func fromBraintreeTransaction(tx *braintree.Transaction) *model.Transaction {
	if tx == nil {
		return nil
	}
	return &model.Transaction{
		ID:                           tx.Id,
		OrderID:                      tx.OrderId,
		Type:                         tx.Type,
		Amount:                       fromBraintreeDecimal(tx.Amount),
		Status:                       string(tx.Status),
		MerchantAccountID:            tx.MerchantAccountId,
		Customer:                     fromBraintreeCustomer(tx.Customer),
		Billing:                      fromBraintreeAddress(tx.BillingAddress),
		Shipping:                     fromBraintreeAddress(tx.ShippingAddress),
		AVSErrorResponseCode:         string(tx.AVSErrorResponseCode),
		AVSPostalCodeResponseCode:    string(tx.AVSPostalCodeResponseCode),
		AVSStreetAddressResponseCode: string(tx.AVSStreetAddressResponseCode),
		CVVResponseCode:              string(tx.CVVResponseCode),
		GatewayRejectionReason:       string(tx.GatewayRejectionReason),
		ProcessorAuthorizationCode:   tx.ProcessorAuthorizationCode,
		ProcessorResponseCode:        responseCode(tx.ProcessorResponseCode),
		ProcessorResponseText:        tx.ProcessorResponseText,
		ProcessorResponseType:        string(tx.ProcessorResponseType),
		PaymentInstrumentType:        string(tx.PaymentInstrumentType),
	}
}
