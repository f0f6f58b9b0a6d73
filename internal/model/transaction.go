package model

import "github.com/shopspring/decimal"

// SaleRequest is the processor-neutral form of a Braintree transaction sale.
type SaleRequest struct {
	Amount              decimal.Decimal
	OrderID             string
	PaymentMethodNonce  string
	MerchantAccountID   string // empty means the processor default
	Customer            CustomerInfo
	Billing             AddressInfo
	Shipping            AddressInfo
	SubmitForSettlement bool
}

type CustomerInfo struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
}

type AddressInfo struct {
	FirstName         string `json:"firstName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	Company           string `json:"company,omitempty"`
	StreetAddress     string `json:"streetAddress,omitempty"`
	ExtendedAddress   string `json:"extendedAddress,omitempty"`
	Locality          string `json:"locality,omitempty"`
	Region            string `json:"region,omitempty"`
	PostalCode        string `json:"postalCode,omitempty"`
	CountryCodeAlpha2 string `json:"countryCodeAlpha2,omitempty"`
}

// Transaction is a snapshot of a processor transaction.
type Transaction struct {
	ID                           string          `json:"id"`
	OrderID                      string          `json:"order_id"`
	Type                         string          `json:"type"`
	Amount                       decimal.Decimal `json:"amount"`
	Status                       string          `json:"status"`
	MerchantAccountID            string          `json:"merchantAccountId,omitempty"`
	Customer                     *CustomerInfo   `json:"customer,omitempty"`
	Billing                      *AddressInfo    `json:"billing,omitempty"`
	Shipping                     *AddressInfo    `json:"shipping,omitempty"`
	AVSErrorResponseCode         string          `json:"avsErrorResponseCode,omitempty"`
	AVSPostalCodeResponseCode    string          `json:"avsPostalCodeResponseCode,omitempty"`
	AVSStreetAddressResponseCode string          `json:"avsStreetAddressResponseCode,omitempty"`
	CVVResponseCode              string          `json:"cvvResponseCode,omitempty"`
	GatewayRejectionReason       string          `json:"gatewayRejectionReason,omitempty"`
	ProcessorAuthorizationCode   string          `json:"processorAuthorizationCode,omitempty"`
	ProcessorResponseCode        string          `json:"processorResponseCode,omitempty"`
	ProcessorResponseText        string          `json:"processorResponseText,omitempty"`
	ProcessorResponseType        string          `json:"processorResponseType,omitempty"`
	PaymentInstrumentType        string          `json:"paymentInstrumentType,omitempty"`
}

type ProcessorError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SaleResult mirrors the processor's result object: a success flag, the
// transaction if one was created, and the structured validation errors.
type SaleResult struct {
	Success     bool
	Transaction *Transaction
	Errors      []ProcessorError
}

// IPN is the notification record built from a completed sale.
type IPN struct {
	TxnID    string            `json:"txn_id"`
	Event    string            `json:"event"`
	PmtGross decimal.Decimal   `json:"pmt_gross"`
	GwName   string            `json:"gw_name"`
	UID      string            `json:"uid"`
	SQLDate  string            `json:"sql_date"`
	Custom   map[string]string `json:"custom"`
	Data     *Transaction      `json:"data"`
}

// Cart is the checkout view of an order.
type Cart struct {
	OrderID    string
	BalanceDue decimal.Decimal
	Invalid    bool
}
