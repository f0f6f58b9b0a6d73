package dto

import (
	"encoding/json"
	"time"
)

type Item struct {
	Sku      string `json:"sku"`
	Quantity int32  `json:"quantity"`
}

type Address struct {
	Name     string `json:"name"`
	Company  string `json:"company"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	State    string `json:"state"`
	Postal   string `json:"postal"`
	Country  string `json:"country"`
	Phone    string `json:"phone"`
}

type CreateOrderRequest struct {
	Email  string  `json:"email"`
	BillTo Address `json:"billto"`
	ShipTo Address `json:"shipto"`
	Items  []*Item `json:"items"`
}

type CreateOrderResponse struct {
	OrderID     string `json:"order_id"`
	Total       string `json:"total"`
	CheckoutURL string `json:"checkout_url"`
}

// ConfirmResult tells the handler where to send the buyer and which flash
// message, if any, to show.
type ConfirmResult struct {
	RedirectURL string
	Message     string
}

type ConfigField struct {
	Scope string `json:"scope"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
	Help  string `json:"help,omitempty"`
}

type GatewayConfigResponse struct {
	Name         string          `json:"name"`
	Provider     string          `json:"provider"`
	Description  string          `json:"description"`
	Version      string          `json:"version"`
	Environment  string          `json:"environment"`
	Valid        bool            `json:"valid"`
	Capabilities map[string]bool `json:"capabilities"`
	Fields       []ConfigField   `json:"fields"`
}

type CaptureRequest struct {
	Amount string `json:"amount"`
}

type CaptureResponse struct {
	TransactionID string `json:"transaction_id"`
	Captured      bool   `json:"captured"`
}

type IPNEntry struct {
	ID        uint              `json:"id"`
	OrderID   string            `json:"order_id"`
	Event     string            `json:"event"`
	Verified  bool              `json:"verified"`
	Vars      map[string]string `json:"vars"`
	Data      json.RawMessage   `json:"data"`
	CreatedAt time.Time         `json:"created_at"`
}

type PaymentView struct {
	RefID   string `json:"ref_id"`
	OrderID string `json:"order_id"`
	Amount  string `json:"amount"`
	Status  string `json:"status"`
	Method  string `json:"method"`
	Comment string `json:"comment"`
}

// IPNLogResponse is the admin view of everything recorded for one
// processor transaction.
type IPNLogResponse struct {
	TxnID   string       `json:"txn_id"`
	Entries []IPNEntry   `json:"entries"`
	Payment *PaymentView `json:"payment,omitempty"`
}
