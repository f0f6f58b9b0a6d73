package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
)

type Product struct {
	ID          string          `gorm:"primaryKey;size:64;not null"` // product sku
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"size:1024"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Physical    bool            `gorm:"not null;default:false"`
}

type Address struct {
	Name     string `gorm:"size:255"`
	Company  string `gorm:"size:255"`
	Address1 string `gorm:"size:255"`
	Address2 string `gorm:"size:255"`
	City     string `gorm:"size:128"`
	State    string `gorm:"size:128"`
	Postal   string `gorm:"size:32"`
	Country  string `gorm:"size:2"` // ISO-3166 alpha-2
	Phone    string `gorm:"size:64"`
}

type Order struct {
	OrderID    string          `gorm:"primaryKey;size:64;not null"`
	UID        string          `gorm:"size:64;index"` // buyer
	BuyerEmail string          `gorm:"size:255"`
	Status     OrderStatus     `gorm:"size:32;index;not null"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency   string          `gorm:"size:8;not null"`
	BillTo     Address         `gorm:"embedded;embeddedPrefix:billto_"`
	ShipTo     Address         `gorm:"embedded;embeddedPrefix:shipto_"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;references:OrderID"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasPhysical reports whether any line item needs shipping.
func (o *Order) HasPhysical() bool {
	for _, item := range o.Items {
		if item.Physical {
			return true
		}
	}
	return false
}

// HasInvalid reports whether the order cannot be checked out as is.
func (o *Order) HasInvalid() bool {
	if len(o.Items) == 0 {
		return true
	}
	for _, item := range o.Items {
		if item.Invalid || item.Quantity <= 0 {
			return true
		}
	}
	return false
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.order_id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string          `gorm:"size:64;index;not null"`
	Quantity  int32           `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Physical  bool            `gorm:"not null;default:false"`
	Invalid   bool            `gorm:"not null;default:false"` // e.g. product no longer available

	CreatedAt time.Time
}

// Payment is unique per processor reference ID.
type Payment struct {
	ID        uint            `gorm:"primaryKey"`
	RefID     string          `gorm:"size:128;uniqueIndex;not null"`
	OrderID   string          `gorm:"size:64;index;not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Gateway   string          `gorm:"size:32;not null"`
	Status    string          `gorm:"size:64"`
	Method    string          `gorm:"size:64"`
	Comment   string          `gorm:"size:255"`
	CreatedAt time.Time
}

// IPNLog rows are written once and never updated.
type IPNLog struct {
	ID        uint           `gorm:"primaryKey"`
	OrderID   string         `gorm:"size:64;index"`
	TxnID     string         `gorm:"size:128;index"`
	Gateway   string         `gorm:"size:32;not null"`
	Event     string         `gorm:"size:64"`
	Verified  bool           `gorm:"not null"`
	Data      datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time
}

func (IPNLog) TableName() string { return "ipn_log" }

type UserInventory struct {
	UserID    string `gorm:"primaryKey;size:64;"`
	ProductID string `gorm:"primaryKey;size:64;index;not null"`
	Quantity  int32  `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
