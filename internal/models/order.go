package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a finalized purchase created by checkout.
type Order struct {
	ID         string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID     string          `json:"user_id" gorm:"type:varchar(36);not null;index"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:decimal(12,2);not null"`
	Status     OrderStatus     `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Lines are loaded explicitly by the order repository.
	Lines []OrderLine `json:"lines,omitempty" gorm:"-"`
}

// OrderLine is a price snapshot of one cart entry consumed by checkout.
// UnitPrice and Price are frozen at checkout time and never follow later
// catalog changes.
type OrderLine struct {
	ID        string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OrderID   string          `json:"order_id" gorm:"type:varchar(36);not null;index"`
	Position  int             `json:"position" gorm:"not null"`
	ItemID    string          `json:"item_id" gorm:"type:varchar(36);not null;index"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"` // UnitPrice × Quantity
	CreatedAt time.Time       `json:"created_at"`
}
