package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusProcessing,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// orderTransitions is the set of allowed status edges. Completed and
// cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusPaid, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusPaid:       {OrderStatusProcessing, OrderStatusCompleted},
	OrderStatusProcessing: {OrderStatusCompleted},
}

// CanTransitionTo reports whether moving from s to next is an allowed edge.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Order is a purchase row in the orders table. TotalPrice is the product
// price at creation time multiplied by quantity and is never recomputed.
type Order struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UserID         uint            `gorm:"not null;index" json:"user_id"`
	ProductID      uint            `gorm:"not null" json:"product_id"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	TotalPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status         OrderStatus     `gorm:"size:20;not null;default:pending" json:"status"`
	PaymentMethod  string          `gorm:"size:50" json:"payment_method,omitempty"`
	PaymentStatus  string          `gorm:"size:20" json:"payment_status,omitempty"`
	IdempotencyKey *string         `gorm:"size:64;uniqueIndex" json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderWithProduct is an order enriched with catalog data for listings.
type OrderWithProduct struct {
	Order
	ProductName     string `json:"product_name"`
	ProductCategory string `json:"product_category"`
}
