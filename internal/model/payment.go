package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment. A payment transitions
// to completed at most once and has no failure or refund state.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
)

// PaymentMethods is the set of accepted payment method names.
var PaymentMethods = map[string]bool{
	"credit_card":     true,
	"bank_transfer":   true,
	"e-wallet":        true,
	"virtual_account": true,
}

// Payment is a payment row referencing an order. PaymentReference is the
// server-generated shared secret checked at verification time.
type Payment struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	UserID           uint            `gorm:"not null;index" json:"user_id"`
	OrderID          uint            `gorm:"not null;index" json:"order_id"`
	Amount           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod    string          `gorm:"size:50;not null" json:"payment_method"`
	PaymentReference string          `gorm:"size:64;uniqueIndex;not null" json:"payment_reference"`
	Status           PaymentStatus   `gorm:"size:20;not null;default:pending" json:"status"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
