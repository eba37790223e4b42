package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// PaymentFilter narrows a payment listing.
type PaymentFilter struct {
	Status model.PaymentStatus
}

// Payments is the repository over the payments table.
type Payments struct {
	db *gorm.DB
}

// NewPayments migrates the payments table and returns the repository.
func NewPayments(db *gorm.DB) (*Payments, error) {
	if err := db.AutoMigrate(&model.Payment{}); err != nil {
		return nil, fmt.Errorf("migrate payments: %w", err)
	}
	return &Payments{db: db}, nil
}

func (s *Payments) Create(ctx context.Context, p *model.Payment) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Payments) Get(ctx context.Context, id uint) (model.Payment, error) {
	var p model.Payment
	err := s.db.WithContext(ctx).First(&p, id).Error
	return p, translate(err)
}

// List returns a page of payments newest-first, optionally filtered by status.
func (s *Payments) List(ctx context.Context, f PaymentFilter, page model.PageRequest) ([]model.Payment, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Payment{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var payments []model.Payment
	err := q.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset()).Find(&payments).Error
	return payments, total, translate(err)
}

// ListByOrder returns payments referencing an order, newest-first.
func (s *Payments) ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error) {
	var payments []model.Payment
	err := s.db.WithContext(ctx).Where("order_id = ?", orderID).
		Order("created_at DESC").Find(&payments).Error
	return payments, translate(err)
}

// MarkCompleted records a successful verification.
func (s *Payments) MarkCompleted(ctx context.Context, id uint) error {
	now := time.Now()
	res := s.db.WithContext(ctx).Model(&model.Payment{}).Where("id = ?", id).
		Updates(map[string]any{
			"status":      model.PaymentStatusCompleted,
			"verified_at": &now,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
