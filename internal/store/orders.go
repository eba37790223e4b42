package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status model.OrderStatus
}

// Orders is the repository over the orders table.
type Orders struct {
	db *gorm.DB
}

// NewOrders migrates the orders table and returns the repository.
func NewOrders(db *gorm.DB) (*Orders, error) {
	if err := db.AutoMigrate(&model.Order{}); err != nil {
		return nil, fmt.Errorf("migrate orders: %w", err)
	}
	return &Orders{db: db}, nil
}

func (s *Orders) Create(ctx context.Context, o *model.Order) error {
	return translate(s.db.WithContext(ctx).Create(o).Error)
}

func (s *Orders) Get(ctx context.Context, id uint) (model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).First(&o, id).Error
	return o, translate(err)
}

// GetByIdempotencyKey looks up a previously created order by its key.
func (s *Orders) GetByIdempotencyKey(ctx context.Context, key string) (model.Order, error) {
	var o model.Order
	err := s.db.WithContext(ctx).Where("idempotency_key = ?", key).First(&o).Error
	return o, translate(err)
}

// List returns a page of orders newest-first, optionally filtered by status.
func (s *Orders) List(ctx context.Context, f OrderFilter, page model.PageRequest) ([]model.Order, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Order{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var orders []model.Order
	err := q.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset()).Find(&orders).Error
	return orders, total, translate(err)
}

// ListByUser returns all orders belonging to a user, newest-first.
func (s *Orders) ListByUser(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&orders).Error
	return orders, translate(err)
}

// UpdateStatus sets the status unconditionally; edge validation happens in
// the handler against the transition table.
func (s *Orders) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	res := s.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Cancel soft-cancels an order. The status predicate makes the pending-only
// rule atomic; a non-pending order reports ErrNotFound.
func (s *Orders) Cancel(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.OrderStatusPending).
		Update("status", model.OrderStatusCancelled)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
