package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// Users is the repository over the users table.
type Users struct {
	db *gorm.DB
}

// NewUsers migrates the users table and returns the repository.
func NewUsers(db *gorm.DB) (*Users, error) {
	if err := db.AutoMigrate(&model.User{}); err != nil {
		return nil, fmt.Errorf("migrate users: %w", err)
	}
	return &Users{db: db}, nil
}

func (s *Users) Create(ctx context.Context, u *model.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Users) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error
	return u, translate(err)
}

func (s *Users) Get(ctx context.Context, id uint) (model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).First(&u, id).Error
	return u, translate(err)
}

// List returns a page of users newest-first, optionally filtered by role.
func (s *Users) List(ctx context.Context, role string, page model.PageRequest) ([]model.User, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var users []model.User
	err := q.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset()).Find(&users).Error
	return users, total, translate(err)
}

// UpdateFullName renames a user, reporting ErrNotFound when no row matched.
func (s *Users) UpdateFullName(ctx context.Context, id uint, fullName string) error {
	res := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("full_name", fullName)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Users) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
