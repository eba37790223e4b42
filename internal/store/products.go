package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// ProductFilter narrows a catalog listing.
type ProductFilter struct {
	Category string
	Search   string
}

// Products is the repository over the products table.
type Products struct {
	db *gorm.DB
}

// NewProducts migrates the products table, seeds the sample catalog when the
// table is empty, and returns the repository.
func NewProducts(db *gorm.DB) (*Products, error) {
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return nil, fmt.Errorf("migrate products: %w", err)
	}
	s := &Products{db: db}
	if err := s.seed(context.Background()); err != nil {
		return nil, fmt.Errorf("seed products: %w", err)
	}
	return s, nil
}

func (s *Products) seed(ctx context.Context) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(seedCatalog()).Error
}

func seedCatalog() []model.Product {
	price := func(n int64) decimal.Decimal { return decimal.NewFromInt(n) }
	placeholder := "https://via.placeholder.com/300"
	return []model.Product{
		{
			Name:        "Adobe Creative Cloud",
			Description: "Suite lengkap aplikasi kreatif untuk desain, video, dan web",
			Category:    "Design",
			Price:       price(699000),
			Features:    model.FeatureList{"Photoshop", "Illustrator", "Premiere Pro", "After Effects"},
			ImageURL:    placeholder,
		},
		{
			Name:        "Microsoft Office 365",
			Description: "Aplikasi produktivitas untuk bisnis dan pribadi",
			Category:    "Productivity",
			Price:       price(129000),
			Features:    model.FeatureList{"Word", "Excel", "PowerPoint", "Outlook", "OneDrive 1TB"},
			ImageURL:    placeholder,
		},
		{
			Name:        "Spotify Premium",
			Description: "Streaming musik tanpa iklan dengan kualitas tinggi",
			Category:    "Entertainment",
			Price:       price(54900),
			Features:    model.FeatureList{"Ad-free", "Offline download", "High quality audio"},
			ImageURL:    placeholder,
		},
		{
			Name:        "Netflix Premium",
			Description: "Streaming film dan series dengan kualitas 4K",
			Category:    "Entertainment",
			Price:       price(186000),
			Features:    model.FeatureList{"4K streaming", "4 screens", "Download content"},
			ImageURL:    placeholder,
		},
		{
			Name:        "AutoCAD",
			Description: "Software CAD profesional untuk desain 2D dan 3D",
			Category:    "Design",
			Price:       price(2850000),
			Features:    model.FeatureList{"2D drafting", "3D modeling", "Cloud collaboration"},
			ImageURL:    placeholder,
		},
	}
}

func (s *Products) Create(ctx context.Context, p *model.Product) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Products) Get(ctx context.Context, id uint) (model.Product, error) {
	var p model.Product
	err := s.db.WithContext(ctx).First(&p, id).Error
	return p, translate(err)
}

// List returns a page of products newest-first. Category filters by
// equality, Search by substring over name and description.
func (s *Products) List(ctx context.Context, f ProductFilter, page model.PageRequest) ([]model.Product, int64, error) {
	q := s.db.WithContext(ctx).Model(&model.Product{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}
	var products []model.Product
	err := q.Order("created_at DESC").Limit(page.Limit).Offset(page.Offset()).Find(&products).Error
	return products, total, translate(err)
}

// Update overwrites the catalog fields of an existing product.
func (s *Products) Update(ctx context.Context, p *model.Product) error {
	res := s.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).
		Updates(map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"category":    p.Category,
			"price":       p.Price,
			"features":    p.Features,
			"image_url":   p.ImageURL,
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Products) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
