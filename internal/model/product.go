package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FeatureList is an ordered list of product feature strings stored in a
// MySQL JSON column.
type FeatureList []string

// Value serializes the list as JSON for the driver.
func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		return nil, nil
	}
	return json.Marshal(f)
}

// Scan decodes the JSON column back into the list.
func (f *FeatureList) Scan(src any) error {
	if src == nil {
		*f = nil
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("features: unsupported column type %T", src)
	}
	return json.Unmarshal(b, f)
}

// Product is a catalog item row in the products table.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"size:100" json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Features    FeatureList     `gorm:"type:json" json:"features"`
	ImageURL    string          `gorm:"size:500" json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func init() {
	// Prices travel as JSON numbers on the wire, matching the public API.
	decimal.MarshalJSONWithoutQuotes = true
}
