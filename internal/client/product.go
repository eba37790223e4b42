package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// Product calls the product service.
type Product struct {
	base string
	hc   *http.Client
}

// NewProduct builds a product client for the given base URL.
func NewProduct(base string, timeout time.Duration) *Product {
	return &Product{base: base, hc: newHTTPClient(timeout)}
}

// Get fetches a catalog item. Returns ErrNotFound only when the product
// service answered 404; any other failure surfaces as a plain error.
func (c *Product) Get(ctx context.Context, id uint) (model.Product, error) {
	var p model.Product
	err := doJSON(ctx, c.hc, http.MethodGet, fmt.Sprintf("%s/products/%d", c.base, id), nil, &p)
	return p, err
}
