package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// Order calls the order service.
type Order struct {
	base string
	hc   *http.Client
}

// NewOrder builds an order client for the given base URL.
func NewOrder(base string, timeout time.Duration) *Order {
	return &Order{base: base, hc: newHTTPClient(timeout)}
}

// Get fetches a single order.
func (c *Order) Get(ctx context.Context, id uint) (model.Order, error) {
	var o model.Order
	err := doJSON(ctx, c.hc, http.MethodGet, fmt.Sprintf("%s/orders/%d", c.base, id), nil, &o)
	return o, err
}

// UpdateStatus patches the status of an order.
func (c *Order) UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error {
	body := map[string]model.OrderStatus{"status": status}
	url := fmt.Sprintf("%s/orders/%d/status", c.base, id)
	return doJSON(ctx, c.hc, http.MethodPatch, url, body, nil)
}
