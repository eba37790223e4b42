package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// Payment calls the payment service.
type Payment struct {
	base string
	hc   *http.Client
}

// NewPayment builds a payment client for the given base URL.
func NewPayment(base string, timeout time.Duration) *Payment {
	return &Payment{base: base, hc: newHTTPClient(timeout)}
}

// Get fetches a single payment.
func (c *Payment) Get(ctx context.Context, id uint) (model.Payment, error) {
	var p model.Payment
	err := doJSON(ctx, c.hc, http.MethodGet, fmt.Sprintf("%s/payments/%d", c.base, id), nil, &p)
	return p, err
}
