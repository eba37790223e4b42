// Package gateway implements the single ingress process. It authenticates
// requests with a round-trip to the auth service, attaches the caller's
// identity as headers, enforces role checks, and forwards to the backend
// services by path prefix.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fairyhunter13/storefront-services/internal/client"
	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
)

// TokenVerifier checks a bearer token against the auth service.
type TokenVerifier interface {
	Verify(ctx context.Context, bearer string) (httpx.Identity, error)
}

// OrderGetter fetches orders for ownership checks.
type OrderGetter interface {
	Get(ctx context.Context, id uint) (model.Order, error)
}

// PaymentGetter fetches payments for ownership checks.
type PaymentGetter interface {
	Get(ctx context.Context, id uint) (model.Payment, error)
}

type App struct {
	Cfg      config.Config
	Auth     TokenVerifier
	Orders   OrderGetter
	Payments PaymentGetter
	hc       *http.Client
}

func NewApp(cfg config.Config, auth TokenVerifier, orders OrderGetter, payments PaymentGetter) *App {
	timeout := cfg.ClientTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &App{
		Cfg:      cfg,
		Auth:     auth,
		Orders:   orders,
		Payments: payments,
		hc:       &http.Client{Timeout: timeout},
	}
}

// forwardedHeaders are the request headers copied to the backend verbatim.
var forwardedHeaders = []string{"Content-Type", "Authorization", "Idempotency-Key", "X-Request-Id"}

// forward relays the request to base+path, attaching identity headers when
// the caller is authenticated, and copies the downstream response back. A
// transport failure becomes 502 Service unavailable; downstream statuses
// pass through untouched.
func (a *App) forward(w http.ResponseWriter, r *http.Request, base, path string) {
	url := base + path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}
	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	for _, h := range forwardedHeaders {
		if v := r.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}
	if id, ok := identityFromContext(r.Context()); ok {
		id.SetIdentityHeaders(req.Header)
	}

	resp, err := a.hc.Do(req)
	if err != nil {
		obs.Logger.Error("forward_failed", "url", url, "error", err)
		httpx.WriteJSONError(w, http.StatusBadGateway, "Service unavailable", "")
		return
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// healthHandler reports the gateway's own status plus a ping of each
// backend's /health. A failing backend does not fail the gateway check.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	backends := map[string]string{
		"auth-service":    a.Cfg.AuthServiceURL,
		"product-service": a.Cfg.ProductServiceURL,
		"order-service":   a.Cfg.OrderServiceURL,
		"payment-service": a.Cfg.PaymentServiceURL,
		"user-service":    a.Cfg.UserServiceURL,
	}
	services := make(map[string]string, len(backends))
	for name, base := range backends {
		services[name] = a.pingBackend(r.Context(), base)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "OK",
		"service":  "API Gateway",
		"services": services,
	})
}

func (a *App) pingBackend(ctx context.Context, base string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/health", nil)
	if err != nil {
		return "unreachable"
	}
	resp, err := a.hc.Do(req)
	if err != nil {
		return "unreachable"
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "unhealthy"
	}
	return "OK"
}

// myOrdersHandler rewrites /orders/my-orders to the order service's
// per-user listing for the authenticated caller.
func (a *App) myOrdersHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())
	a.forward(w, r, a.Cfg.OrderServiceURL, fmt.Sprintf("/orders/user/%d", id.ID))
}

// getOrderHandler enforces owner-or-admin on single-order reads.
func (a *App) getOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())
	orderID, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
		return
	}
	o, err := a.Orders.Get(r.Context(), orderID)
	if err != nil {
		writeLookupError(w, err, "Order not found")
		return
	}
	if o.UserID != id.ID && !id.IsAdmin() {
		httpx.WriteJSONError(w, http.StatusForbidden, "Access denied", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

// cancelOrderHandler enforces owner-or-admin before forwarding the cancel.
func (a *App) cancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())
	orderID, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
		return
	}
	o, err := a.Orders.Get(r.Context(), orderID)
	if err != nil {
		writeLookupError(w, err, "Order not found")
		return
	}
	if o.UserID != id.ID && !id.IsAdmin() {
		httpx.WriteJSONError(w, http.StatusForbidden, "Access denied", "")
		return
	}
	a.forward(w, r, a.Cfg.OrderServiceURL, fmt.Sprintf("/orders/%d", orderID))
}

// getPaymentHandler enforces owner-or-admin on single-payment reads.
func (a *App) getPaymentHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())
	paymentID, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Payment not found", "")
		return
	}
	p, err := a.Payments.Get(r.Context(), paymentID)
	if err != nil {
		writeLookupError(w, err, "Payment not found")
		return
	}
	if p.UserID != id.ID && !id.IsAdmin() {
		httpx.WriteJSONError(w, http.StatusForbidden, "Access denied", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

// meHandler rewrites /users/me to the caller's own profile.
func (a *App) meHandler(w http.ResponseWriter, r *http.Request) {
	id, _ := identityFromContext(r.Context())
	a.forward(w, r, a.Cfg.UserServiceURL, fmt.Sprintf("/users/%d", id.ID))
}

// writeLookupError maps a downstream lookup failure during an ownership
// check: 404 stays 404, anything else is an unavailable backend.
func writeLookupError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, client.ErrNotFound) {
		httpx.WriteJSONError(w, http.StatusNotFound, notFoundMsg, "")
		return
	}
	obs.Logger.Error("ownership_lookup_failed", "error", err)
	httpx.WriteJSONError(w, http.StatusBadGateway, "Service unavailable", "")
}
