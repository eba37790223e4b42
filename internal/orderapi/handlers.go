// Package orderapi exposes the order service HTTP API. Order creation and
// the instant-pay checkout share a single creation path: both look up the
// product price at creation time and differ only in the initial status and
// payment fields.
package orderapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/storefront-services/internal/client"
	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

// IdempotencyKeyHeader deduplicates retried order submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrderStore is the slice of the order repository the handlers need.
type OrderStore interface {
	Create(ctx context.Context, o *model.Order) error
	Get(ctx context.Context, id uint) (model.Order, error)
	GetByIdempotencyKey(ctx context.Context, key string) (model.Order, error)
	List(ctx context.Context, f store.OrderFilter, page model.PageRequest) ([]model.Order, int64, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error
	Cancel(ctx context.Context, id uint) error
}

// ProductGetter looks up catalog items in the product service.
type ProductGetter interface {
	Get(ctx context.Context, id uint) (model.Product, error)
}

type App struct {
	Cfg      config.Config
	Store    OrderStore
	Products ProductGetter
}

func NewApp(cfg config.Config, st OrderStore, products ProductGetter) *App {
	return &App{Cfg: cfg, Store: st, Products: products}
}

type createRequest struct {
	UserID    uint `json:"userId"`
	ProductID uint `json:"productId"`
	Quantity  int  `json:"quantity"`
}

type checkoutRequest struct {
	UserID        uint   `json:"userId"`
	ProductID     uint   `json:"productId"`
	Quantity      int    `json:"quantity"`
	PaymentMethod string `json:"paymentMethod"`
}

// callerID resolves the acting user: the gateway-forwarded identity header
// wins, the request body is the fallback.
func callerID(r *http.Request, bodyUserID uint) (uint, bool) {
	if id, ok := httpx.IdentityFromHeaders(r); ok {
		return id.ID, true
	}
	if bodyUserID > 0 {
		return bodyUserID, true
	}
	return 0, false
}

// createOrder runs the shared creation path. A replayed idempotency key
// returns the stored order with created=false.
func (a *App) createOrder(ctx context.Context, o *model.Order, idemKey string) (model.Order, bool, error) {
	if idemKey != "" {
		if prev, err := a.Store.GetByIdempotencyKey(ctx, idemKey); err == nil {
			return prev, false, nil
		} else if !errors.Is(err, store.ErrNotFound) {
			return model.Order{}, false, err
		}
		o.IdempotencyKey = &idemKey
	}

	p, err := a.Products.Get(ctx, o.ProductID)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return model.Order{}, false, err
		}
		return model.Order{}, false, fmt.Errorf("%w: %v", errProductUnavailable, err)
	}
	o.TotalPrice = p.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))

	if err := a.Store.Create(ctx, o); err != nil {
		// A concurrent replay can land between the lookup and the insert;
		// the unique key turns it into a read of the winner's row.
		if idemKey != "" && errors.Is(err, store.ErrDuplicate) {
			prev, lerr := a.Store.GetByIdempotencyKey(ctx, idemKey)
			if lerr == nil {
				return prev, false, nil
			}
		}
		return model.Order{}, false, err
	}
	return *o, true, nil
}

// errProductUnavailable wraps product lookup failures that are not a plain
// missing product: transport errors, timeouts, downstream 5xx.
var errProductUnavailable = errors.New("product service unavailable")

// writeCreateError maps creation failures: a missing product is 404, an
// unreachable or failing product service is 502, everything else 500.
func writeCreateError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, client.ErrNotFound):
		httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
	case errors.Is(err, errProductUnavailable):
		obs.Logger.Error("product_lookup_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusBadGateway, "product service unavailable", "")
	default:
		obs.Logger.Error("create_order_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
	}
}

func (a *App) createHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == 0 {
		httpx.WriteJSONError(w, http.StatusBadRequest, "productId is required", "")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		httpx.WriteJSONError(w, http.StatusBadRequest, "quantity must be at least 1", "")
		return
	}
	userID, ok := callerID(r, req.UserID)
	if !ok {
		httpx.WriteJSONError(w, http.StatusUnauthorized, "User ID required", "")
		return
	}

	o := model.Order{
		UserID:    userID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Status:    model.OrderStatusPending,
	}
	created, fresh, err := a.createOrder(r.Context(), &o, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeCreateError(w, err)
		return
	}
	status := http.StatusCreated
	if !fresh {
		status = http.StatusOK
	}
	obs.Logger.Info("order_created",
		"order_id", created.ID,
		"user_id", created.UserID,
		"product_id", created.ProductID,
		"total_price", created.TotalPrice,
	)
	httpx.WriteJSON(w, status, map[string]any{
		"message": "Order created successfully",
		"order":   created,
	})
}

func (a *App) checkoutHandler(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == 0 {
		httpx.WriteJSONError(w, http.StatusBadRequest, "productId is required", "")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 1 {
		httpx.WriteJSONError(w, http.StatusBadRequest, "quantity must be at least 1", "")
		return
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "credit_card"
	}
	userID, ok := callerID(r, req.UserID)
	if !ok {
		httpx.WriteJSONError(w, http.StatusUnauthorized, "User ID required", "")
		return
	}

	o := model.Order{
		UserID:        userID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Status:        model.OrderStatusCompleted,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: "paid",
	}
	created, fresh, err := a.createOrder(r.Context(), &o, r.Header.Get(IdempotencyKeyHeader))
	if err != nil {
		writeCreateError(w, err)
		return
	}
	status := http.StatusCreated
	if !fresh {
		status = http.StatusOK
	}
	obs.Logger.Info("order_checked_out",
		"order_id", created.ID,
		"user_id", created.UserID,
		"total_price", created.TotalPrice,
		"payment_method", created.PaymentMethod,
	)
	httpx.WriteJSON(w, status, map[string]any{
		"message": "Order created and paid successfully",
		"order":   created,
	})
}

type listResponse struct {
	Orders     []model.Order    `json:"orders"`
	Pagination model.Pagination `json:"pagination"`
}

func (a *App) listHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := httpx.ParsePage(q)
	filter := store.OrderFilter{Status: model.OrderStatus(q.Get("status"))}
	orders, total, err := a.Store.List(r.Context(), filter, page)
	if err != nil {
		obs.Logger.Error("list_orders_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Orders:     orders,
		Pagination: model.NewPagination(page, total),
	})
}

func (a *App) getHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
		return
	}
	o, err := a.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
			return
		}
		obs.Logger.Error("get_order_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, o)
}

// listByUserHandler returns a user's orders enriched with catalog data.
// Each product lookup is best-effort; a failed lookup degrades to
// placeholder fields rather than failing the listing.
func (a *App) listByUserHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.PathID(r, "userId")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
		return
	}
	orders, err := a.Store.ListByUser(r.Context(), userID)
	if err != nil {
		obs.Logger.Error("list_user_orders_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	enriched := make([]model.OrderWithProduct, 0, len(orders))
	for _, o := range orders {
		row := model.OrderWithProduct{
			Order:           o,
			ProductName:     "Product Not Found",
			ProductCategory: "Unknown",
		}
		if p, perr := a.Products.Get(r.Context(), o.ProductID); perr == nil {
			row.ProductName = p.Name
			row.ProductCategory = p.Category
		}
		enriched = append(enriched, row)
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{"data": enriched})
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (a *App) updateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
		return
	}
	var req statusRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if !req.Status.Valid() {
		httpx.WriteJSONError(w, http.StatusBadRequest,
			"status must be one of [pending, paid, processing, completed, cancelled]", "")
		return
	}

	o, err := a.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
			return
		}
		obs.Logger.Error("get_order_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if !o.Status.CanTransitionTo(req.Status) {
		httpx.WriteJSONError(w, http.StatusConflict,
			fmt.Sprintf("cannot transition order from %s to %s", o.Status, req.Status), "")
		return
	}
	if err := a.Store.UpdateStatus(r.Context(), id, req.Status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
			return
		}
		obs.Logger.Error("update_order_status_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("order_status_updated", "order_id", id, "from", o.Status, "to", req.Status)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Order status updated successfully",
		"order":   map[string]any{"id": id, "status": req.Status},
	})
}

func (a *App) cancelHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Order not found or cannot be cancelled", "")
		return
	}
	if err := a.Store.Cancel(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Order not found or cannot be cancelled", "")
			return
		}
		obs.Logger.Error("cancel_order_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("order_cancelled", "order_id", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Order cancelled successfully"})
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK", "service": "Order Service"})
}
