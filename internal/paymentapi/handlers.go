// Package paymentapi exposes the payment service HTTP API: initiating
// payments and verifying them against the stored payment reference.
package paymentapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

// PaymentStore is the slice of the payment repository the handlers need.
type PaymentStore interface {
	Create(ctx context.Context, p *model.Payment) error
	Get(ctx context.Context, id uint) (model.Payment, error)
	List(ctx context.Context, f store.PaymentFilter, page model.PageRequest) ([]model.Payment, int64, error)
	ListByOrder(ctx context.Context, orderID uint) ([]model.Payment, error)
	MarkCompleted(ctx context.Context, id uint) error
}

// OrderStatusUpdater notifies the order service after verification.
type OrderStatusUpdater interface {
	UpdateStatus(ctx context.Context, id uint, status model.OrderStatus) error
}

type App struct {
	Cfg    config.Config
	Store  PaymentStore
	Orders OrderStatusUpdater
}

func NewApp(cfg config.Config, st PaymentStore, orders OrderStatusUpdater) *App {
	return &App{Cfg: cfg, Store: st, Orders: orders}
}

// newPaymentReference generates the shared secret handed back to the payer.
func newPaymentReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
	return fmt.Sprintf("PAY-%d-%s", time.Now().UnixMilli(), suffix)
}

type createRequest struct {
	UserID        uint            `json:"userId"`
	OrderID       uint            `json:"orderId"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod"`
}

func (req createRequest) validate() string {
	if req.UserID == 0 {
		return "userId is required"
	}
	if req.OrderID == 0 {
		return "orderId is required"
	}
	if !req.Amount.IsPositive() {
		return "amount must be greater than 0"
	}
	if !model.PaymentMethods[req.PaymentMethod] {
		return "paymentMethod must be one of [credit_card, bank_transfer, e-wallet, virtual_account]"
	}
	return ""
}

func (a *App) createHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if id, ok := httpx.IdentityFromHeaders(r); ok {
		req.UserID = id.ID
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteJSONError(w, http.StatusBadRequest, msg, "")
		return
	}

	p := model.Payment{
		UserID:           req.UserID,
		OrderID:          req.OrderID,
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: newPaymentReference(),
		Status:           model.PaymentStatusPending,
	}
	if err := a.Store.Create(r.Context(), &p); err != nil {
		obs.Logger.Error("create_payment_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("payment_initiated",
		"payment_id", p.ID,
		"order_id", p.OrderID,
		"amount", p.Amount,
		"payment_reference", p.PaymentReference,
	)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Payment initiated successfully",
		"payment": p,
		"instructions": map[string]any{
			"paymentReference": p.PaymentReference,
			"amount":           p.Amount,
			"paymentMethod":    p.PaymentMethod,
			"note":             "Please complete the payment and verify using the payment reference",
		},
	})
}

type listResponse struct {
	Payments   []model.Payment  `json:"payments"`
	Pagination model.Pagination `json:"pagination"`
}

func (a *App) listHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := httpx.ParsePage(q)
	filter := store.PaymentFilter{Status: model.PaymentStatus(q.Get("status"))}
	payments, total, err := a.Store.List(r.Context(), filter, page)
	if err != nil {
		obs.Logger.Error("list_payments_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Payments:   payments,
		Pagination: model.NewPagination(page, total),
	})
}

func (a *App) getHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Payment not found", "")
		return
	}
	p, err := a.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Payment not found", "")
			return
		}
		obs.Logger.Error("get_payment_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (a *App) listByOrderHandler(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httpx.PathID(r, "orderId")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Order not found", "")
		return
	}
	payments, err := a.Store.ListByOrder(r.Context(), orderID)
	if err != nil {
		obs.Logger.Error("list_order_payments_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if payments == nil {
		payments = []model.Payment{}
	}
	httpx.WriteJSON(w, http.StatusOK, payments)
}

type verifyRequest struct {
	PaymentReference string `json:"paymentReference"`
}

// verifyHandler checks the supplied reference against the stored one, marks
// the payment completed, then makes a best-effort call to flip the order to
// paid. The order callback failing leaves the stores divergent; that is
// logged, not retried.
func (a *App) verifyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Payment not found", "")
		return
	}
	var req verifyRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}

	p, err := a.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Payment not found", "")
			return
		}
		obs.Logger.Error("get_payment_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if p.Status == model.PaymentStatusCompleted {
		httpx.WriteJSONError(w, http.StatusBadRequest, "Payment already verified", "")
		return
	}
	if p.PaymentReference != req.PaymentReference {
		httpx.WriteJSONError(w, http.StatusBadRequest, "Invalid payment reference", "")
		return
	}

	if err := a.Store.MarkCompleted(r.Context(), id); err != nil {
		obs.Logger.Error("complete_payment_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	updated, err := a.Store.Get(r.Context(), id)
	if err != nil {
		updated = p
		updated.Status = model.PaymentStatusCompleted
	}

	if err := a.Orders.UpdateStatus(r.Context(), p.OrderID, model.OrderStatusPaid); err != nil {
		obs.Logger.Error("order_status_callback_failed",
			"payment_id", p.ID,
			"order_id", p.OrderID,
			"error", err,
		)
	}

	obs.Logger.Info("payment_verified", "payment_id", p.ID, "order_id", p.OrderID)
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Payment verified successfully",
		"payment": updated,
	})
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK", "service": "Payment Service"})
}
