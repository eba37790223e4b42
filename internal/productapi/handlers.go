// Package productapi exposes the product service HTTP API: catalog listing
// with filters and the admin CRUD operations.
package productapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

// ProductStore is the slice of the product repository the handlers need.
type ProductStore interface {
	Create(ctx context.Context, p *model.Product) error
	Get(ctx context.Context, id uint) (model.Product, error)
	List(ctx context.Context, f store.ProductFilter, page model.PageRequest) ([]model.Product, int64, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uint) error
}

type App struct {
	Cfg   config.Config
	Store ProductStore
}

func NewApp(cfg config.Config, st ProductStore) *App {
	return &App{Cfg: cfg, Store: st}
}

// featuresField accepts either a JSON array of strings or a single
// comma-separated string, the two shapes the admin UI sends.
type featuresField model.FeatureList

func (f *featuresField) UnmarshalJSON(b []byte) error {
	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		*f = list
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.New("features must be an array of strings or a comma-separated string")
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*f = out
	return nil
}

type productRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Features    featuresField   `json:"features"`
	ImageURL    string          `json:"imageUrl"`
}

func (req productRequest) validate() string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if !req.Price.IsPositive() {
		return "price must be greater than 0"
	}
	return ""
}

type listResponse struct {
	Products   []model.Product  `json:"products"`
	Pagination model.Pagination `json:"pagination"`
}

func (a *App) listHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := httpx.ParsePage(q)
	filter := store.ProductFilter{
		Category: q.Get("category"),
		Search:   q.Get("search"),
	}
	products, total, err := a.Store.List(r.Context(), filter, page)
	if err != nil {
		obs.Logger.Error("list_products_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Products:   products,
		Pagination: model.NewPagination(page, total),
	})
}

func (a *App) getHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
		return
	}
	p, err := a.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
			return
		}
		obs.Logger.Error("get_product_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (a *App) createHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteJSONError(w, http.StatusBadRequest, msg, "")
		return
	}
	p := model.Product{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Features:    model.FeatureList(req.Features),
		ImageURL:    req.ImageURL,
	}
	if err := a.Store.Create(r.Context(), &p); err != nil {
		obs.Logger.Error("create_product_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("product_created", "product_id", p.ID, "name", p.Name)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Product created successfully",
		"product": p,
	})
}

func (a *App) updateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
		return
	}
	var req productRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteJSONError(w, http.StatusBadRequest, msg, "")
		return
	}
	p := model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Features:    model.FeatureList(req.Features),
		ImageURL:    req.ImageURL,
	}
	if err := a.Store.Update(r.Context(), &p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
			return
		}
		obs.Logger.Error("update_product_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (a *App) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
		return
	}
	if err := a.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "Product not found", "")
			return
		}
		obs.Logger.Error("delete_product_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted successfully"})
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK", "service": "Product Service"})
}
