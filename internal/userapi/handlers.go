// Package userapi exposes the user service HTTP API: account listing and
// the admin/profile CRUD operations.
package userapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

// defaultPassword is assigned to admin-created accounts without a password.
const defaultPassword = "password123"

// UserStore is the slice of the user repository the handlers need.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	Get(ctx context.Context, id uint) (model.User, error)
	List(ctx context.Context, role string, page model.PageRequest) ([]model.User, int64, error)
	UpdateFullName(ctx context.Context, id uint, fullName string) error
	Delete(ctx context.Context, id uint) error
}

type App struct {
	Cfg   config.Config
	Store UserStore
}

func NewApp(cfg config.Config, st UserStore) *App {
	return &App{Cfg: cfg, Store: st}
}

type listResponse struct {
	Data       []model.User     `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

func (a *App) listHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page := httpx.ParsePage(q)
	users, total, err := a.Store.List(r.Context(), q.Get("role"), page)
	if err != nil {
		obs.Logger.Error("list_users_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	httpx.WriteJSON(w, http.StatusOK, listResponse{
		Data:       users,
		Pagination: model.NewPagination(page, total),
	})
}

type createRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func (a *App) createHandler(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.FullName == "" {
		httpx.WriteJSONError(w, http.StatusBadRequest, "Email and full name are required", "")
		return
	}
	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleUser
	}
	if !role.Valid() {
		httpx.WriteJSONError(w, http.StatusBadRequest, "role must be one of [user, admin]", "")
		return
	}
	password := req.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	u := model.User{
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Role:     role,
	}
	if err := a.Store.Create(r.Context(), &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httpx.WriteJSONError(w, http.StatusBadRequest, "Email already exists", "")
			return
		}
		obs.Logger.Error("create_user_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("user_created", "user_id", u.ID, "email", u.Email, "role", u.Role)
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "User created successfully",
		"user":    u.Public(),
	})
}

func (a *App) getHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
		return
	}
	u, err := a.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
			return
		}
		obs.Logger.Error("get_user_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

type updateRequest struct {
	FullName string `json:"fullName"`
}

func (a *App) updateHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
		return
	}
	var req updateRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if len(strings.TrimSpace(req.FullName)) < 3 {
		httpx.WriteJSONError(w, http.StatusBadRequest, "fullName must be at least 3 characters", "")
		return
	}
	if err := a.Store.UpdateFullName(r.Context(), id, req.FullName); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
			return
		}
		obs.Logger.Error("update_user_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    map[string]any{"id": id, "fullName": req.FullName},
	})
}

func (a *App) deleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.PathID(r, "id")
	if !ok {
		httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
		return
	}
	if err := a.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusNotFound, "User not found", "")
			return
		}
		obs.Logger.Error("delete_user_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("user_deleted", "user_id", id)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK", "service": "User Service"})
}
