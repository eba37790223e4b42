// Package authapi exposes the auth service HTTP API: registration, login,
// and bearer token verification.
package authapi

import (
	"context"
	"errors"
	"net/http"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/model"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/store"
	"github.com/fairyhunter13/storefront-services/internal/token"
)

// UserStore is the slice of the user repository the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, error)
}

type App struct {
	Cfg    config.Config
	Users  UserStore
	Tokens *token.Issuer
}

func NewApp(cfg config.Config, users UserStore, tokens *token.Issuer) *App {
	return &App{Cfg: cfg, Users: users, Tokens: tokens}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    model.PublicUser `json:"user"`
}

func (req registerRequest) validate() string {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "email must be a valid email"
	}
	if len(req.Password) < 6 {
		return "password must be at least 6 characters"
	}
	if len(strings.TrimSpace(req.FullName)) < 3 {
		return "fullName must be at least 3 characters"
	}
	if req.Role != "" && !model.Role(req.Role).Valid() {
		return "role must be one of [user, admin]"
	}
	return ""
}

func (a *App) registerHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if msg := req.validate(); msg != "" {
		httpx.WriteJSONError(w, http.StatusBadRequest, msg, "")
		return
	}

	role := model.Role(req.Role)
	if role == "" {
		role = model.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
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
	if err := a.Users.Create(r.Context(), &u); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			httpx.WriteJSONError(w, http.StatusBadRequest, "Email already registered", "")
			return
		}
		obs.Logger.Error("register_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}

	signed, err := a.Tokens.Issue(u)
	if err != nil {
		obs.Logger.Error("token_issue_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	obs.Logger.Info("user_registered", "user_id", u.ID, "email", u.Email, "role", u.Role)
	httpx.WriteJSON(w, http.StatusCreated, authResponse{
		Message: "User registered successfully",
		Token:   signed,
		User:    u.Public(),
	})
}

func (a *App) loginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httpx.DecodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		httpx.WriteJSONError(w, http.StatusBadRequest, "email and password are required", "")
		return
	}

	u, err := a.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			httpx.WriteJSONError(w, http.StatusUnauthorized, "Invalid credentials", "")
			return
		}
		obs.Logger.Error("login_lookup_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)) != nil {
		httpx.WriteJSONError(w, http.StatusUnauthorized, "Invalid credentials", "")
		return
	}

	signed, err := a.Tokens.Issue(u)
	if err != nil {
		obs.Logger.Error("token_issue_failed", "error", err)
		httpx.WriteJSONError(w, http.StatusInternalServerError, "Internal server error", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, authResponse{
		Message: "Login successful",
		Token:   signed,
		User:    u.Public(),
	})
}

type verifyResponse struct {
	Valid bool           `json:"valid"`
	User  httpx.Identity `json:"user"`
}

func (a *App) verifyHandler(w http.ResponseWriter, r *http.Request) {
	raw := bearerToken(r)
	if raw == "" {
		httpx.WriteJSONError(w, http.StatusUnauthorized, "No token provided", "")
		return
	}
	claims, err := a.Tokens.Verify(raw)
	if err != nil {
		httpx.WriteJSONError(w, http.StatusUnauthorized, "Invalid token", "")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, verifyResponse{
		Valid: true,
		User:  httpx.Identity{ID: claims.UserID, Email: claims.Email, Role: claims.Role},
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimPrefix(h, prefix)
}

func (a *App) healthHandler(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK", "service": "Auth Service"})
}
