package gateway

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fairyhunter13/storefront-services/internal/client"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
	"github.com/fairyhunter13/storefront-services/internal/obs"
)

type ctxKey int

const ctxKeyIdentity ctxKey = iota

func identityFromContext(ctx context.Context) (httpx.Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(httpx.Identity)
	return id, ok
}

// requireAuth verifies the bearer token with a round-trip to the auth
// service and stashes the resulting identity in the request context.
func (a *App) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := bearerToken(r)
		if raw == "" {
			httpx.WriteJSONError(w, http.StatusUnauthorized, "No token provided", "")
			return
		}
		id, err := a.Auth.Verify(r.Context(), raw)
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				httpx.WriteJSONError(w, http.StatusUnauthorized, "Invalid token", "")
				return
			}
			obs.Logger.Error("auth_verify_failed", "error", err)
			httpx.WriteJSONError(w, http.StatusBadGateway, "Service unavailable", "")
			return
		}
		ctx := context.WithValue(r.Context(), ctxKeyIdentity, id)
		next(w, r.WithContext(ctx))
	}
}

// requireAdmin runs after requireAuth and rejects non-admin callers.
func (a *App) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return a.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identityFromContext(r.Context())
		if !ok || !id.IsAdmin() {
			httpx.WriteJSONError(w, http.StatusForbidden, "Access denied. Admin only.", "")
			return
		}
		next(w, r)
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
