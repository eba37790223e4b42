package httpx

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/fairyhunter13/storefront-services/internal/model"
)

// Identity headers set by the gateway after verifying the bearer token.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserRole  = "X-User-Role"
)

// Identity is the authenticated caller forwarded by the gateway.
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the caller carries the admin role.
func (id Identity) IsAdmin() bool { return id.Role == string(model.RoleAdmin) }

// IdentityFromHeaders reads the forwarded identity headers. The second return
// is false when no usable user id is present.
func IdentityFromHeaders(r *http.Request) (Identity, bool) {
	raw := r.Header.Get(HeaderUserID)
	if raw == "" {
		return Identity{}, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return Identity{}, false
	}
	return Identity{
		ID:    uint(id),
		Email: r.Header.Get(HeaderUserEmail),
		Role:  r.Header.Get(HeaderUserRole),
	}, true
}

// SetIdentityHeaders attaches the identity headers to an outbound request.
func (id Identity) SetIdentityHeaders(h http.Header) {
	h.Set(HeaderUserID, strconv.FormatUint(uint64(id.ID), 10))
	h.Set(HeaderUserEmail, id.Email)
	h.Set(HeaderUserRole, id.Role)
}

// ParsePage reads 1-based page/limit query parameters with defaults.
func ParsePage(q url.Values) model.PageRequest {
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return model.PageRequest{Page: page, Limit: limit}.Normalize()
}

// PathID parses the {id} path value as an unsigned integer.
func PathID(r *http.Request, name string) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
