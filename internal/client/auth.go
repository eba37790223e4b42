package client

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// ErrUnauthorized marks a token the auth service rejected, as opposed to the
// auth service being unreachable.
var ErrUnauthorized = errors.New("invalid token")

// Auth calls the auth service to verify bearer tokens.
type Auth struct {
	base string
	hc   *http.Client
}

// NewAuth builds an auth client for the given base URL.
func NewAuth(base string, timeout time.Duration) *Auth {
	return &Auth{base: base, hc: newHTTPClient(timeout)}
}

type verifyResponse struct {
	Valid bool           `json:"valid"`
	User  httpx.Identity `json:"user"`
}

// Verify round-trips the raw bearer token to POST /verify on every call; no
// local signature check, no caching.
func (c *Auth) Verify(ctx context.Context, bearer string) (httpx.Identity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/verify", nil)
	if err != nil {
		return httpx.Identity{}, err
	}
	req.Header.Set("Authorization", "Bearer "+bearer)
	resp, err := c.hc.Do(req)
	if err != nil {
		return httpx.Identity{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return httpx.Identity{}, ErrUnauthorized
	}
	if resp.StatusCode != http.StatusOK {
		return httpx.Identity{}, errors.New("auth service unavailable")
	}
	var vr verifyResponse
	if err := decodeBody(resp, &vr); err != nil {
		return httpx.Identity{}, err
	}
	if !vr.Valid {
		return httpx.Identity{}, ErrUnauthorized
	}
	return vr.User, nil
}
