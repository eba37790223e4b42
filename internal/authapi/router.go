package authapi

import (
	"net/http"

	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", app.registerHandler)
	mux.HandleFunc("POST /login", app.loginHandler)
	mux.HandleFunc("POST /verify", app.verifyHandler)
	mux.HandleFunc("GET /health", app.healthHandler)
	return httpx.WithRequestID(httpx.WithLogging(mux))
}
