package orderapi

import (
	"net/http"

	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", app.createHandler)
	mux.HandleFunc("POST /orders/checkout", app.checkoutHandler)
	mux.HandleFunc("GET /orders", app.listHandler)
	mux.HandleFunc("GET /orders/{id}", app.getHandler)
	mux.HandleFunc("GET /orders/user/{userId}", app.listByUserHandler)
	mux.HandleFunc("PATCH /orders/{id}/status", app.updateStatusHandler)
	mux.HandleFunc("DELETE /orders/{id}", app.cancelHandler)
	mux.HandleFunc("GET /health", app.healthHandler)
	return httpx.WithRequestID(httpx.WithLogging(mux))
}
