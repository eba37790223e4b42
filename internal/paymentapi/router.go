package paymentapi

import (
	"net/http"

	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /payments", app.createHandler)
	mux.HandleFunc("GET /payments", app.listHandler)
	mux.HandleFunc("GET /payments/{id}", app.getHandler)
	mux.HandleFunc("GET /payments/order/{orderId}", app.listByOrderHandler)
	mux.HandleFunc("POST /payments/{id}/verify", app.verifyHandler)
	mux.HandleFunc("GET /health", app.healthHandler)
	return httpx.WithRequestID(httpx.WithLogging(mux))
}
