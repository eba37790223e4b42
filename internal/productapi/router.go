package productapi

import (
	"net/http"

	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", app.listHandler)
	mux.HandleFunc("GET /products/{id}", app.getHandler)
	mux.HandleFunc("POST /products", app.createHandler)
	mux.HandleFunc("PUT /products/{id}", app.updateHandler)
	mux.HandleFunc("DELETE /products/{id}", app.deleteHandler)
	mux.HandleFunc("GET /health", app.healthHandler)
	return httpx.WithRequestID(httpx.WithLogging(mux))
}
