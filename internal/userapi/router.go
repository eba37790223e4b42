package userapi

import (
	"net/http"

	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users", app.listHandler)
	mux.HandleFunc("POST /users", app.createHandler)
	mux.HandleFunc("GET /users/{id}", app.getHandler)
	mux.HandleFunc("PUT /users/{id}", app.updateHandler)
	mux.HandleFunc("DELETE /users/{id}", app.deleteHandler)
	mux.HandleFunc("GET /health", app.healthHandler)
	return httpx.WithRequestID(httpx.WithLogging(mux))
}
