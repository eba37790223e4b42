package gateway

import (
	"net/http"

	"github.com/fairyhunter13/storefront-services/internal/gateway/openapi"
	"github.com/fairyhunter13/storefront-services/internal/httpx"
)

// NewRouter registers the public route table and returns the handler with
// middleware. Auth requirements follow the role table: catalog reads are
// public, catalog mutations and cross-user reads are admin-only, everything
// else needs a valid token.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()

	// auth
	mux.HandleFunc("POST /auth/register", func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.AuthServiceURL, "/register")
	})
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.AuthServiceURL, "/login")
	})
	mux.HandleFunc("POST /auth/verify", func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.AuthServiceURL, "/verify")
	})

	// products
	mux.HandleFunc("GET /products", func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.ProductServiceURL, "/products")
	})
	mux.HandleFunc("GET /products/{id}", func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.ProductServiceURL, "/products/"+r.PathValue("id"))
	})
	mux.HandleFunc("POST /products", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.ProductServiceURL, "/products")
	}))
	mux.HandleFunc("PUT /products/{id}", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.ProductServiceURL, "/products/"+r.PathValue("id"))
	}))
	mux.HandleFunc("DELETE /products/{id}", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.ProductServiceURL, "/products/"+r.PathValue("id"))
	}))

	// orders
	mux.HandleFunc("POST /orders", app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.OrderServiceURL, "/orders")
	}))
	mux.HandleFunc("POST /orders/checkout", app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.OrderServiceURL, "/orders/checkout")
	}))
	mux.HandleFunc("GET /orders/my-orders", app.requireAuth(app.myOrdersHandler))
	mux.HandleFunc("GET /orders/{id}", app.requireAuth(app.getOrderHandler))
	mux.HandleFunc("GET /orders", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.OrderServiceURL, "/orders")
	}))
	mux.HandleFunc("PATCH /orders/{id}/status", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.OrderServiceURL, "/orders/"+r.PathValue("id")+"/status")
	}))
	mux.HandleFunc("DELETE /orders/{id}", app.requireAuth(app.cancelOrderHandler))

	// payments
	mux.HandleFunc("POST /payments", app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.PaymentServiceURL, "/payments")
	}))
	mux.HandleFunc("GET /payments", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.PaymentServiceURL, "/payments")
	}))
	mux.HandleFunc("GET /payments/{id}", app.requireAuth(app.getPaymentHandler))
	mux.HandleFunc("POST /payments/{id}/verify", app.requireAuth(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.PaymentServiceURL, "/payments/"+r.PathValue("id")+"/verify")
	}))

	// users
	mux.HandleFunc("GET /users/me", app.requireAuth(app.meHandler))
	mux.HandleFunc("PUT /users/me", app.requireAuth(app.meHandler))
	mux.HandleFunc("GET /users", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.UserServiceURL, "/users")
	}))
	mux.HandleFunc("POST /users", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.UserServiceURL, "/users")
	}))
	mux.HandleFunc("GET /users/{id}", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.UserServiceURL, "/users/"+r.PathValue("id"))
	}))
	mux.HandleFunc("DELETE /users/{id}", app.requireAdmin(func(w http.ResponseWriter, r *http.Request) {
		app.forward(w, r, app.Cfg.UserServiceURL, "/users/"+r.PathValue("id"))
	}))

	mux.HandleFunc("GET /health", app.healthHandler)
	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(openapi.YAML)
	})
	mux.HandleFunc("GET /docs", docsHandler)

	return httpx.WithRequestID(httpx.WithLogging(mux))
}

func docsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>Storefront API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
