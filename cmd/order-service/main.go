// Package main boots the order service HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fairyhunter13/storefront-services/internal/client"
	"github.com/fairyhunter13/storefront-services/internal/config"
	"github.com/fairyhunter13/storefront-services/internal/obs"
	"github.com/fairyhunter13/storefront-services/internal/orderapi"
	"github.com/fairyhunter13/storefront-services/internal/store"
)

func main() {
	cfg := config.Load("order-service")
	obs.InitLogger(cfg.Service)
	obs.Logger.Info("service_starting")

	db, err := store.Open(cfg.DBDSN)
	if err != nil {
		obs.Logger.Error("db_open_error", "error", err)
		os.Exit(1)
	}
	orders, err := store.NewOrders(db)
	if err != nil {
		obs.Logger.Error("db_migrate_error", "error", err)
		os.Exit(1)
	}
	products := client.NewProduct(cfg.ProductServiceURL, cfg.ClientTimeout)

	app := orderapi.NewApp(cfg, orders, products)
	mux := orderapi.NewRouter(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped")
}
