// Storefront Checkout Service
//
// This is the main entry point for the checkout-preference service.
// It wires up all dependencies and starts the HTTP server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tiendaclara/storefront-checkout/config"
	"github.com/tiendaclara/storefront-checkout/internal/api"
	"github.com/tiendaclara/storefront-checkout/internal/checkout"
	"github.com/tiendaclara/storefront-checkout/internal/domain"
	"github.com/tiendaclara/storefront-checkout/internal/logging"
	"github.com/tiendaclara/storefront-checkout/internal/platform/mercadopago"
	"github.com/tiendaclara/storefront-checkout/internal/platform/storeapi"
)

func main() {
	log := logging.Init("checkout-api", "./logs/app.log")
	log.Info("starting storefront checkout service")

	cfg := config.Load()
	log.Info("configuration loaded",
		"port", cfg.Server.Port,
		"env", cfg.App.Environment,
		"base_url", cfg.App.PublicBaseURL)

	// Startup warnings for conditions the endpoint will reject per request.
	if cfg.MercadoPago.AccessToken == "" {
		log.Warn("MP_ACCESS_TOKEN not set; checkout requests will fail")
	}
	if cfg.App.PublicBaseURL == "" && cfg.IsProduction() {
		log.Warn("PUBLIC_BASE_URL not set in production; checkout requests will fail")
	}

	// Wire up dependencies (manual dependency injection)
	//
	// Infrastructure layer
	mpAdapter := mercadopago.NewAdapter()
	var notifier domain.StoreNotifier
	if cfg.StoreAPI.BaseURL != "" {
		notifier = storeapi.NewClient(cfg.StoreAPI.BaseURL, cfg.StoreAPI.APIKey)
	}

	// Service layer
	service := checkout.NewService(cfg, mpAdapter, notifier, logging.New("checkout"))

	// API layer
	handler := api.NewHandler(service, mercadopago.NewWebhookValidator(),
		cfg.MercadoPago.WebhookSecret, logging.New("api"))
	router := api.SetupRouter(handler, cfg.Server.GinMode)

	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	go func() {
		log.Info("server listening", "addr", serverAddr)
		if err := router.Run(serverAddr); err != nil {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
}
