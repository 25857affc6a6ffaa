package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/checkout"
	"event-ticketing-frontend/internal/config"
	"event-ticketing-frontend/internal/handlers"
	"event-ticketing-frontend/internal/middleware"
	"event-ticketing-frontend/internal/selection"

	"github.com/gorilla/sessions"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Backend API client
	backendClient := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
	})
	log.Printf("Ticketing backend: %s", cfg.Backend.BaseURL)

	// Create session store
	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400, // 1 day; carts themselves live in memory only
		HttpOnly: true,
		Secure:   cfg.Server.Env == "production",
		SameSite: http.SameSiteLaxMode,
	}
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)

	// Cart registry owns one cart + reservation timer per browsing session
	registry := cart.NewRegistry(cart.Config{
		HoldDuration:  cfg.Cart.HoldDuration,
		PerSectionMax: cfg.Cart.PerSectionMax,
		PerEventMax:   cfg.Cart.PerEventMax,
	})

	selectionService := selection.NewService(backendClient)

	checkoutManager := checkout.NewManager(backendClient, checkout.Config{
		Currency:          cfg.Checkout.Currency,
		ServiceFeePercent: cfg.Checkout.ServiceFeePercent,
		Description:       cfg.Checkout.Description,
	})

	router := handlers.NewRouter(handlers.RouterDeps{
		Events:     handlers.NewEventHandler(backendClient, selectionService),
		Cart:       handlers.NewCartHandler(registry, backendClient, selectionService),
		Checkout:   handlers.NewCheckoutHandler(checkoutManager, registry),
		Orders:     handlers.NewOrderHandler(backendClient),
		Validation: handlers.NewValidationHandler(backendClient),
		Session:    sessionMiddleware,
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://%s (%s)", addr, cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed:", err)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
