package handlers

import (
	"net/http"

	"event-ticketing-frontend/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// RouterDeps are the constructed handlers the router mounts
type RouterDeps struct {
	Events     *EventHandler
	Cart       *CartHandler
	Checkout   *CheckoutHandler
	Orders     *OrderHandler
	Validation *ValidationHandler
	Session    *middleware.SessionMiddleware
}

// NewRouter builds the application router
func NewRouter(deps RouterDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggingMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))
	r.Use(deps.Session.WithCartID)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeMessage(w, http.StatusOK, "ok")
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", deps.Events.ListEvents)
		r.Get("/events/{eventID}", deps.Events.GetEvent)
		r.Get("/events/{eventID}/seating-map", deps.Events.GetSeatingMap)

		r.Post("/events/{eventID}/sections/{sectionID}/increment", deps.Cart.Increment)
		r.Post("/events/{eventID}/sections/{sectionID}/decrement", deps.Cart.Decrement)

		r.Get("/cart", deps.Cart.ViewCart)
		r.Delete("/cart", deps.Cart.ClearCart)
		r.Post("/cart/items", deps.Cart.AddItem)
		r.Patch("/cart/items/{sectionID}", deps.Cart.UpdateItem)
		r.Delete("/cart/items/{sectionID}", deps.Cart.RemoveItem)

		r.Post("/checkout", deps.Checkout.Begin)
		r.Get("/checkout", deps.Checkout.Status)
		r.Delete("/checkout", deps.Checkout.Cancel)
		r.Post("/checkout/confirm", deps.Checkout.Confirm)
		r.Post("/checkout/payment/retry", deps.Checkout.RetryPayment)

		r.Get("/orders", deps.Orders.ListMyOrders)
		r.Get("/orders/{orderID}", deps.Orders.GetOrder)

		r.Post("/tickets/validate", deps.Validation.ValidateTicket)
	})

	return r
}
