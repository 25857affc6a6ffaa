package handlers

import (
	"net/http"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/models"

	"github.com/go-chi/chi/v5"
)

// OrderHandler serves the user's order history
type OrderHandler struct {
	backend backend.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(svc backend.Service) *OrderHandler {
	return &OrderHandler{backend: svc}
}

// ListMyOrders handles GET /api/orders
func (h *OrderHandler) ListMyOrders(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, models.ErrUnauthorized)
		return
	}

	orders, err := h.backend.ListMyOrders(r.Context(), token)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{orderID}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, models.ErrUnauthorized)
		return
	}

	order, err := h.backend.GetOrder(r.Context(), token, chi.URLParam(r, "orderID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
