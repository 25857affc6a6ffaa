package handlers

import (
	"net/http"

	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/checkout"
	"event-ticketing-frontend/internal/middleware"
	"event-ticketing-frontend/internal/models"
)

// CheckoutHandler drives the order-then-payment checkout sequence
type CheckoutHandler struct {
	manager  *checkout.Manager
	registry *cart.Registry
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(manager *checkout.Manager, registry *cart.Registry) *CheckoutHandler {
	return &CheckoutHandler{manager: manager, registry: registry}
}

type beginCheckoutRequest struct {
	Provider    models.PaymentProvider `json:"provider"`
	AcceptTerms bool                   `json:"accept_terms"`
}

// Begin handles POST /api/checkout: provider picked, terms accepted,
// create the order and the payment intent. Errors come back inside the
// checkout snapshot so the client always sees the attempt's state.
func (h *CheckoutHandler) Begin(w http.ResponseWriter, r *http.Request) {
	var req beginCheckoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if !req.AcceptTerms {
		writeMessage(w, http.StatusBadRequest, "You must accept the terms to continue")
		return
	}

	cartID := middleware.GetCartID(r.Context())
	c := h.registry.Get(cartID)

	session, err := h.manager.Start(cartID, c, req.Provider, bearerToken(r))
	if err != nil {
		writeError(w, err)
		return
	}

	if err := session.Begin(r.Context()); err != nil {
		// The snapshot carries the surfaced error and the state the
		// attempt fell back to; the cart is untouched.
		writeJSON(w, http.StatusOK, session.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Status handles GET /api/checkout: refresh the payment status from the
// backend (the browser polls this) and return the current snapshot.
func (h *CheckoutHandler) Status(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.GetCartID(r.Context())

	session, err := h.manager.Active(cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := session.RefreshStatus(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

type confirmRequest struct {
	ExternalPaymentID string `json:"external_payment_id"`
}

// Confirm handles POST /api/checkout/confirm: relay the provider's
// external payment reference so the backend can finalize.
func (h *CheckoutHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.ExternalPaymentID == "" {
		writeMessage(w, http.StatusBadRequest, "external_payment_id is required")
		return
	}

	cartID := middleware.GetCartID(r.Context())
	session, err := h.manager.Active(cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := session.Confirm(r.Context(), req.ExternalPaymentID); err != nil {
		writeJSON(w, http.StatusOK, session.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// RetryPayment handles POST /api/checkout/payment/retry after a
// payment-intent failure. The existing order is reused, never re-created.
func (h *CheckoutHandler) RetryPayment(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.GetCartID(r.Context())

	session, err := h.manager.Active(cartID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := session.RetryPayment(r.Context()); err != nil {
		writeJSON(w, http.StatusOK, session.Snapshot())
		return
	}
	writeJSON(w, http.StatusOK, session.Snapshot())
}

// Cancel handles DELETE /api/checkout: abandon the attempt. Any order
// already created stays PENDING on the backend and expires by TTL.
func (h *CheckoutHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	cartID := middleware.GetCartID(r.Context())

	if err := h.manager.Cancel(cartID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "checkout cancelled")
}
