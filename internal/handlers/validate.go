package handlers

import (
	"net/http"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/models"
)

// ValidationHandler relays ticket validation scans to the backend
type ValidationHandler struct {
	backend backend.Service
}

// NewValidationHandler creates a new validation handler
func NewValidationHandler(svc backend.Service) *ValidationHandler {
	return &ValidationHandler{backend: svc}
}

// ValidateTicket handles POST /api/tickets/validate
func (h *ValidationHandler) ValidateTicket(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, models.ErrUnauthorized)
		return
	}

	var req models.TicketValidationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.QRHash == "" {
		writeMessage(w, http.StatusBadRequest, "qrHash is required")
		return
	}

	result, err := h.backend.ValidateTicket(r.Context(), token, req.QRHash)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
