package handlers

import (
	"net/http"
	"strconv"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/models"
	"event-ticketing-frontend/internal/selection"

	"github.com/go-chi/chi/v5"
)

// EventHandler serves the public event browsing views
type EventHandler struct {
	backend   backend.Service
	selection *selection.Service
}

// NewEventHandler creates a new event handler
func NewEventHandler(svc backend.Service, sel *selection.Service) *EventHandler {
	return &EventHandler{backend: svc, selection: sel}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))

	filters := models.EventFilters{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		City:     q.Get("city"),
		Page:     page,
		PageSize: pageSize,
	}

	events, total, err := h.backend.ListEvents(r.Context(), filters)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
	})
}

// GetEvent handles GET /api/events/{eventID}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	event, err := h.backend.GetEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

// GetSeatingMap handles GET /api/events/{eventID}/seating-map
func (h *EventHandler) GetSeatingMap(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	refresh := r.URL.Query().Get("refresh") == "true"

	m, err := h.selection.SeatingMap(r.Context(), eventID, refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
