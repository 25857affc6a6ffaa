package handlers

import (
	"net/http"
	"time"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/middleware"
	"event-ticketing-frontend/internal/selection"

	"github.com/go-chi/chi/v5"
)

// CartHandler handles the per-session ticket selection cart
type CartHandler struct {
	registry  *cart.Registry
	backend   backend.Service
	selection *selection.Service
}

// NewCartHandler creates a new cart handler
func NewCartHandler(registry *cart.Registry, svc backend.Service, sel *selection.Service) *CartHandler {
	return &CartHandler{registry: registry, backend: svc, selection: sel}
}

// cartView is the client-facing cart state, including the live countdown
type cartView struct {
	EventID          string          `json:"event_id,omitempty"`
	EventTitle       string          `json:"event_title,omitempty"`
	Items            []cart.LineItem `json:"items"`
	TotalQuantity    int             `json:"total_quantity"`
	TotalAmount      int             `json:"total_amount"` // in cents
	ExpiresAt        *time.Time      `json:"expires_at,omitempty"`
	RemainingSeconds int             `json:"remaining_seconds"`
	PerSectionMax    int             `json:"per_section_max"`
	PerEventMax      int             `json:"per_event_max"`
}

func (h *CartHandler) view(cartID string, c *cart.Cart) cartView {
	v := cartView{
		EventID:       c.EventID(),
		EventTitle:    c.EventTitle(),
		Items:         c.Items(),
		TotalQuantity: c.TotalQuantity(),
		TotalAmount:   c.TotalAmount(),
		PerSectionMax: c.PerSectionMax(),
		PerEventMax:   c.PerEventMax(),
	}
	if expiry := c.Expiry(); !expiry.IsZero() {
		v.ExpiresAt = &expiry
	}
	if t := h.registry.Timer(cartID); t != nil {
		v.RemainingSeconds = t.Remaining()
	}
	return v
}

func (h *CartHandler) sessionCart(r *http.Request) (string, *cart.Cart) {
	cartID := middleware.GetCartID(r.Context())
	return cartID, h.registry.Get(cartID)
}

// ViewCart handles GET /api/cart
func (h *CartHandler) ViewCart(w http.ResponseWriter, r *http.Request) {
	cartID, c := h.sessionCart(r)
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}

type addItemRequest struct {
	EventID   string `json:"event_id"`
	SectionID string `json:"section_id"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items. Quantity ceilings are clamped
// silently by the cart; the response reflects the clamped state. A
// sold-out section is a hard block with a user-visible message.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.EventID == "" || req.SectionID == "" || req.Quantity <= 0 {
		writeMessage(w, http.StatusBadRequest, "event_id, section_id and a positive quantity are required")
		return
	}

	cartID, c := h.sessionCart(r)

	// Binding a different event resets the cart; re-binding is a no-op
	if c.EventID() != req.EventID {
		event, err := h.backend.GetEvent(r.Context(), req.EventID)
		if err != nil {
			writeError(w, err)
			return
		}
		c.BindEvent(event.ID, event.Title)
	}

	m, err := h.selection.SeatingMap(r.Context(), req.EventID, false)
	if err != nil {
		writeError(w, err)
		return
	}
	sec := m.SectionByID(req.SectionID)
	if sec == nil {
		writeMessage(w, http.StatusNotFound, "section not found")
		return
	}
	if sec.Available <= 0 {
		writeMessage(w, http.StatusConflict, "This section is sold out")
		return
	}

	c.AddLineItem(sec.ID, sec.Name, sec.Type, req.Quantity, sec.Price, sec.Color)
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PATCH /api/cart/items/{sectionID}. Zero or negative
// removes the line item.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")

	var req updateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	cartID, c := h.sessionCart(r)
	c.SetLineItemQuantity(sectionID, req.Quantity)
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}

// RemoveItem handles DELETE /api/cart/items/{sectionID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")

	cartID, c := h.sessionCart(r)
	c.RemoveLineItem(sectionID)
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cartID, c := h.sessionCart(r)
	c.Clear()
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}

// blockMessages present the selection ceilings to the user
var blockMessages = map[selection.BlockReason]string{
	selection.BlockSoldOut:      "This section is sold out",
	selection.BlockEventLimit:   "You have reached the ticket limit for this event",
	selection.BlockSectionLimit: "You have reached the ticket limit for this section",
}

// Increment handles POST /api/events/{eventID}/sections/{sectionID}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")
	sectionID := chi.URLParam(r, "sectionID")

	cartID, c := h.sessionCart(r)

	if c.EventID() != eventID {
		event, err := h.backend.GetEvent(r.Context(), eventID)
		if err != nil {
			writeError(w, err)
			return
		}
		c.BindEvent(event.ID, event.Title)
	}

	reason, err := h.selection.Increment(r.Context(), c, eventID, sectionID)
	if err != nil {
		writeError(w, err)
		return
	}
	if reason != selection.BlockNone {
		writeMessage(w, http.StatusConflict, blockMessages[reason])
		return
	}
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}

// Decrement handles POST /api/events/{eventID}/sections/{sectionID}/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	sectionID := chi.URLParam(r, "sectionID")

	cartID, c := h.sessionCart(r)
	h.selection.Decrement(c, sectionID)
	writeJSON(w, http.StatusOK, h.view(cartID, c))
}
