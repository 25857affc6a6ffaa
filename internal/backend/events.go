package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"event-ticketing-frontend/internal/models"
)

type eventListWire struct {
	Events []eventWire `json:"events"`
	Total  int         `json:"total"`
}

// ListEvents fetches the public event listing with optional filters.
// Returns the page of events plus the total match count.
func (c *Client) ListEvents(ctx context.Context, filters models.EventFilters) ([]models.Event, int, error) {
	q := url.Values{}
	if filters.Query != "" {
		q.Set("q", filters.Query)
	}
	if filters.Category != "" {
		q.Set("category", filters.Category)
	}
	if filters.City != "" {
		q.Set("city", filters.City)
	}
	if filters.Page > 0 {
		q.Set("page", strconv.Itoa(filters.Page))
	}
	if filters.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(filters.PageSize))
	}

	path := "/events"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var wire eventListWire
	if err := c.do(ctx, http.MethodGet, path, "", nil, &wire); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}

	events := make([]models.Event, 0, len(wire.Events))
	for _, w := range wire.Events {
		events = append(events, w.normalize())
	}
	return events, wire.Total, nil
}

// GetEvent fetches one event by ID
func (c *Client) GetEvent(ctx context.Context, eventID string) (*models.Event, error) {
	var wire eventWire
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID), "", nil, &wire); err != nil {
		return nil, fmt.Errorf("get event %s: %w", eventID, err)
	}
	event := wire.normalize()
	return &event, nil
}

// GetSeatingMap fetches section definitions and live availability for an
// event. Counts are advisory and can go stale; the backend re-checks at
// order time.
func (c *Client) GetSeatingMap(ctx context.Context, eventID string) (*models.SeatingMap, error) {
	var wire seatingMapWire
	if err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(eventID)+"/seating-map", "", nil, &wire); err != nil {
		return nil, fmt.Errorf("get seating map for %s: %w", eventID, err)
	}
	m := wire.normalize()
	if m.EventID == "" {
		m.EventID = eventID
	}
	return &m, nil
}
