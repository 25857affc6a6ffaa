package models

import "time"

// EventStatus represents the publication status of an event
type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCancelled EventStatus = "CANCELLED"
	EventFinished  EventStatus = "FINISHED"
)

// Event is the canonical event shape used everywhere downstream of the
// backend client. The client's normalization layer is responsible for
// folding the backend's loosely-typed date/price fields into this form.
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	VenueName   string      `json:"venue_name"`
	City        string      `json:"city"`
	ImageURL    string      `json:"image_url"`
	StartsAt    time.Time   `json:"starts_at"`
	EndsAt      time.Time   `json:"ends_at"`
	Status      EventStatus `json:"status"`
	MinPrice    int         `json:"min_price"` // in cents
	MaxPrice    int         `json:"max_price"` // in cents
}

// EventFilters represents search filters for the event listing
type EventFilters struct {
	Query    string
	Category string
	City     string
	Page     int
	PageSize int
}
