package models

import "time"

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderExpired   OrderStatus = "EXPIRED"
)

// OrderItemRequest is one section line of a checkout request
type OrderItemRequest struct {
	SectionID      string `json:"sectionId"`
	Quantity       int    `json:"quantity"`
	PricePerTicket int    `json:"pricePerTicket"` // in cents
}

// OrderCreateRequest is the payload for converting a cart into a pending order
type OrderCreateRequest struct {
	EventID     string             `json:"eventId"`
	Items       []OrderItemRequest `json:"items"`
	TotalAmount int                `json:"totalAmount"` // in cents
}

// Order represents an order as reported by the backend
type Order struct {
	ID          string      `json:"id"`
	EventID     string      `json:"event_id"`
	EventTitle  string      `json:"event_title"`
	TicketCount int         `json:"ticket_count"`
	TotalAmount int         `json:"total_amount"` // in cents
	Currency    string      `json:"currency"`
	Status      OrderStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
}
