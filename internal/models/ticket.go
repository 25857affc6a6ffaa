package models

import "time"

// TicketValidationRequest marks a ticket as used via its QR hash
type TicketValidationRequest struct {
	QRHash string `json:"qrHash"`
}

// TicketValidation is the backend's verdict on a scanned ticket
type TicketValidation struct {
	Valid        bool       `json:"valid"`
	TicketID     string     `json:"ticket_id"`
	EventTitle   string     `json:"event_title"`
	SectionName  string     `json:"section_name"`
	AttendeeName string     `json:"attendee_name"`
	Message      string     `json:"message"`
	ValidatedAt  *time.Time `json:"validated_at,omitempty"`
}
