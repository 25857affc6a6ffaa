package backend

import (
	"context"
	"fmt"
	"net/http"

	"event-ticketing-frontend/internal/models"
)

// ValidateTicket marks a scanned ticket as used via its QR hash
func (c *Client) ValidateTicket(ctx context.Context, token, qrHash string) (*models.TicketValidation, error) {
	body := models.TicketValidationRequest{QRHash: qrHash}

	var wire ticketValidationWire
	if err := c.do(ctx, http.MethodPost, "/tickets/validate", token, body, &wire); err != nil {
		return nil, fmt.Errorf("validate ticket: %w", err)
	}
	v := wire.normalize()
	return &v, nil
}
