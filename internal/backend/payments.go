package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"event-ticketing-frontend/internal/models"
)

type paymentCreateWire struct {
	OrderID     string  `json:"orderId"`
	Provider    string  `json:"provider"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// CreatePaymentIntent begins payment for an existing order. The response
// carries either a client secret (hosted fields) or a checkout URL
// (redirect), depending on the provider.
func (c *Client) CreatePaymentIntent(ctx context.Context, token string, req models.PaymentCreateRequest) (*models.Payment, error) {
	body := paymentCreateWire{
		OrderID:     req.OrderID,
		Provider:    string(req.Provider),
		Amount:      fromCents(req.Amount),
		Currency:    req.Currency,
		Description: req.Description,
	}

	var wire paymentWire
	if err := c.do(ctx, http.MethodPost, "/payments/create-intent", token, body, &wire); err != nil {
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	payment := wire.normalize()
	return &payment, nil
}

// GetPaymentStatus polls the current status of a payment
func (c *Client) GetPaymentStatus(ctx context.Context, token, paymentID string) (*models.Payment, error) {
	var wire paymentWire
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(paymentID)+"/status", token, nil, &wire); err != nil {
		return nil, fmt.Errorf("get payment status %s: %w", paymentID, err)
	}
	payment := wire.normalize()
	return &payment, nil
}

// ConfirmPayment relays the provider's external payment reference so the
// backend can verify and finalize the payment.
func (c *Client) ConfirmPayment(ctx context.Context, token, paymentID, externalPaymentID string) (*models.Payment, error) {
	path := "/payments/" + url.PathEscape(paymentID) + "/confirm?externalPaymentId=" + url.QueryEscape(externalPaymentID)

	var wire paymentWire
	if err := c.do(ctx, http.MethodPost, path, token, nil, &wire); err != nil {
		return nil, fmt.Errorf("confirm payment %s: %w", paymentID, err)
	}
	payment := wire.normalize()
	return &payment, nil
}
