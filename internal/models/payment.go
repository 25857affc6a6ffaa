package models

import "time"

// PaymentProvider is the closed set of supported payment providers
type PaymentProvider string

const (
	ProviderStripe      PaymentProvider = "STRIPE"
	ProviderMercadoPago PaymentProvider = "MERCADOPAGO"
)

// Valid reports whether p is one of the supported providers
func (p PaymentProvider) Valid() bool {
	return p == ProviderStripe || p == ProviderMercadoPago
}

// PaymentStatus represents the lifecycle status of a payment
type PaymentStatus string

const (
	PaymentPending    PaymentStatus = "PENDING"
	PaymentProcessing PaymentStatus = "PROCESSING"
	PaymentCompleted  PaymentStatus = "COMPLETED"
	PaymentFailed     PaymentStatus = "FAILED"
	PaymentCancelled  PaymentStatus = "CANCELLED"
	PaymentRefunded   PaymentStatus = "REFUNDED"
)

// Terminal reports whether the payment will not change state again
func (s PaymentStatus) Terminal() bool {
	switch s {
	case PaymentCompleted, PaymentFailed, PaymentCancelled, PaymentRefunded:
		return true
	}
	return false
}

// PaymentCreateRequest begins payment for an existing order
type PaymentCreateRequest struct {
	OrderID     string          `json:"orderId"`
	Provider    PaymentProvider `json:"provider"`
	Amount      int             `json:"amount"` // in cents
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
}

// Payment represents a payment intent as reported by the backend. Exactly
// one of ClientSecret (hosted fields) or CheckoutURL (redirect) is set,
// depending on the provider.
type Payment struct {
	ID           string          `json:"id"`
	OrderID      string          `json:"order_id"`
	Provider     PaymentProvider `json:"provider"`
	Status       PaymentStatus   `json:"status"`
	Amount       int             `json:"amount"` // in cents
	Currency     string          `json:"currency"`
	ClientSecret string          `json:"client_secret,omitempty"`
	CheckoutURL  string          `json:"checkout_url,omitempty"`
	PublicKey    string          `json:"public_key,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}
