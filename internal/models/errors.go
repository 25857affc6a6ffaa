package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound      = errors.New("event not found")
	ErrSectionNotFound    = errors.New("section not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrUnknownProvider    = errors.New("unknown payment provider")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCheckoutInProgress = errors.New("checkout already in progress")
	ErrNoActiveCheckout   = errors.New("no active checkout")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// BackendError carries a user-displayable message returned by the ticketing
// backend alongside the HTTP status it answered with.
type BackendError struct {
	StatusCode int
	Message    string
}

func (e *BackendError) Error() string {
	if e.Message == "" {
		return "backend request failed"
	}
	return e.Message
}
