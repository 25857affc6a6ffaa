package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"event-ticketing-frontend/internal/models"
)

// Config represents the ticketing backend connection settings
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Service is the full capability set this front-end consumes from the
// ticketing backend. *Client implements it; tests substitute a mock.
type Service interface {
	ListEvents(ctx context.Context, filters models.EventFilters) ([]models.Event, int, error)
	GetEvent(ctx context.Context, eventID string) (*models.Event, error)
	GetSeatingMap(ctx context.Context, eventID string) (*models.SeatingMap, error)
	CreateOrder(ctx context.Context, token string, req models.OrderCreateRequest) (*models.Order, error)
	ListMyOrders(ctx context.Context, token string) ([]models.Order, error)
	GetOrder(ctx context.Context, token, orderID string) (*models.Order, error)
	CreatePaymentIntent(ctx context.Context, token string, req models.PaymentCreateRequest) (*models.Payment, error)
	GetPaymentStatus(ctx context.Context, token, paymentID string) (*models.Payment, error)
	ConfirmPayment(ctx context.Context, token, paymentID, externalPaymentID string) (*models.Payment, error)
	ValidateTicket(ctx context.Context, token, qrHash string) (*models.TicketValidation, error)
}

// Client talks JSON over HTTPS to the ticketing backend
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a backend API client
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// envelope is the backend's uniform response wrapper
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// do performs one backend call: marshals the body, attaches the caller's
// bearer token, and unwraps the response envelope into out.
func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 || !env.Success {
		return &models.BackendError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response data: %w", err)
		}
	}
	return nil
}
