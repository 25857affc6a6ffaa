package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"event-ticketing-frontend/internal/models"
)

type orderItemRequestWire struct {
	SectionID      string  `json:"sectionId"`
	Quantity       int     `json:"quantity"`
	PricePerTicket float64 `json:"pricePerTicket"`
}

type orderCreateWire struct {
	EventID     string                 `json:"eventId"`
	Items       []orderItemRequestWire `json:"items"`
	TotalAmount float64                `json:"totalAmount"`
}

// CreateOrder converts a cart into a pending order. Amounts cross the
// wire as decimals, the backend's native money shape.
func (c *Client) CreateOrder(ctx context.Context, token string, req models.OrderCreateRequest) (*models.Order, error) {
	items := make([]orderItemRequestWire, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, orderItemRequestWire{
			SectionID:      item.SectionID,
			Quantity:       item.Quantity,
			PricePerTicket: fromCents(item.PricePerTicket),
		})
	}
	body := orderCreateWire{
		EventID:     req.EventID,
		Items:       items,
		TotalAmount: fromCents(req.TotalAmount),
	}

	var wire orderWire
	if err := c.do(ctx, http.MethodPost, "/orders/checkout", token, body, &wire); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order := wire.normalize()
	return &order, nil
}

// ListMyOrders fetches the authenticated user's order history
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]models.Order, error) {
	var wires []orderWire
	if err := c.do(ctx, http.MethodGet, "/orders", token, nil, &wires); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]models.Order, 0, len(wires))
	for _, w := range wires {
		orders = append(orders, w.normalize())
	}
	return orders, nil
}

// GetOrder fetches one of the user's orders by ID
func (c *Client) GetOrder(ctx context.Context, token, orderID string) (*models.Order, error) {
	var wire orderWire
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), token, nil, &wire); err != nil {
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	order := wire.normalize()
	return &order, nil
}
