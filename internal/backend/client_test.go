package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"event-ticketing-frontend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(Config{BaseURL: srv.URL}), srv
}

func writeEnvelope(w http.ResponseWriter, status int, success bool, data interface{}, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": success,
		"data":    data,
		"message": message,
	})
}

func TestCreateOrderSendsDecimalsAndBearer(t *testing.T) {
	var captured struct {
		method string
		path   string
		auth   string
		body   map[string]interface{}
	}
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		captured.method = r.Method
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&captured.body)
		writeEnvelope(w, http.StatusCreated, true, map[string]interface{}{
			"id":          "ord-1",
			"eventId":     "ev-1",
			"eventTitle":  "Concert",
			"ticketCount": 3,
			"totalAmount": 175.00,
			"currency":    "PEN",
			"status":      "PENDING",
			"createdAt":   "2026-03-14T20:00:00Z",
		}, "")
	})
	defer srv.Close()

	order, err := client.CreateOrder(context.Background(), "tok-abc", models.OrderCreateRequest{
		EventID: "ev-1",
		Items: []models.OrderItemRequest{
			{SectionID: "sec-a", Quantity: 2, PricePerTicket: 5000},
			{SectionID: "sec-b", Quantity: 1, PricePerTicket: 7500},
		},
		TotalAmount: 17500,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.method)
	assert.Equal(t, "/orders/checkout", captured.path)
	assert.Equal(t, "Bearer tok-abc", captured.auth)
	// cents become decimals on the wire
	assert.Equal(t, 175.0, captured.body["totalAmount"])
	items := captured.body["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, 50.0, first["pricePerTicket"])

	// and decimals come back as cents
	assert.Equal(t, "ord-1", order.ID)
	assert.Equal(t, 17500, order.TotalAmount)
	assert.Equal(t, models.OrderPending, order.Status)
}

func TestBackendErrorSurfacesMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, false, nil, "section sold out")
	})
	defer srv.Close()

	_, err := client.CreateOrder(context.Background(), "tok", models.OrderCreateRequest{EventID: "ev-1"})
	require.Error(t, err)

	var be *models.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusUnprocessableEntity, be.StatusCode)
	assert.Equal(t, "section sold out", be.Message)
}

func TestEnvelopeSuccessFalseIsError(t *testing.T) {
	// HTTP 200 with success=false still counts as a failure
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusOK, false, nil, "order expired")
	})
	defer srv.Close()

	_, err := client.GetOrder(context.Background(), "tok", "ord-1")
	var be *models.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "order expired", be.Message)
}

func TestUnreachableBackendWrapsSentinel(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	client := NewClient(Config{BaseURL: srv.URL})
	srv.Close() // connection refused from here on

	_, err := client.GetEvent(context.Background(), "ev-1")
	assert.ErrorIs(t, err, models.ErrBackendUnavailable)
}

func TestListEventsBuildsQuery(t *testing.T) {
	var query string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeEnvelope(w, http.StatusOK, true, map[string]interface{}{
			"events": []map[string]interface{}{
				{"id": "ev-1", "title": "Concert", "startDate": "2026-06-01T21:00:00Z", "status": "PUBLISHED", "minPrice": 25.0, "maxPrice": 90.0},
			},
			"total": 14,
		}, "")
	})
	defer srv.Close()

	events, total, err := client.ListEvents(context.Background(), models.EventFilters{
		Query:    "rock",
		City:     "Lima",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)
	require.Len(t, events, 1)

	assert.Equal(t, 14, total)
	assert.Equal(t, 2500, events[0].MinPrice)
	assert.Equal(t, 9000, events[0].MaxPrice)
	assert.Contains(t, query, "q=rock")
	assert.Contains(t, query, "city=Lima")
	assert.Contains(t, query, "page=2")
	assert.Contains(t, query, "pageSize=10")
}

func TestGetSeatingMapFillsEventID(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/events/ev-1/seating-map", r.URL.Path)
		writeEnvelope(w, http.StatusOK, true, map[string]interface{}{
			"venueName": "Gran Teatro",
			"sections": []map[string]interface{}{
				{"id": "sec-a", "name": "Platea", "type": "SEATED", "price": 50.0, "capacity": 100, "available": 40},
			},
			"totalSeats": 100,
		}, "")
	})
	defer srv.Close()

	m, err := client.GetSeatingMap(context.Background(), "ev-1")
	require.NoError(t, err)

	// response omitted eventId; the requested ID is backfilled
	assert.Equal(t, "ev-1", m.EventID)
	require.Len(t, m.Sections, 1)
	assert.Equal(t, 5000, m.Sections[0].Price)
}

func TestConfirmPaymentQueryParameter(t *testing.T) {
	var raw string
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		raw = r.URL.String()
		writeEnvelope(w, http.StatusOK, true, map[string]interface{}{
			"id":      "pay-1",
			"orderId": "ord-1",
			"status":  "COMPLETED",
			"amount":  110.0,
		}, "")
	})
	defer srv.Close()

	p, err := client.ConfirmPayment(context.Background(), "tok", "pay-1", "pi_3ab&c")
	require.NoError(t, err)

	assert.Equal(t, "/payments/pay-1/confirm?externalPaymentId=pi_3ab%26c", raw)
	assert.Equal(t, models.PaymentCompleted, p.Status)
	assert.Equal(t, 11000, p.Amount)
}
