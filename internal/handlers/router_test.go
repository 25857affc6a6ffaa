package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/checkout"
	"event-ticketing-frontend/internal/middleware"
	"event-ticketing-frontend/internal/models"
	"event-ticketing-frontend/internal/selection"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the full router over a mocked backend. The returned
// client carries a cookie jar, so consecutive requests share one browsing
// session and therefore one cart.
func newTestServer(t *testing.T, svc backend.Service) (*httptest.Server, *http.Client) {
	t.Helper()

	registry := cart.NewRegistry(cart.Config{})
	sel := selection.NewService(svc)
	manager := checkout.NewManager(svc, checkout.Config{Currency: "PEN", ServiceFeePercent: 10})
	store := sessions.NewCookieStore([]byte("test-session-key"))

	srv := httptest.NewServer(NewRouter(RouterDeps{
		Events:     NewEventHandler(svc, sel),
		Cart:       NewCartHandler(registry, svc, sel),
		Checkout:   NewCheckoutHandler(manager, registry),
		Orders:     NewOrderHandler(svc),
		Validation: NewValidationHandler(svc),
		Session:    middleware.NewSessionMiddleware(store),
	}))
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return srv, &http.Client{Jar: jar}
}

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func doJSON(t *testing.T, client *http.Client, method, url string, body interface{}, headers map[string]string) (int, testEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func concertEvent() *models.Event {
	return &models.Event{ID: "ev-1", Title: "Concert", Status: models.EventPublished}
}

func concertMap() *models.SeatingMap {
	return &models.SeatingMap{
		EventID: "ev-1",
		Sections: []models.Section{
			{ID: "sec-a", Name: "Platea", Type: models.SectionSeated, Price: 5000, Available: 40},
			{ID: "sec-b", Name: "General", Type: models.SectionStanding, Price: 2500, Available: 0},
		},
	}
}

func TestCartAddAndViewAcrossRequests(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-1").Return(concertEvent(), nil).Once()
	svc.On("GetSeatingMap", mock.Anything, "ev-1").Return(concertMap(), nil)

	srv, client := newTestServer(t, svc)

	status, env := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 2}, nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	// the session cookie keeps the cart across requests
	status, env = doJSON(t, client, http.MethodGet, srv.URL+"/api/cart", nil, nil)
	require.Equal(t, http.StatusOK, status)

	var view struct {
		EventID          string `json:"event_id"`
		TotalQuantity    int    `json:"total_quantity"`
		TotalAmount      int    `json:"total_amount"`
		RemainingSeconds int    `json:"remaining_seconds"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, "ev-1", view.EventID)
	assert.Equal(t, 2, view.TotalQuantity)
	assert.Equal(t, 10000, view.TotalAmount)
	assert.Greater(t, view.RemainingSeconds, 0, "countdown runs once the cart has items")
}

func TestCartAddSoldOutSection(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-1").Return(concertEvent(), nil).Once()
	svc.On("GetSeatingMap", mock.Anything, "ev-1").Return(concertMap(), nil)

	srv, client := newTestServer(t, svc)

	status, env := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-b", "quantity": 1}, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)
	assert.Equal(t, "This section is sold out", env.Message)
}

func TestCartAddValidation(t *testing.T) {
	srv, client := newTestServer(t, new(backend.MockService))

	status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "", "section_id": "sec-a", "quantity": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 0}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// unknown fields are rejected, not ignored
	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 1, "price": 1}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCartUpdateAndRemove(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-1").Return(concertEvent(), nil).Once()
	svc.On("GetSeatingMap", mock.Anything, "ev-1").Return(concertMap(), nil)

	srv, client := newTestServer(t, svc)

	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 2}, nil)

	status, env := doJSON(t, client, http.MethodPatch, srv.URL+"/api/cart/items/sec-a",
		map[string]interface{}{"quantity": 5}, nil)
	require.Equal(t, http.StatusOK, status)
	var view struct {
		TotalQuantity int `json:"total_quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 5, view.TotalQuantity)

	status, env = doJSON(t, client, http.MethodDelete, srv.URL+"/api/cart/items/sec-a", nil, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 0, view.TotalQuantity)
}

func TestIncrementUntilEventLimit(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-1").Return(concertEvent(), nil).Once()
	svc.On("GetSeatingMap", mock.Anything, "ev-1").Return(concertMap(), nil)

	srv, client := newTestServer(t, svc)

	// fill the cart to the per-event ceiling via a clamped add
	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 10}, nil)

	status, env := doJSON(t, client, http.MethodPost,
		srv.URL+"/api/events/ev-1/sections/sec-a/increment", nil, nil)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "You have reached the ticket limit for this event", env.Message)

	// decrement frees one seat and increment works again
	status, _ = doJSON(t, client, http.MethodPost,
		srv.URL+"/api/events/ev-1/sections/sec-a/decrement", nil, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, client, http.MethodPost,
		srv.URL+"/api/events/ev-1/sections/sec-a/increment", nil, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestCheckoutFlow(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-1").Return(concertEvent(), nil).Once()
	svc.On("GetSeatingMap", mock.Anything, "ev-1").Return(concertMap(), nil)
	svc.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(&models.Order{ID: "ord-1", EventID: "ev-1", Status: models.OrderPending}, nil).Once()
	svc.On("CreatePaymentIntent", mock.Anything, "tok", mock.Anything).
		Return(&models.Payment{
			ID: "pay-1", OrderID: "ord-1", Provider: models.ProviderStripe,
			Status: models.PaymentPending, ClientSecret: "pi_secret", PublicKey: "pk_test",
		}, nil).Once()

	srv, client := newTestServer(t, svc)
	auth := map[string]string{"Authorization": "Bearer tok"}

	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 2}, nil)

	status, env := doJSON(t, client, http.MethodPost, srv.URL+"/api/checkout",
		map[string]interface{}{"provider": "STRIPE", "accept_terms": true}, auth)
	require.Equal(t, http.StatusOK, status)

	var snap struct {
		State        string `json:"state"`
		Amount       int    `json:"amount"`
		Instructions *struct {
			Kind         string `json:"kind"`
			ClientSecret string `json:"client_secret"`
		} `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "AWAITING_PROVIDER_CONFIRMATION", snap.State)
	assert.Equal(t, 11000, snap.Amount, "10000 subtotal plus 10% service fee")
	require.NotNil(t, snap.Instructions)
	assert.Equal(t, "HOSTED_FIELDS", snap.Instructions.Kind)
	assert.Equal(t, "pi_secret", snap.Instructions.ClientSecret)

	// the browser polls until the payment completes
	completed := &models.Payment{ID: "pay-1", OrderID: "ord-1", Status: models.PaymentCompleted}
	svc.On("GetPaymentStatus", mock.Anything, "tok", "pay-1").Return(completed, nil).Once()

	status, env = doJSON(t, client, http.MethodGet, srv.URL+"/api/checkout", nil, auth)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "COMPLETED", snap.State)

	// completion emptied the cart
	status, env = doJSON(t, client, http.MethodGet, srv.URL+"/api/cart", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var view struct {
		TotalQuantity int `json:"total_quantity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, 0, view.TotalQuantity)
}

func TestCheckoutRequiresTermsAndItems(t *testing.T) {
	srv, client := newTestServer(t, new(backend.MockService))

	status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/checkout",
		map[string]interface{}{"provider": "STRIPE", "accept_terms": false}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// empty cart
	status, env := doJSON(t, client, http.MethodPost, srv.URL+"/api/checkout",
		map[string]interface{}{"provider": "STRIPE", "accept_terms": true}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, env.Message, "empty")
}

func TestCheckoutStatusWithoutSession(t *testing.T) {
	srv, client := newTestServer(t, new(backend.MockService))

	status, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/checkout", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCheckoutCancelReleasesAttempt(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-1").Return(concertEvent(), nil).Once()
	svc.On("GetSeatingMap", mock.Anything, "ev-1").Return(concertMap(), nil)
	svc.On("CreateOrder", mock.Anything, "tok", mock.Anything).
		Return(&models.Order{ID: "ord-1", Status: models.OrderPending}, nil).Twice()
	svc.On("CreatePaymentIntent", mock.Anything, "tok", mock.Anything).
		Return(&models.Payment{ID: "pay-1", Provider: models.ProviderStripe, Status: models.PaymentPending, ClientSecret: "s"}, nil).Twice()

	srv, client := newTestServer(t, svc)
	auth := map[string]string{"Authorization": "Bearer tok"}

	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 2}, nil)
	doJSON(t, client, http.MethodPost, srv.URL+"/api/checkout",
		map[string]interface{}{"provider": "STRIPE", "accept_terms": true}, auth)

	// a second attempt is blocked while the first is awaiting confirmation
	status, _ := doJSON(t, client, http.MethodPost, srv.URL+"/api/checkout",
		map[string]interface{}{"provider": "STRIPE", "accept_terms": true}, auth)
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, client, http.MethodDelete, srv.URL+"/api/checkout", nil, nil)
	require.Equal(t, http.StatusOK, status)

	// after cancelling, checkout can start over with the same cart
	doJSON(t, client, http.MethodPost, srv.URL+"/api/cart/items",
		map[string]interface{}{"event_id": "ev-1", "section_id": "sec-a", "quantity": 1}, nil)
	status, _ = doJSON(t, client, http.MethodPost, srv.URL+"/api/checkout",
		map[string]interface{}{"provider": "STRIPE", "accept_terms": true}, auth)
	assert.Equal(t, http.StatusOK, status)
}

func TestOrdersRequireAuth(t *testing.T) {
	srv, client := newTestServer(t, new(backend.MockService))

	status, _ := doJSON(t, client, http.MethodGet, srv.URL+"/api/orders", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListMyOrders(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("ListMyOrders", mock.Anything, "tok").Return([]models.Order{
		{ID: "ord-1", EventTitle: "Concert", Status: models.OrderPaid},
	}, nil).Once()

	srv, client := newTestServer(t, svc)

	status, env := doJSON(t, client, http.MethodGet, srv.URL+"/api/orders", nil,
		map[string]string{"Authorization": "Bearer tok"})
	require.Equal(t, http.StatusOK, status)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(env.Data, &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, "ord-1", orders[0].ID)
}

func TestValidateTicket(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("ValidateTicket", mock.Anything, "tok", "qr-abc").Return(&models.TicketValidation{
		Valid: true, TicketID: "tkt-1", EventTitle: "Concert",
	}, nil).Once()

	srv, client := newTestServer(t, svc)

	status, env := doJSON(t, client, http.MethodPost, srv.URL+"/api/tickets/validate",
		map[string]interface{}{"qrHash": "qr-abc"}, map[string]string{"Authorization": "Bearer tok"})
	require.Equal(t, http.StatusOK, status)

	var result models.TicketValidation
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.True(t, result.Valid)
}

func TestBackendErrorPassesThrough(t *testing.T) {
	svc := new(backend.MockService)
	svc.On("GetEvent", mock.Anything, "ev-404").
		Return(nil, &models.BackendError{StatusCode: 404, Message: "event not found"}).Once()

	srv, client := newTestServer(t, svc)

	status, env := doJSON(t, client, http.MethodGet, srv.URL+"/api/events/ev-404", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "event not found", env.Message)
}

func TestHealth(t *testing.T) {
	srv, client := newTestServer(t, new(backend.MockService))

	status, env := doJSON(t, client, http.MethodGet, srv.URL+"/health", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)
}
