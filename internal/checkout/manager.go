package checkout

import (
	"sync"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/models"
)

// Manager tracks at most one checkout session per browsing session. It
// is constructed at the application root and injected into the handlers.
type Manager struct {
	mu       sync.Mutex
	backend  backend.Service
	cfg      Config
	sessions map[string]*Session
}

// NewManager creates a checkout manager
func NewManager(svc backend.Service, cfg Config) *Manager {
	if cfg.Currency == "" {
		cfg.Currency = "PEN"
	}
	return &Manager{
		backend:  svc,
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Start creates a checkout session for the browsing session, capturing
// the cart snapshot and the amount to charge. An attempt that is past
// method selection and not yet terminal blocks a new one.
func (m *Manager) Start(sessionID string, c *cart.Cart, provider models.PaymentProvider, token string) (*Session, error) {
	if !provider.Valid() {
		return nil, models.ErrUnknownProvider
	}
	if c.TotalQuantity() == 0 {
		return nil, models.ErrCartEmpty
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.sessions[sessionID]; ok {
		switch existing.State() {
		case StateSelecting, StateCompleted:
			// replaceable: the prior attempt never got an order, or finished
		default:
			return nil, models.ErrCheckoutInProgress
		}
	}

	s := newSession(c, m.backend, provider, token, m.cfg)
	m.sessions[sessionID] = s
	return s, nil
}

// Active returns the browsing session's checkout session, if any
func (m *Manager) Active(sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, models.ErrNoActiveCheckout
	}
	return s, nil
}

// Cancel abandons the browsing session's checkout attempt. The cart
// lease is released (applying any deferred expiry clear); an order the
// backend already created stays PENDING there and expires by TTL.
func (m *Manager) Cancel(sessionID string) error {
	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return models.ErrNoActiveCheckout
	}
	s.abandon()
	return nil
}
