package cart

import (
	"log"
	"sync"
	"time"
)

// Registry owns one cart per browsing session, plus the reservation timer
// that watches each cart's hold window. It is constructed once at the
// application root and injected into the handlers, so there is no hidden
// global cart state.
type Registry struct {
	mu        sync.Mutex
	cfg       Config
	carts     map[string]*entry
	tickEvery time.Duration
}

type entry struct {
	cart  *Cart
	timer *ReservationTimer
}

// NewRegistry creates an empty registry; cfg applies to every cart it creates
func NewRegistry(cfg Config) *Registry {
	cfg.fill()
	return &Registry{
		cfg:       cfg,
		carts:     make(map[string]*entry),
		tickEvery: time.Second,
	}
}

// NewRegistryAt is NewRegistry with an injected timer tick interval, for tests
func NewRegistryAt(cfg Config, tickEvery time.Duration) *Registry {
	r := NewRegistry(cfg)
	if tickEvery > 0 {
		r.tickEvery = tickEvery
	}
	return r
}

// Get returns the session's cart, creating it on first use. The created
// cart is wired to a reservation timer whose expiry callback clears the
// cart (deferred while a checkout lease is held).
func (r *Registry) Get(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.carts[sessionID]; ok {
		return e.cart
	}

	c := New(r.cfg)
	t := NewReservationTimerAt(func() {
		if c.Expire() {
			log.Printf("cart: reservation expired for session %s, cart cleared", sessionID)
		} else {
			log.Printf("cart: reservation expired for session %s, clear deferred to checkout lease", sessionID)
		}
	}, r.tickEvery, r.cfg.Now)
	c.OnHoldChange(t.Arm)

	r.carts[sessionID] = &entry{cart: c, timer: t}
	return c
}

// Timer returns the session's reservation timer, if the session has a cart
func (r *Registry) Timer(sessionID string) *ReservationTimer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.carts[sessionID]; ok {
		return e.timer
	}
	return nil
}

// Drop removes a session's cart and stops its timer
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	e, ok := r.carts[sessionID]
	if ok {
		delete(r.carts, sessionID)
	}
	r.mu.Unlock()
	if ok {
		e.timer.Stop()
	}
}
