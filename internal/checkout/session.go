package checkout

import (
	"context"
	"log"
	"sync"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/models"

	"github.com/google/uuid"
)

// State is the checkout attempt's position in its lifecycle
type State string

const (
	StateSelecting            State = "SELECTING_PAYMENT_METHOD"
	StateCreatingOrder        State = "CREATING_ORDER"
	StateOrderCreated         State = "ORDER_CREATED"
	StateCreatingPayment      State = "CREATING_PAYMENT_INTENT"
	StateAwaitingConfirmation State = "AWAITING_PROVIDER_CONFIRMATION"
	StateCompleted            State = "COMPLETED"
)

// Config carries checkout pricing settings
type Config struct {
	Currency          string
	ServiceFeePercent int
	Description       string
}

// Session sequences one checkout attempt: order creation, then payment
// intent creation, then provider confirmation. The cart snapshot and the
// amount to charge are captured when the session is created, so an
// external cart clear cannot corrupt an in-flight charge.
//
// Transitions follow the state constants above. Order-creation failure
// returns to SELECTING_PAYMENT_METHOD; payment-intent failure stays in
// ORDER_CREATED with the order preserved (the backend expires abandoned
// PENDING orders by TTL, the client never deletes them); provider
// failure keeps AWAITING_PROVIDER_CONFIRMATION and permits retry with
// the same order/payment pairing.
type Session struct {
	mu sync.Mutex

	id          string
	provider    models.PaymentProvider
	token       string
	currency    string
	description string

	// captured at initiation
	eventID  string
	items    []cart.LineItem
	subtotal int
	fee      int
	amount   int

	state     State
	order     *models.Order
	payment   *models.Payment
	lastErr   string
	inFlight  bool
	leaseHeld bool

	cart    *cart.Cart
	backend backend.Service
}

func newSession(c *cart.Cart, svc backend.Service, provider models.PaymentProvider, token string, cfg Config) *Session {
	subtotal := c.TotalAmount()
	fee := subtotal * cfg.ServiceFeePercent / 100
	return &Session{
		id:          uuid.NewString(),
		provider:    provider,
		token:       token,
		currency:    cfg.Currency,
		description: cfg.Description,
		eventID:     c.EventID(),
		items:       c.Items(),
		subtotal:    subtotal,
		fee:         fee,
		amount:      subtotal + fee,
		state:       StateSelecting,
		cart:        c,
		backend:     svc,
	}
}

// ID returns the checkout session identifier
func (s *Session) ID() string { return s.id }

// Begin runs order creation and, on success, advances straight into
// payment-intent creation. Calling Begin again while the first call is
// in flight is rejected, so rapid repeated triggers cannot create two
// orders.
func (s *Session) Begin(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateSelecting || s.inFlight {
		s.mu.Unlock()
		return models.ErrCheckoutInProgress
	}
	if len(s.items) == 0 {
		s.mu.Unlock()
		return models.ErrCartEmpty
	}
	s.state = StateCreatingOrder
	s.inFlight = true
	s.lastErr = ""
	req := s.orderRequestLocked()
	s.mu.Unlock()

	s.acquireLease()

	order, err := s.backend.CreateOrder(ctx, s.token, req)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		s.state = StateSelecting
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.releaseLease()
		log.Printf("checkout %s: order creation failed: %v", s.id, err)
		return err
	}
	s.order = order
	s.state = StateOrderCreated
	s.mu.Unlock()

	log.Printf("checkout %s: order %s created (%d %s)", s.id, order.ID, s.amount, s.currency)
	return s.createPaymentIntent(ctx)
}

func (s *Session) orderRequestLocked() models.OrderCreateRequest {
	items := make([]models.OrderItemRequest, 0, len(s.items))
	for _, li := range s.items {
		items = append(items, models.OrderItemRequest{
			SectionID:      li.SectionID,
			Quantity:       li.Quantity,
			PricePerTicket: li.UnitPrice,
		})
	}
	return models.OrderCreateRequest{
		EventID:     s.eventID,
		Items:       items,
		TotalAmount: s.subtotal,
	}
}

// createPaymentIntent fires at most once per created order: it requires
// an order reference, no existing payment reference, and no call already
// in flight. Re-renders and double-clicks collapse into no-ops.
func (s *Session) createPaymentIntent(ctx context.Context) error {
	s.mu.Lock()
	if s.order == nil {
		s.mu.Unlock()
		return models.ErrNoActiveCheckout
	}
	if s.payment != nil || s.inFlight {
		s.mu.Unlock()
		return nil
	}
	s.state = StateCreatingPayment
	s.inFlight = true
	req := models.PaymentCreateRequest{
		OrderID:     s.order.ID,
		Provider:    s.provider,
		Amount:      s.amount,
		Currency:    s.currency,
		Description: s.description,
	}
	s.mu.Unlock()

	payment, err := s.backend.CreatePaymentIntent(ctx, s.token, req)

	s.mu.Lock()
	s.inFlight = false
	if err != nil {
		// The order stays valid server-side; the user may retry the
		// payment intent without re-creating the order.
		s.state = StateOrderCreated
		s.lastErr = err.Error()
		s.mu.Unlock()
		log.Printf("checkout %s: payment intent failed: %v", s.id, err)
		return err
	}
	if payment.Status == models.PaymentFailed {
		s.state = StateOrderCreated
		s.lastErr = payment.ErrorMessage
		if s.lastErr == "" {
			s.lastErr = "payment could not be created"
		}
		s.mu.Unlock()
		return &models.BackendError{Message: s.LastError()}
	}
	s.payment = payment
	s.state = StateAwaitingConfirmation
	s.lastErr = ""
	s.mu.Unlock()

	log.Printf("checkout %s: payment %s awaiting %s confirmation", s.id, payment.ID, s.provider)
	return nil
}

// RetryPayment re-attempts payment-intent creation after a failure. The
// single-flight guard still applies: if a payment reference already
// exists this is a no-op.
func (s *Session) RetryPayment(ctx context.Context) error {
	return s.createPaymentIntent(ctx)
}

// Confirm relays the provider's external payment reference to the
// backend and finalizes the attempt if the backend reports completion.
func (s *Session) Confirm(ctx context.Context, externalPaymentID string) error {
	s.mu.Lock()
	if s.state != StateAwaitingConfirmation || s.payment == nil {
		s.mu.Unlock()
		return models.ErrNoActiveCheckout
	}
	paymentID := s.payment.ID
	s.mu.Unlock()

	payment, err := s.backend.ConfirmPayment(ctx, s.token, paymentID, externalPaymentID)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return err
	}
	s.applyPaymentUpdate(payment)
	return nil
}

// RefreshStatus polls the backend for the payment's current status and
// applies it. Used by the status endpoint the browser polls.
func (s *Session) RefreshStatus(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateAwaitingConfirmation || s.payment == nil {
		s.mu.Unlock()
		return nil
	}
	paymentID := s.payment.ID
	s.mu.Unlock()

	payment, err := s.backend.GetPaymentStatus(ctx, s.token, paymentID)
	if err != nil {
		return err
	}
	s.applyPaymentUpdate(payment)
	return nil
}

func (s *Session) applyPaymentUpdate(payment *models.Payment) {
	s.mu.Lock()
	if s.state != StateAwaitingConfirmation {
		s.mu.Unlock()
		return
	}
	s.payment = payment
	switch payment.Status {
	case models.PaymentCompleted:
		s.state = StateCompleted
		s.lastErr = ""
		s.mu.Unlock()
		// Terminal success: the purchase exists, the intent is spent.
		s.cart.Clear()
		s.releaseLease()
		log.Printf("checkout %s: payment %s completed", s.id, payment.ID)
		return
	case models.PaymentFailed, models.PaymentCancelled:
		// Surfaced but retryable within the same order/payment pairing
		s.lastErr = payment.ErrorMessage
		if s.lastErr == "" {
			s.lastErr = "payment was not completed"
		}
	}
	s.mu.Unlock()
}

// abandon releases the cart lease without touching the cart contents
func (s *Session) abandon() {
	s.releaseLease()
}

func (s *Session) acquireLease() {
	s.mu.Lock()
	if s.leaseHeld {
		s.mu.Unlock()
		return
	}
	s.leaseHeld = true
	s.mu.Unlock()
	s.cart.AcquireLease()
}

func (s *Session) releaseLease() {
	s.mu.Lock()
	if !s.leaseHeld {
		s.mu.Unlock()
		return
	}
	s.leaseHeld = false
	s.mu.Unlock()
	s.cart.ReleaseLease()
}

// State returns the current lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent user-displayable failure ("" if none)
func (s *Session) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Order returns the created order reference, if any
func (s *Session) Order() *models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// Payment returns the created payment reference, if any
func (s *Session) Payment() *models.Payment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.payment
}

// Snapshot is the client-facing view of a checkout attempt
type Snapshot struct {
	ID           string                 `json:"id"`
	State        State                  `json:"state"`
	Provider     models.PaymentProvider `json:"provider"`
	Subtotal     int                    `json:"subtotal"`
	ServiceFee   int                    `json:"service_fee"`
	Amount       int                    `json:"amount"`
	Currency     string                 `json:"currency"`
	Error        string                 `json:"error,omitempty"`
	Order        *models.Order          `json:"order,omitempty"`
	Payment      *models.Payment        `json:"payment,omitempty"`
	Instructions *Instructions          `json:"instructions,omitempty"`
}

// Snapshot returns the session's current client-facing view, including
// provider confirmation instructions once a payment intent exists.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		State:      s.state,
		Provider:   s.provider,
		Subtotal:   s.subtotal,
		ServiceFee: s.fee,
		Amount:     s.amount,
		Currency:   s.currency,
		Error:      s.lastErr,
		Order:      s.order,
		Payment:    s.payment,
	}
	if s.payment != nil && s.state == StateAwaitingConfirmation {
		if flow, err := FlowFor(s.provider); err == nil {
			if inst, err := flow.Instructions(s.payment); err == nil {
				snap.Instructions = &inst
			}
		}
	}
	return snap
}
