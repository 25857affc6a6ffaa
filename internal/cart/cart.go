package cart

import (
	"fmt"
	"sync"
	"time"

	"event-ticketing-frontend/internal/models"
)

// Default ceilings and hold window, matching the backend's own limits
const (
	DefaultPerSectionMax = 6
	DefaultPerEventMax   = 6
	DefaultHoldDuration  = 10 * time.Minute
)

// LineItem is one section's worth of selected tickets. At most one line
// item exists per section within a cart lifetime.
type LineItem struct {
	ID          string             `json:"id"`
	SectionID   string             `json:"section_id"`
	SectionName string             `json:"section_name"`
	Type        models.SectionType `json:"type"`
	Quantity    int                `json:"quantity"`
	UnitPrice   int                `json:"unit_price"` // in cents
	Color       string             `json:"color,omitempty"`
}

// Subtotal returns quantity times unit price, in cents
func (li LineItem) Subtotal() int {
	return li.Quantity * li.UnitPrice
}

// Config controls a cart's ceilings and hold window. Zero values fall
// back to the defaults above.
type Config struct {
	PerSectionMax int
	PerEventMax   int
	HoldDuration  time.Duration
	Now           func() time.Time
}

func (c *Config) fill() {
	if c.PerSectionMax <= 0 {
		c.PerSectionMax = DefaultPerSectionMax
	}
	if c.PerEventMax <= 0 {
		c.PerEventMax = DefaultPerEventMax
	}
	if c.HoldDuration <= 0 {
		c.HoldDuration = DefaultHoldDuration
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Cart is the sole source of truth for what the user intends to buy and
// until when that intent is honored. All quantity ceilings are enforced
// here: callers never see an error for exceeding a soft limit, the add is
// clamped and the applied delta returned. The authoritative limit check
// still happens backend-side at order creation.
//
// A cart holds items for at most one event at a time. The reservation
// window is armed exactly once per empty-to-non-empty transition and is
// never extended by later adds.
type Cart struct {
	mu sync.Mutex

	cfg        Config
	eventID    string
	eventTitle string
	items      []LineItem
	expiry     time.Time // zero means no active hold

	// checkout lease bookkeeping: an expiry-driven clear observed while
	// a checkout attempt is in flight is deferred until lease release
	leases        int
	deferredClear bool

	// onHoldChange is invoked (outside the lock) whenever the hold
	// window is armed or released, with the new expiry (zero = released)
	onHoldChange func(expiry time.Time)
}

// New creates an empty cart
func New(cfg Config) *Cart {
	cfg.fill()
	return &Cart{cfg: cfg}
}

// OnHoldChange registers the hold-window observer. Used by the registry
// to arm and stop the session's reservation timer.
func (c *Cart) OnHoldChange(fn func(expiry time.Time)) {
	c.mu.Lock()
	c.onHoldChange = fn
	c.mu.Unlock()
}

func (c *Cart) notifyHold(expiry time.Time) {
	if c.onHoldChange != nil {
		c.onHoldChange(expiry)
	}
}

// BindEvent ties the cart to an event. Re-binding the same event is a
// no-op so an in-progress selection survives page revisits. Binding a
// different event while items exist forces a full reset first: a cart
// cannot hold tickets from two events.
func (c *Cart) BindEvent(eventID, eventTitle string) {
	c.mu.Lock()
	if c.eventID == eventID {
		c.mu.Unlock()
		return
	}
	cleared := false
	if c.eventID != "" && len(c.items) > 0 {
		c.clearLocked()
		cleared = true
	}
	c.eventID = eventID
	c.eventTitle = eventTitle
	c.mu.Unlock()
	if cleared {
		c.notifyHold(time.Time{})
	}
}

// AddLineItem adds quantity tickets for a section, creating the line item
// if needed. The add is clamped against both the per-section and the
// per-event ceiling; the applied delta is returned (0 means fully
// blocked). Adding to an empty cart arms the reservation window.
func (c *Cart) AddLineItem(sectionID, sectionName string, sectionType models.SectionType, quantity, unitPrice int, color string) int {
	if quantity <= 0 {
		return 0
	}

	c.mu.Lock()
	wasEmpty := len(c.items) == 0

	headroom := c.cfg.PerEventMax - c.totalQuantityLocked()
	if headroom < quantity {
		quantity = headroom
	}

	var item *LineItem
	for i := range c.items {
		if c.items[i].SectionID == sectionID {
			item = &c.items[i]
			break
		}
	}

	added := 0
	if item != nil {
		room := c.cfg.PerSectionMax - item.Quantity
		if quantity > room {
			quantity = room
		}
		if quantity > 0 {
			item.Quantity += quantity
			added = quantity
		}
	} else {
		if quantity > c.cfg.PerSectionMax {
			quantity = c.cfg.PerSectionMax
		}
		if quantity > 0 {
			c.items = append(c.items, LineItem{
				ID:          fmt.Sprintf("%s-%d", sectionID, c.cfg.Now().UnixNano()),
				SectionID:   sectionID,
				SectionName: sectionName,
				Type:        sectionType,
				Quantity:    quantity,
				UnitPrice:   unitPrice,
				Color:       color,
			})
			added = quantity
		}
	}

	armed := false
	if wasEmpty && len(c.items) > 0 {
		c.expiry = c.cfg.Now().Add(c.cfg.HoldDuration)
		armed = true
	}
	expiry := c.expiry
	c.mu.Unlock()

	if armed {
		c.notifyHold(expiry)
	}
	return added
}

// SetLineItemQuantity updates a line item in place, clamped to both
// ceilings. A quantity of zero or less removes the item. No-op if the
// section has no line item.
func (c *Cart) SetLineItemQuantity(sectionID string, quantity int) {
	if quantity <= 0 {
		c.RemoveLineItem(sectionID)
		return
	}

	c.mu.Lock()
	for i := range c.items {
		if c.items[i].SectionID != sectionID {
			continue
		}
		if quantity > c.cfg.PerSectionMax {
			quantity = c.cfg.PerSectionMax
		}
		ceiling := c.items[i].Quantity + (c.cfg.PerEventMax - c.totalQuantityLocked())
		if quantity > ceiling {
			quantity = ceiling
		}
		c.items[i].Quantity = quantity
		break
	}
	c.mu.Unlock()
}

// RemoveLineItem deletes the section's line item if present. Emptying the
// cart releases the hold.
func (c *Cart) RemoveLineItem(sectionID string) {
	c.mu.Lock()
	for i := range c.items {
		if c.items[i].SectionID == sectionID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	released := false
	if len(c.items) == 0 && !c.expiry.IsZero() {
		c.expiry = time.Time{}
		released = true
	}
	c.mu.Unlock()
	if released {
		c.notifyHold(time.Time{})
	}
}

// Clear empties the cart and releases the hold unconditionally. Idempotent.
func (c *Cart) Clear() {
	c.mu.Lock()
	hadHold := !c.expiry.IsZero()
	c.clearLocked()
	c.mu.Unlock()
	if hadHold {
		c.notifyHold(time.Time{})
	}
}

func (c *Cart) clearLocked() {
	c.items = nil
	c.expiry = time.Time{}
	c.deferredClear = false
}

// Expire is the reservation-timer callback target: it clears the cart
// unless a checkout lease is held, in which case the clear is deferred to
// lease release. Returns true if the cart was cleared immediately.
func (c *Cart) Expire() bool {
	c.mu.Lock()
	if c.leases > 0 {
		c.deferredClear = true
		c.mu.Unlock()
		return false
	}
	hadHold := !c.expiry.IsZero()
	c.clearLocked()
	c.mu.Unlock()
	if hadHold {
		c.notifyHold(time.Time{})
	}
	return true
}

// AcquireLease marks a checkout attempt in flight. While any lease is
// held, an expiry-driven clear is deferred rather than applied, so a
// payment in flight is never interrupted by the client-side timer.
func (c *Cart) AcquireLease() {
	c.mu.Lock()
	c.leases++
	c.mu.Unlock()
}

// ReleaseLease ends a checkout attempt. If an expiry fired while leased,
// the deferred clear is applied now.
func (c *Cart) ReleaseLease() {
	c.mu.Lock()
	if c.leases > 0 {
		c.leases--
	}
	cleared := false
	if c.leases == 0 && c.deferredClear {
		c.clearLocked()
		cleared = true
	}
	c.mu.Unlock()
	if cleared {
		c.notifyHold(time.Time{})
	}
}

// TotalAmount returns the sum of quantity times unit price over all line
// items, in cents. Recomputed on demand.
func (c *Cart) TotalAmount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := 0
	for _, item := range c.items {
		total += item.Subtotal()
	}
	return total
}

// TotalQuantity returns the sum of quantities over all line items
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalQuantityLocked()
}

func (c *Cart) totalQuantityLocked() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

// SectionQuantity returns the current quantity for one section (0 if absent)
func (c *Cart) SectionQuantity(sectionID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range c.items {
		if item.SectionID == sectionID {
			return item.Quantity
		}
	}
	return 0
}

// IsExpired reports whether the hold window has elapsed. It never mutates
// the cart: reacting to expiry is the reservation timer's job.
func (c *Cart) IsExpired() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.expiry.IsZero() && c.cfg.Now().After(c.expiry)
}

// Items returns a copy of the current line items
func (c *Cart) Items() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]LineItem, len(c.items))
	copy(items, c.items)
	return items
}

// Expiry returns the hold expiry instant (zero if no active hold)
func (c *Cart) Expiry() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expiry
}

// EventID returns the bound event identifier ("" if unbound)
func (c *Cart) EventID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventID
}

// EventTitle returns the bound event's display title
func (c *Cart) EventTitle() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eventTitle
}

// PerSectionMax returns the per-section quantity ceiling
func (c *Cart) PerSectionMax() int { return c.cfg.PerSectionMax }

// PerEventMax returns the per-event quantity ceiling
func (c *Cart) PerEventMax() int { return c.cfg.PerEventMax }
