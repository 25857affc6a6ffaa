package selection

import (
	"context"
	"fmt"
	"sync"
	"time"

	"event-ticketing-frontend/internal/backend"
	"event-ticketing-frontend/internal/cart"
	"event-ticketing-frontend/internal/models"
)

// BlockReason says why an increment was rejected, so the view layer can
// present it. The cart container computes the ceilings; this service
// only adds the availability hard-block and names the reason.
type BlockReason string

const (
	BlockNone         BlockReason = ""
	BlockSoldOut      BlockReason = "SOLD_OUT"
	BlockEventLimit   BlockReason = "EVENT_LIMIT"
	BlockSectionLimit BlockReason = "SECTION_LIMIT"
)

const defaultMapTTL = 30 * time.Second

type cachedMap struct {
	m         *models.SeatingMap
	fetchedAt time.Time
}

// Service translates "I want N tickets from section S" into cart
// mutations, against a cached seating-map snapshot per event.
type Service struct {
	backend backend.Service

	mu   sync.Mutex
	maps map[string]cachedMap
	ttl  time.Duration
	now  func() time.Time
}

// NewService creates a selection service over the backend client
func NewService(svc backend.Service) *Service {
	return &Service{
		backend: svc,
		maps:    make(map[string]cachedMap),
		ttl:     defaultMapTTL,
		now:     time.Now,
	}
}

// SeatingMap returns the event's seating map, refetching when the cached
// snapshot is older than the TTL or refresh is forced.
func (s *Service) SeatingMap(ctx context.Context, eventID string, refresh bool) (*models.SeatingMap, error) {
	s.mu.Lock()
	cached, ok := s.maps[eventID]
	fresh := ok && s.now().Sub(cached.fetchedAt) < s.ttl
	s.mu.Unlock()

	if fresh && !refresh {
		return cached.m, nil
	}

	m, err := s.backend.GetSeatingMap(ctx, eventID)
	if err != nil {
		if ok {
			// stale snapshot beats no snapshot; backend re-checks at order time
			return cached.m, nil
		}
		return nil, fmt.Errorf("seating map: %w", err)
	}

	s.mu.Lock()
	s.maps[eventID] = cachedMap{m: m, fetchedAt: s.now()}
	s.mu.Unlock()
	return m, nil
}

// Increment requests one more ticket for a section. A section with zero
// remaining availability is a hard block regardless of cart-side
// ceilings. The cart must already be bound to the event.
func (s *Service) Increment(ctx context.Context, c *cart.Cart, eventID, sectionID string) (BlockReason, error) {
	m, err := s.SeatingMap(ctx, eventID, false)
	if err != nil {
		return BlockNone, err
	}
	sec := m.SectionByID(sectionID)
	if sec == nil {
		return BlockNone, models.ErrSectionNotFound
	}
	if sec.Available <= 0 {
		return BlockSoldOut, nil
	}

	added := c.AddLineItem(sec.ID, sec.Name, sec.Type, 1, sec.Price, sec.Color)
	if added > 0 {
		return BlockNone, nil
	}
	if c.TotalQuantity() >= c.PerEventMax() {
		return BlockEventLimit, nil
	}
	return BlockSectionLimit, nil
}

// Decrement removes one ticket for a section; reaching zero removes the
// line item (and an emptied cart releases its hold).
func (s *Service) Decrement(c *cart.Cart, sectionID string) {
	qty := c.SectionQuantity(sectionID)
	if qty <= 1 {
		c.RemoveLineItem(sectionID)
		return
	}
	c.SetLineItemQuantity(sectionID, qty-1)
}
