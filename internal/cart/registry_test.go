package cart

import (
	"testing"
	"time"

	"event-ticketing-frontend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetCreatesOnce(t *testing.T) {
	r := NewRegistry(Config{})

	c1 := r.Get("session-1")
	c2 := r.Get("session-1")
	other := r.Get("session-2")

	assert.Same(t, c1, c2)
	assert.NotSame(t, c1, other)
}

func TestRegistryDrop(t *testing.T) {
	r := NewRegistry(Config{})

	c := r.Get("session-1")
	c.BindEvent("ev-1", "Concert")
	c.AddLineItem("sec-a", "A", models.SectionSeated, 1, 5000, "")

	r.Drop("session-1")
	assert.Nil(t, r.Timer("session-1"))

	fresh := r.Get("session-1")
	assert.Equal(t, 0, fresh.TotalQuantity())
}

func TestRegistryTimerClearsCartOnExpiry(t *testing.T) {
	r := NewRegistryAt(Config{HoldDuration: 30 * time.Millisecond}, 10*time.Millisecond)

	c := r.Get("session-1")
	c.BindEvent("ev-1", "Concert")
	c.AddLineItem("sec-a", "A", models.SectionSeated, 2, 5000, "")

	timer := r.Timer("session-1")
	require.NotNil(t, timer)
	assert.Equal(t, TimerRunning, timer.State())

	// past the hold window the expiry callback empties the cart
	assert.Eventually(t, func() bool {
		return c.TotalQuantity() == 0 && c.Expiry().IsZero()
	}, 500*time.Millisecond, 10*time.Millisecond)
}

func TestRegistryTimerDisarmedWhenCartEmpties(t *testing.T) {
	r := NewRegistryAt(Config{HoldDuration: time.Minute}, 10*time.Millisecond)

	c := r.Get("session-1")
	c.BindEvent("ev-1", "Concert")
	c.AddLineItem("sec-a", "A", models.SectionSeated, 1, 5000, "")
	require.Equal(t, TimerRunning, r.Timer("session-1").State())

	c.RemoveLineItem("sec-a")
	assert.Equal(t, TimerIdle, r.Timer("session-1").State())
}
