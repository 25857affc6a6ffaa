package cart

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Timescale here is compressed: a 10ms tick stands in for the production
// 1s tick, so "fires once within the window" stays observable without a
// multi-second test.

func TestTimerFiresExactlyOnce(t *testing.T) {
	var fired int32
	timer := NewReservationTimerAt(func() { atomic.AddInt32(&fired, 1) }, 10*time.Millisecond, nil)

	timer.Arm(time.Now().Add(50 * time.Millisecond))

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired), "must not fire before expiry")

	time.Sleep(120 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired), "must fire exactly once")
	assert.Equal(t, TimerFired, timer.State())

	// ticks after firing do nothing
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
}

func TestTimerRearmResetsFiredFlag(t *testing.T) {
	var fired int32
	timer := NewReservationTimerAt(func() { atomic.AddInt32(&fired, 1) }, 5*time.Millisecond, nil)

	timer.Arm(time.Now().Add(20 * time.Millisecond))
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))

	// a new, later expiry re-arms the one-shot
	timer.Arm(time.Now().Add(20 * time.Millisecond))
	assert.Equal(t, TimerRunning, timer.State())
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fired))
}

func TestTimerIdleWithoutExpiry(t *testing.T) {
	var fired int32
	timer := NewReservationTimerAt(func() { atomic.AddInt32(&fired, 1) }, 5*time.Millisecond, nil)

	assert.Equal(t, TimerIdle, timer.State())
	assert.Equal(t, 0, timer.Remaining())

	// zero expiry is a Stop
	timer.Arm(time.Time{})
	assert.Equal(t, TimerIdle, timer.State())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
}

func TestTimerStopPreventsFiring(t *testing.T) {
	var fired int32
	timer := NewReservationTimerAt(func() { atomic.AddInt32(&fired, 1) }, 5*time.Millisecond, nil)

	timer.Arm(time.Now().Add(30 * time.Millisecond))
	timer.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), atomic.LoadInt32(&fired))
	assert.Equal(t, TimerIdle, timer.State())
}

func TestTimerRemaining(t *testing.T) {
	now := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	timer := NewReservationTimerAt(nil, time.Hour, func() time.Time { return now })

	timer.Arm(now.Add(9*time.Minute + 59*time.Second + 500*time.Millisecond))
	assert.Equal(t, 599, timer.Remaining(), "remaining floors to whole seconds")

	timer.Stop()
	assert.Equal(t, 0, timer.Remaining())
}

func TestTimerFiresImmediatelyOnPastExpiry(t *testing.T) {
	var fired int32
	timer := NewReservationTimerAt(func() { atomic.AddInt32(&fired, 1) }, time.Hour, nil)

	// expiry already in the past: the arm-time check fires synchronously
	timer.Arm(time.Now().Add(-time.Second))
	assert.Equal(t, int32(1), atomic.LoadInt32(&fired))
	assert.Equal(t, TimerFired, timer.State())
}
