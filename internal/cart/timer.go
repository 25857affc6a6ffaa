package cart

import (
	"sync"
	"time"
)

// TimerState is the reservation timer's lifecycle state
type TimerState int

const (
	// TimerIdle means no expiry is set and no ticking happens
	TimerIdle TimerState = iota
	// TimerRunning means the timer is counting down toward the expiry
	TimerRunning
	// TimerFired means the expiry callback has been invoked; the timer
	// stays quiet until re-armed with a new expiry
	TimerFired
)

// ReservationTimer converts a stored expiry instant into a live countdown
// and fires a one-time expiry notification. It never mutates cart state:
// clearing on expiry belongs to the caller-supplied callback, which keeps
// single-writer discipline over the cart.
//
// State machine: IDLE -> RUNNING (expiry set) -> FIRED (callback invoked
// once) -> IDLE (on Stop) | RUNNING (on a new expiry).
type ReservationTimer struct {
	mu       sync.Mutex
	state    TimerState
	expiry   time.Time
	onExpire func()
	interval time.Duration
	now      func() time.Time
	gen      int // invalidates the ticking goroutine of a stale arm
}

// NewReservationTimer creates an idle timer that will invoke onExpire
// exactly once per armed expiry.
func NewReservationTimer(onExpire func()) *ReservationTimer {
	return &ReservationTimer{
		onExpire: onExpire,
		interval: time.Second,
		now:      time.Now,
	}
}

// NewReservationTimerAt is NewReservationTimer with an injected tick
// interval and clock, for tests running at compressed timescales.
func NewReservationTimerAt(onExpire func(), interval time.Duration, now func() time.Time) *ReservationTimer {
	t := NewReservationTimer(onExpire)
	if interval > 0 {
		t.interval = interval
	}
	if now != nil {
		t.now = now
	}
	return t
}

// Arm points the timer at a new expiry instant and resumes ticking. A
// zero expiry is equivalent to Stop. Re-arming resets an already-fired
// timer, so a fresh hold window gets a fresh one-shot callback.
func (t *ReservationTimer) Arm(expiry time.Time) {
	if expiry.IsZero() {
		t.Stop()
		return
	}

	t.mu.Lock()
	t.expiry = expiry
	t.state = TimerRunning
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	// Immediate check, then once per interval
	if t.tick(gen) {
		return
	}
	go t.run(gen)
}

func (t *ReservationTimer) run(gen int) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for range ticker.C {
		if t.tick(gen) {
			return
		}
	}
}

// tick evaluates the countdown once. It returns true when the ticking
// goroutine for this generation should exit.
func (t *ReservationTimer) tick(gen int) bool {
	t.mu.Lock()
	if t.gen != gen || t.state != TimerRunning {
		t.mu.Unlock()
		return true
	}
	if t.now().Before(t.expiry) {
		t.mu.Unlock()
		return false
	}
	t.state = TimerFired
	fire := t.onExpire
	t.mu.Unlock()

	if fire != nil {
		fire()
	}
	return true
}

// Stop returns the timer to idle without firing. Idempotent.
func (t *ReservationTimer) Stop() {
	t.mu.Lock()
	t.state = TimerIdle
	t.expiry = time.Time{}
	t.gen++
	t.mu.Unlock()
}

// State returns the current lifecycle state
func (t *ReservationTimer) State() TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Remaining returns the whole seconds left before expiry, floored at zero.
// Idle timers report zero.
func (t *ReservationTimer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != TimerRunning {
		return 0
	}
	left := t.expiry.Sub(t.now())
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}
