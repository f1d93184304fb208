package game

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Timer accumulates a player's thinking time.
//
// It starts paused at zero. Time only accrues between Resume and Pause.
type Timer struct {
	clock clockwork.Clock

	accumulated time.Duration
	resumedAt   time.Time
	paused      bool

	// shown is the value last published by Tick; displays read it.
	shown time.Duration
}

// NewTimer returns a paused timer reading clock.
func NewTimer(clock clockwork.Clock) *Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Timer{clock: clock, paused: true}
}

// Paused reports whether the timer is frozen.
func (t *Timer) Paused() bool { return t.paused }

// Pause freezes the accumulated time. Pausing a paused timer is a no-op.
func (t *Timer) Pause() {
	if t.paused {
		return
	}
	t.accumulated = t.live()
	t.shown = t.accumulated
	t.paused = true
}

// Resume starts accruing from now. Resuming a running timer is a no-op.
func (t *Timer) Resume() {
	if !t.paused {
		return
	}
	t.resumedAt = t.clock.Now()
	t.paused = false
}

// Tick refreshes the published value. It must be polled while running; it is
// a no-op while paused.
func (t *Timer) Tick() {
	if t.paused {
		return
	}
	t.shown = t.live()
}

// Elapsed returns the exact accumulated time at this instant.
func (t *Timer) Elapsed() time.Duration {
	if t.paused {
		return t.accumulated
	}
	return t.live()
}

// Shown returns the value published by the last Tick or Pause.
func (t *Timer) Shown() time.Duration { return t.shown }

func (t *Timer) live() time.Duration {
	d := t.clock.Since(t.resumedAt)
	if d < 0 {
		d = 0
	}
	return t.accumulated + d
}
