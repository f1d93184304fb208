package game

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestTimerStartsPausedAtZero(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimer(clock)

	clock.Advance(time.Minute)
	if !tm.Paused() {
		t.Fatal("expected paused")
	}
	if got := tm.Elapsed(); got != 0 {
		t.Fatalf("Elapsed() = %v, want 0", got)
	}
}

func TestTimerAdditivity(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimer(clock)

	runs := []time.Duration{3 * time.Second, 1500 * time.Millisecond, 42 * time.Second}
	gaps := []time.Duration{10 * time.Second, time.Hour, 7 * time.Millisecond}

	var want time.Duration
	for i, run := range runs {
		tm.Resume()
		// Polling while running must not change the result.
		for step := time.Duration(0); step < run; step += 250 * time.Millisecond {
			d := 250 * time.Millisecond
			if run-step < d {
				d = run - step
			}
			clock.Advance(d)
			tm.Tick()
			_ = tm.Elapsed()
		}
		tm.Pause()
		want += run

		clock.Advance(gaps[i])
		tm.Tick()
		if got := tm.Elapsed(); got != want {
			t.Fatalf("after run %d: Elapsed() = %v, want %v", i, got, want)
		}
	}
}

func TestTimerPauseIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	once := NewTimer(clock)
	twice := NewTimer(clock)

	once.Resume()
	twice.Resume()
	clock.Advance(5 * time.Second)
	once.Pause()
	twice.Pause()
	clock.Advance(5 * time.Second)
	twice.Pause()

	if once.Elapsed() != twice.Elapsed() {
		t.Fatalf("Elapsed() = %v vs %v", once.Elapsed(), twice.Elapsed())
	}
	if got := twice.Elapsed(); got != 5*time.Second {
		t.Fatalf("Elapsed() = %v, want 5s", got)
	}
}

func TestTimerResumeIdempotent(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimer(clock)

	tm.Resume()
	clock.Advance(2 * time.Second)
	tm.Resume()
	clock.Advance(3 * time.Second)
	if got := tm.Elapsed(); got != 5*time.Second {
		t.Fatalf("Elapsed() = %v, want 5s", got)
	}
}

func TestTimerShownFollowsTick(t *testing.T) {
	clock := clockwork.NewFakeClock()
	tm := NewTimer(clock)

	tm.Resume()
	clock.Advance(2 * time.Second)
	if got := tm.Shown(); got != 0 {
		t.Fatalf("Shown() before Tick = %v, want 0", got)
	}
	tm.Tick()
	if got := tm.Shown(); got != 2*time.Second {
		t.Fatalf("Shown() = %v, want 2s", got)
	}

	clock.Advance(time.Second)
	tm.Pause()
	if got := tm.Shown(); got != 3*time.Second {
		t.Fatalf("Shown() after Pause = %v, want 3s", got)
	}
	clock.Advance(time.Second)
	tm.Tick()
	if got := tm.Shown(); got != 3*time.Second {
		t.Fatalf("Shown() while paused = %v, want 3s", got)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0000"},
		{999 * time.Millisecond, "0000"},
		{59*time.Second + 999*time.Millisecond, "0059"},
		{60 * time.Second, "0100"},
		{12*time.Minute + 34*time.Second + 500*time.Millisecond, "1234"},
		{100 * time.Minute, "9900"},
		{-time.Second, "0000"},
	}
	for _, tc := range tests {
		if got := FormatClock(tc.d); got != tc.want {
			t.Fatalf("FormatClock(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(3); got != "   3" {
		t.Fatalf("FormatNumber(3) = %q", got)
	}
}
