package input

import (
	"testing"
	"time"
)

var t0 = time.Unix(1_700_000_000, 0)

func press(b Button, at time.Duration) Event {
	return Event{Button: b, Edge: Pressed, Time: t0.Add(at)}
}

func release(b Button, at time.Duration) Event {
	return Event{Button: b, Edge: Released, Time: t0.Add(at)}
}

func TestLongPressThreshold(t *testing.T) {
	tests := []struct {
		name     string
		held     time.Duration
		gameOver bool
		want     Action
	}{
		{name: "short", held: 120 * time.Millisecond, want: ActionToggle},
		{name: "just below", held: 3999 * time.Millisecond, want: ActionToggle},
		{name: "at threshold", held: 4000 * time.Millisecond, want: ActionEndGame},
		{name: "well above", held: 9 * time.Second, want: ActionEndGame},
		{name: "short after game over", held: 3999 * time.Millisecond, gameOver: true, want: ActionNone},
		{name: "long after game over", held: 4000 * time.Millisecond, gameOver: true, want: ActionRestart},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDispatcher(nil, 0)
			if got := d.Classify(press(Minor, 0), tc.gameOver).Action; got != ActionNone {
				t.Fatalf("press action = %s, want none", got)
			}
			dec := d.Classify(release(Minor, tc.held), tc.gameOver)
			if dec.Action != tc.want {
				t.Fatalf("release action = %s, want %s", dec.Action, tc.want)
			}
			if dec.Held != tc.held {
				t.Fatalf("Held = %v, want %v", dec.Held, tc.held)
			}
		})
	}
}

func TestMajorPress(t *testing.T) {
	d := NewDispatcher(nil, 0)
	if got := d.Classify(press(Major, 0), false).Action; got != ActionNext {
		t.Fatalf("action = %s, want next", got)
	}
	if got := d.Classify(release(Major, 10*time.Second), false).Action; got != ActionNone {
		t.Fatalf("major release action = %s, want none", got)
	}
	if got := d.Classify(press(Major, 11*time.Second), true).Action; got != ActionReview {
		t.Fatalf("action after game over = %s, want review", got)
	}
}

func TestReleaseWithoutPressOnlyRestoresLight(t *testing.T) {
	d := NewDispatcher(nil, 0)
	for _, over := range []bool{false, true} {
		dec := d.Classify(release(Minor, 10*time.Second), over)
		if dec.Action != ActionNone {
			t.Fatalf("gameOver=%v: action = %s, want none", over, dec.Action)
		}
		if dec.Held != 0 || !dec.Light.On {
			t.Fatalf("gameOver=%v: decision = %+v", over, dec)
		}
	}
}

func TestBacklight(t *testing.T) {
	tests := []struct {
		ev   Event
		want Light
	}{
		{press(Minor, 0), Light{Button: Minor, On: false}},
		{release(Minor, 0), Light{Button: Minor, On: true}},
		{press(Major, 0), Light{Button: Major, On: true}},
		{release(Major, 0), Light{Button: Major, On: false}},
	}
	for _, tc := range tests {
		if got := Backlight(tc.ev); got != tc.want {
			t.Fatalf("Backlight(%s %s) = %+v, want %+v", tc.ev.Button, tc.ev.Edge, got, tc.want)
		}
	}
}

func TestPollConsumesOneEventPerCall(t *testing.T) {
	var q Queue
	q.TrySend(press(Minor, 0))
	q.TrySend(release(Minor, 50*time.Millisecond))

	d := NewDispatcher(&q, 0)
	first, ok := d.Poll(false)
	if !ok || first.Event.Edge != Pressed {
		t.Fatalf("first Poll = %+v, %v", first, ok)
	}
	if q.Len() != 1 {
		t.Fatalf("queue len = %d, want 1", q.Len())
	}
	second, ok := d.Poll(false)
	if !ok || second.Action != ActionToggle {
		t.Fatalf("second Poll = %+v, %v", second, ok)
	}
	if _, ok := d.Poll(false); ok {
		t.Fatal("expected empty queue")
	}
}

func TestCustomThreshold(t *testing.T) {
	d := NewDispatcher(nil, 500*time.Millisecond)
	d.Classify(press(Minor, 0), false)
	if got := d.Classify(release(Minor, 500*time.Millisecond), false).Action; got != ActionEndGame {
		t.Fatalf("action = %s, want end-game", got)
	}
}

func TestParseButton(t *testing.T) {
	for _, s := range []string{"minor", "small"} {
		if b, ok := ParseButton(s); !ok || b != Minor {
			t.Fatalf("ParseButton(%q) = %v, %v", s, b, ok)
		}
	}
	for _, s := range []string{"major", "large"} {
		if b, ok := ParseButton(s); !ok || b != Major {
			t.Fatalf("ParseButton(%q) = %v, %v", s, b, ok)
		}
	}
	if _, ok := ParseButton("huge"); ok {
		t.Fatal("expected unknown button")
	}
}
