package input

import "time"

// DefaultLongPress is the minor-button hold that ends (or restarts) a game.
const DefaultLongPress = 4000 * time.Millisecond

// Action is what a classified event asks the game to do.
type Action uint8

const (
	ActionNone Action = iota
	// ActionToggle pauses a running game or resumes a paused one.
	ActionToggle
	// ActionNext hands the turn to the next player.
	ActionNext
	// ActionEndGame finishes the game.
	ActionEndGame
	// ActionRestart asks the supervisor to reinitialize the device.
	ActionRestart
	// ActionReview shows the next player's final time after the game ended.
	ActionReview
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionToggle:
		return "toggle"
	case ActionNext:
		return "next"
	case ActionEndGame:
		return "end-game"
	case ActionRestart:
		return "restart"
	case ActionReview:
		return "review"
	default:
		return "unknown"
	}
}

// Light is a backlight state change.
type Light struct {
	Button Button
	On     bool
}

// Backlight returns the feedback light change for an edge: the minor light
// goes dark while held, the major light glows while held.
func Backlight(ev Event) Light {
	if ev.Button == Minor {
		return Light{Button: Minor, On: ev.Edge == Released}
	}
	return Light{Button: Major, On: ev.Edge == Pressed}
}

// Decision is a classified event.
type Decision struct {
	Event  Event
	Action Action
	Light  Light
	// Held is the press duration, set on minor releases.
	Held time.Duration
}

// Dispatcher turns queued button edges into game actions.
type Dispatcher struct {
	q         *Queue
	longPress time.Duration

	pressedAt [2]time.Time
	held      [2]bool
}

// NewDispatcher reads events from q. longPress <= 0 selects DefaultLongPress.
func NewDispatcher(q *Queue, longPress time.Duration) *Dispatcher {
	if longPress <= 0 {
		longPress = DefaultLongPress
	}
	return &Dispatcher{q: q, longPress: longPress}
}

// LongPress returns the configured threshold.
func (d *Dispatcher) LongPress() time.Duration { return d.longPress }

// Poll consumes at most one event without blocking. ok is false when the
// queue is empty.
func (d *Dispatcher) Poll(gameOver bool) (dec Decision, ok bool) {
	if d.q == nil {
		return Decision{}, false
	}
	ev, ok := d.q.TryRecv()
	if !ok {
		return Decision{}, false
	}
	return d.Classify(ev, gameOver), true
}

// Classify maps one event to a decision and updates press tracking.
func (d *Dispatcher) Classify(ev Event, gameOver bool) Decision {
	dec := Decision{Event: ev, Light: Backlight(ev)}
	if ev.Button > Major {
		return dec
	}

	switch ev.Edge {
	case Pressed:
		d.pressedAt[ev.Button] = ev.Time
		d.held[ev.Button] = true
		if ev.Button == Major {
			if gameOver {
				dec.Action = ActionReview
			} else {
				dec.Action = ActionNext
			}
		}

	case Released:
		wasHeld := d.held[ev.Button]
		d.held[ev.Button] = false
		// A release whose press was not seen here (held through setup, or
		// dropped by a full queue) only restores the backlight.
		if ev.Button != Minor || !wasHeld {
			break
		}
		dec.Held = ev.Time.Sub(d.pressedAt[ev.Button])
		if dec.Held < 0 {
			dec.Held = 0
		}
		switch {
		case dec.Held >= d.longPress && gameOver:
			dec.Action = ActionRestart
		case dec.Held >= d.longPress:
			dec.Action = ActionEndGame
		case !gameOver:
			dec.Action = ActionToggle
		}
	}
	return dec
}
