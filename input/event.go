package input

import (
	"time"

	"turnclock/kernel"
)

// Button identifies one of the two physical buttons.
type Button uint8

const (
	// Minor is the small button: confirm during setup, pause/resume and
	// long-press end of game while playing.
	Minor Button = iota
	// Major is the large button: cycle during setup, next player while playing.
	Major
)

func (b Button) String() string {
	switch b {
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "unknown"
	}
}

// ParseButton maps "minor"/"major" (and the firmware names "small"/"large").
func ParseButton(s string) (Button, bool) {
	switch s {
	case "minor", "small", "a", "A":
		return Minor, true
	case "major", "large", "b", "B":
		return Major, true
	default:
		return 0, false
	}
}

// Edge is the electrical transition of a button.
type Edge uint8

const (
	Pressed Edge = iota + 1
	Released
)

func (e Edge) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case Released:
		return "released"
	default:
		return "unknown"
	}
}

// Event is one debounced button transition.
type Event struct {
	Button Button
	Edge   Edge
	Time   time.Time
}

// Queue carries events from the hardware backend to the scheduler.
type Queue = kernel.Mailbox[Event]
