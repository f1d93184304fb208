// Package setup implements the roster wizard that runs before a game: pick
// the number of players, then a color for each of them.
//
// The wizard is forward-only. A confirmed count or color cannot be revised;
// the device is restarted instead.
package setup

import (
	"fmt"

	"github.com/jonboulle/clockwork"

	"turnclock/game"
	"turnclock/input"
)

// MaxPlayers is the largest roster the single-digit count display can show.
const MaxPlayers = 9

// Phase is the wizard step.
type Phase uint8

const (
	PhasePlayers Phase = iota
	PhaseColors
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhasePlayers:
		return "PLAYERS"
	case PhaseColors:
		return "COLORS"
	case PhaseDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Effects are the device updates caused by one event.
type Effects struct {
	// Prompt replaces the marquee text when non-empty.
	Prompt string
	// ClearPrompt idles the marquee.
	ClearPrompt bool
	// Preview fills the pixel strip when non-nil.
	Preview *game.Color
	// Number is shown right-aligned on the numeric display when > 0.
	Number int
	// Lights lists backlight changes in order.
	Lights []input.Light
	// Added is the player confirmed by this event.
	Added *game.Player
}

// Wizard collects the roster.
type Wizard struct {
	clock clockwork.Clock

	phase     Phase
	wanted    int
	cursor    int
	confirmed int
}

// New returns a wizard asking for the player count, starting at one player.
// Confirmed players get timers on clock.
func New(clock clockwork.Clock) *Wizard {
	return &Wizard{clock: clock, wanted: 1}
}

// Phase returns the current step.
func (w *Wizard) Phase() Phase { return w.phase }

// Done reports whether every player has a color.
func (w *Wizard) Done() bool { return w.phase == PhaseDone }

// Wanted returns the selected player count.
func (w *Wizard) Wanted() int { return w.wanted }

// Cursor returns the palette index under selection.
func (w *Wizard) Cursor() int { return w.cursor }

// Confirmed returns how many players have a color.
func (w *Wizard) Confirmed() int { return w.confirmed }

// Start returns the effects that open the wizard.
func (w *Wizard) Start() Effects {
	return Effects{
		Prompt: "HOW MANY PLAYERS   ",
		Number: w.wanted,
		Lights: []input.Light{{Button: input.Major, On: false}},
	}
}

// Handle advances the wizard by one button event.
func (w *Wizard) Handle(ev input.Event) Effects {
	eff := Effects{Lights: []input.Light{input.Backlight(ev)}}
	if ev.Edge != input.Pressed || w.phase == PhaseDone {
		return eff
	}

	switch ev.Button {
	case input.Minor:
		w.confirm(&eff)
	case input.Major:
		w.cycle(&eff)
	}
	return eff
}

func (w *Wizard) confirm(eff *Effects) {
	switch w.phase {
	case PhasePlayers:
		w.phase = PhaseColors
		w.cursor = 0
		w.promptColor(eff)

	case PhaseColors:
		p := game.NewPlayer(w.confirmed+1, game.PaletteAt(w.cursor), w.clock)
		w.confirmed++
		eff.Added = p
		if w.confirmed >= w.wanted {
			w.phase = PhaseDone
			eff.ClearPrompt = true
			return
		}
		w.cursor = 0
		w.promptColor(eff)
	}
}

func (w *Wizard) cycle(eff *Effects) {
	switch w.phase {
	case PhasePlayers:
		w.wanted++
		if w.wanted > MaxPlayers {
			w.wanted = 1
		}
		eff.Number = w.wanted

	case PhaseColors:
		w.cursor = (w.cursor + 1) % game.PaletteSize
		c := game.PaletteAt(w.cursor)
		eff.Preview = &c
	}
}

func (w *Wizard) promptColor(eff *Effects) {
	c := game.PaletteAt(w.cursor)
	eff.Preview = &c
	eff.Prompt = fmt.Sprintf("PLAYER %d COLOR   ", w.confirmed+1)
	eff.Number = w.confirmed + 1
}
