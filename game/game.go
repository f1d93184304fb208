package game

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Player is one seat at the table.
type Player struct {
	Number int
	Color  Color
	Timer  *Timer
}

// NewPlayer returns a player with a paused timer on clock.
func NewPlayer(number int, c Color, clock clockwork.Clock) *Player {
	return &Player{Number: number, Color: c, Timer: NewTimer(clock)}
}

// State is the game lifecycle state.
type State uint8

const (
	StatePaused State = iota
	StateRunning
	StateOver
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "PAUSED"
	case StateRunning:
		return "RUNNING"
	case StateOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}

// Game owns the roster and the turn state.
//
// It is not safe for concurrent use: the scheduler runs every task on one
// goroutine.
type Game struct {
	players []*Player
	current int
	paused  bool
	over    bool
}

// New returns an empty, paused game.
func New() *Game {
	return &Game{paused: true}
}

// Add appends a player during setup.
func (g *Game) Add(p *Player) {
	if p == nil {
		return
	}
	g.players = append(g.players, p)
}

// Len returns the roster size.
func (g *Game) Len() int { return len(g.players) }

// Players returns the roster in seating order.
func (g *Game) Players() []*Player { return g.players }

// Start resets the turn to the first player, paused.
func (g *Game) Start() {
	if len(g.players) == 0 {
		panic("game: start with empty roster")
	}
	g.current = 0
	g.paused = true
	g.over = false
}

// Current returns the player whose turn it is.
func (g *Game) Current() *Player {
	if len(g.players) == 0 {
		panic("game: current player of empty roster")
	}
	return g.players[g.current]
}

// CurrentIndex returns the zero-based turn index.
func (g *Game) CurrentIndex() int { return g.current }

// Paused reports whether play is paused.
func (g *Game) Paused() bool { return g.paused }

// Over reports whether the game has ended.
func (g *Game) Over() bool { return g.over }

// State returns the lifecycle state.
func (g *Game) State() State {
	switch {
	case g.over:
		return StateOver
	case g.paused:
		return StatePaused
	default:
		return StateRunning
	}
}

// Resume starts the current player's clock. It only applies while paused and
// reports whether anything changed.
func (g *Game) Resume() bool {
	if g.over || !g.paused {
		return false
	}
	g.Current().Timer.Resume()
	g.paused = false
	return true
}

// Pause stops the current player's clock. It only applies while running.
func (g *Game) Pause() bool {
	if g.over || g.paused {
		return false
	}
	g.Current().Timer.Pause()
	g.paused = true
	return true
}

// NextPlayer hands the turn over while running.
func (g *Game) NextPlayer() bool {
	if g.over || g.paused {
		return false
	}
	g.Current().Timer.Pause()
	g.current = (g.current + 1) % len(g.players)
	g.Current().Timer.Resume()
	return true
}

// EndGame pauses play and marks the game over. No timer resumes afterwards.
func (g *Game) EndGame() bool {
	if g.over {
		return false
	}
	g.Pause()
	g.over = true
	return true
}

// Review moves the display to the next player once the game is over. Timers
// are not touched.
func (g *Game) Review() bool {
	if !g.over || len(g.players) == 0 {
		return false
	}
	g.current = (g.current + 1) % len(g.players)
	return true
}

// Standing is a snapshot of one player's result.
type Standing struct {
	Number  int
	Color   Color
	Elapsed time.Duration
}

func (s Standing) String() string {
	return fmt.Sprintf("P%d %s %s", s.Number, s.Color.Name, FormatClock(s.Elapsed))
}

// Standings returns every player's time in seating order.
func (g *Game) Standings() []Standing {
	out := make([]Standing, 0, len(g.players))
	for _, p := range g.players {
		out = append(out, Standing{Number: p.Number, Color: p.Color, Elapsed: p.Timer.Elapsed()})
	}
	return out
}
