package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"turnclock/app"
	"turnclock/game"
	"turnclock/hal"
	"turnclock/input"
)

var errQueueFull = errors.New("button queue full")

// result is what a replay leaves behind.
type result struct {
	start     time.Time
	end       time.Time
	state     game.State
	standings []game.Standing
	restarts  int
	entries   []hal.Entry
	lines     []string
	// failure is the task failure that stopped the replay, if any.
	failure error
}

// simulate replays ops against a fresh device on a fake clock, running one
// scheduler pass per frame of simulated time.
func simulate(s Script, ops []op, level zerolog.Level) (result, error) {
	clock := clockwork.NewFakeClock()
	rec := hal.NewRecorder(clock)
	cfg := app.DefaultConfig()
	cfg.Timing = s.timing()
	cfg.LogLevel = level
	sys, err := app.NewSystem(rec, cfg)
	if err != nil {
		return result{}, err
	}

	res := result{start: clock.Now()}
	err = replay(sys, rec, clock, s.Frame, ops)

	g := sys.Device().Game
	res.end = clock.Now()
	res.state = g.State()
	res.standings = g.Standings()
	res.restarts = rec.Restarts()
	res.entries = rec.Entries()
	res.lines = rec.Lines()
	if err != nil && sys.Kernel().Err() != nil {
		res.failure = err
		return res, nil
	}
	return res, err
}

func replay(sys *app.System, rec *hal.Recorder, clock *clockwork.FakeClock, frame time.Duration, ops []op) error {
	if err := sys.Step(); err != nil {
		return err
	}
	for _, o := range ops {
		switch o.kind {
		case opPress, opRelease:
			edge := input.Pressed
			if o.kind == opRelease {
				edge = input.Released
			}
			if !rec.Push(o.button, edge) {
				return fmt.Errorf("%s %s: %w", o.button, edge, errQueueFull)
			}
			for i := 0; i < 2; i++ {
				if err := sys.Step(); err != nil {
					return err
				}
			}
		case opWait:
			for left := o.d; left > 0; left -= frame {
				clock.Advance(min(frame, left))
				if err := sys.Step(); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
