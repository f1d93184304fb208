// Package buttons turns classified button events into game actions while
// playing.
package buttons

import (
	"github.com/rs/zerolog"

	"turnclock/device"
	"turnclock/input"
	"turnclock/kernel"
)

const (
	msgPaused   = "PAUSED   "
	msgGameOver = "GAME OVER   "
)

type Task struct {
	d    *device.Device
	disp *input.Dispatcher
	log  zerolog.Logger

	started bool
}

func New(d *device.Device) *Task {
	return &Task{
		d:    d,
		disp: input.NewDispatcher(d.Buttons, d.Timing.LongPress),
		log:  d.Logger("buttons"),
	}
}

func (t *Task) Name() string { return "buttons" }

// Step handles at most one event and yields.
func (t *Task) Step(ctx *kernel.Context) {
	if !t.started {
		t.started = true
		if err := t.d.Light(input.Light{Button: input.Major, On: false}); err != nil {
			ctx.Fatal(err)
		}
	}

	dec, ok := t.disp.Poll(t.d.Game.Over())
	if !ok {
		return
	}
	if err := t.d.Light(dec.Light); err != nil {
		ctx.Fatal(err)
	}
	if err := t.handle(dec); err != nil {
		ctx.Fatal(err)
	}
}

func (t *Task) handle(dec input.Decision) error {
	g := t.d.Game
	if dec.Action != input.ActionNone {
		t.log.Debug().
			Stringer("action", dec.Action).
			Stringer("button", dec.Event.Button).
			Dur("held", dec.Held).
			Msg("button")
	}

	switch dec.Action {
	case input.ActionToggle:
		if g.Resume() {
			t.log.Info().Int("player", g.Current().Number).Msg("resumed")
			return t.d.ShowPlayer(g.Current())
		}
		if g.Pause() {
			t.log.Info().Int("player", g.Current().Number).Msg("paused")
			t.d.Say(msgPaused)
		}

	case input.ActionNext:
		if !g.NextPlayer() {
			t.log.Debug().Stringer("state", g.State()).Msg("next ignored")
			return nil
		}
		t.log.Info().Int("player", g.Current().Number).Msg("turn")
		return t.d.ShowPlayer(g.Current())

	case input.ActionEndGame:
		if !g.EndGame() {
			return nil
		}
		t.d.Say(msgGameOver)
		standings := zerolog.Arr()
		for _, s := range g.Standings() {
			standings = standings.Str(s.String())
		}
		t.log.Info().Array("standings", standings).Msg("game over")

	case input.ActionReview:
		if g.Review() {
			t.log.Info().Int("player", g.Current().Number).Dur("elapsed", g.Current().Timer.Elapsed()).Msg("review")
			return t.d.ShowPlayer(g.Current())
		}

	case input.ActionRestart:
		t.log.Info().Msg("restart requested")
		t.d.Restarter.Restart()
	}
	return nil
}
