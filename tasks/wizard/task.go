// Package wizard runs the setup wizard until the roster is complete.
package wizard

import (
	"fmt"

	"github.com/rs/zerolog"

	"turnclock/device"
	"turnclock/game"
	"turnclock/kernel"
	"turnclock/setup"
)

type Task struct {
	d    *device.Device
	wiz  *setup.Wizard
	next kernel.TaskID
	log  zerolog.Logger

	started bool
}

// New returns the setup task. When the roster is complete it unparks next
// and exits.
func New(d *device.Device, next kernel.TaskID) *Task {
	return &Task{
		d:    d,
		wiz:  setup.New(d.Clock),
		next: next,
		log:  d.Logger("setup"),
	}
}

func (t *Task) Name() string { return "setup" }

func (t *Task) Step(ctx *kernel.Context) {
	if !t.started {
		t.started = true
		t.log.Info().Msg("setup started")
		t.apply(ctx, t.wiz.Start())
		return
	}

	ev, ok := t.d.Buttons.TryRecv()
	if !ok {
		return
	}
	t.apply(ctx, t.wiz.Handle(ev))

	if t.wiz.Done() {
		t.log.Info().Int("players", t.d.Game.Len()).Msg("setup done")
		ctx.Unpark(t.next)
		ctx.Exit()
	}
}

func (t *Task) apply(ctx *kernel.Context, eff setup.Effects) {
	for _, l := range eff.Lights {
		if err := t.d.Light(l); err != nil {
			ctx.Fatal(err)
		}
	}
	if eff.Added != nil {
		t.d.Game.Add(eff.Added)
		t.log.Info().Int("player", eff.Added.Number).Str("color", eff.Added.Color.Name).Msg("player added")
	}
	switch {
	case eff.ClearPrompt:
		t.d.Marquee.Clear()
	case eff.Prompt != "":
		t.d.Say(eff.Prompt)
	}
	if eff.Preview != nil {
		if err := t.d.Pixels.Fill(eff.Preview.RGBA()); err != nil {
			ctx.Fatal(fmt.Errorf("pixels: %w", err))
		}
		t.log.Debug().Str("color", eff.Preview.Name).Msg("preview")
	}
	if eff.Number > 0 {
		if err := t.d.Numeric.Show(game.FormatNumber(eff.Number), false); err != nil {
			ctx.Fatal(fmt.Errorf("numeric: %w", err))
		}
	}
}
