// Package clockface shows the current player's time as MM:SS.
package clockface

import (
	"fmt"

	"turnclock/device"
	"turnclock/game"
	"turnclock/kernel"
)

type Task struct {
	d *device.Device
}

func New(d *device.Device) *Task { return &Task{d: d} }

func (t *Task) Name() string { return "clockface" }

func (t *Task) Step(ctx *kernel.Context) {
	text := game.FormatClock(t.d.Game.Current().Timer.Shown())
	if err := t.d.Numeric.Show(text, true); err != nil {
		ctx.Fatal(fmt.Errorf("numeric: %w", err))
	}
	ctx.Sleep(t.d.Timing.Refresh)
}
