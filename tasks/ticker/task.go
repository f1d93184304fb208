// Package ticker keeps the current player's shown time fresh.
package ticker

import (
	"turnclock/device"
	"turnclock/kernel"
)

type Task struct {
	d *device.Device
}

func New(d *device.Device) *Task { return &Task{d: d} }

func (t *Task) Name() string { return "ticker" }

func (t *Task) Step(ctx *kernel.Context) {
	t.d.Game.Current().Timer.Tick()
}
