// Package boot starts play once setup has finished: it shows "RDY " for a
// moment and then releases the steady-state tasks.
package boot

import (
	"github.com/rs/zerolog"

	"turnclock/device"
	"turnclock/kernel"
)

type Task struct {
	d      *device.Device
	steady []kernel.TaskID
	log    zerolog.Logger

	ready bool
}

// New returns the boot task; it is meant to be registered parked.
func New(d *device.Device, steady ...kernel.TaskID) *Task {
	return &Task{d: d, steady: steady, log: d.Logger("boot")}
}

func (t *Task) Name() string { return "boot" }

func (t *Task) Step(ctx *kernel.Context) {
	if !t.ready {
		t.ready = true
		t.d.Game.Start()
		if err := t.d.Blank(); err != nil {
			ctx.Fatal(err)
		}
		t.d.Marquee.Static("RDY ")

		roster := make([]string, 0, t.d.Game.Len())
		for _, p := range t.d.Game.Players() {
			roster = append(roster, p.Color.Name)
		}
		t.log.Info().Strs("roster", roster).Msg("game ready")

		ctx.Sleep(t.d.Timing.ReadyDelay)
		return
	}

	for _, id := range t.steady {
		ctx.Unpark(id)
	}
	t.log.Debug().Int("tasks", len(t.steady)).Msg("play enabled")
	ctx.Exit()
}

