// Package lamptest lights every face at power-up so a dead segment, lamp or
// pixel shows before setup starts.
package lamptest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"turnclock/device"
	"turnclock/game"
	"turnclock/input"
	"turnclock/kernel"
)

// StepDelay is how long each stage of the test stays up.
const StepDelay = 150 * time.Millisecond

type Task struct {
	d    *device.Device
	then []kernel.TaskID
	log  zerolog.Logger

	stage int
}

// New returns the lamp test. When it is done it unparks then and exits.
func New(d *device.Device, then ...kernel.TaskID) *Task {
	return &Task{d: d, then: then, log: d.Logger("lamptest")}
}

func (t *Task) Name() string { return "lamptest" }

// Step shows all segments and both lamps, then walks the strip through the
// palette (ending dark), then restores the faces.
func (t *Task) Step(ctx *kernel.Context) {
	var err error
	switch {
	case t.stage == 0:
		t.log.Info().Msg("lamp test")
		err = t.all()
	case t.stage <= game.PaletteSize:
		c := game.PaletteAt(t.stage - 1)
		if err = t.d.Pixels.Fill(c.RGBA()); err != nil {
			err = fmt.Errorf("pixels: %w", err)
		}
	default:
		if err = t.restore(); err != nil {
			ctx.Fatal(err)
		}
		t.log.Debug().Msg("lamp test done")
		for _, id := range t.then {
			ctx.Unpark(id)
		}
		ctx.Exit()
		return
	}
	if err != nil {
		ctx.Fatal(err)
	}
	t.stage++
	ctx.Sleep(StepDelay)
}

func (t *Task) all() error {
	if err := t.d.Numeric.Show("8888", true); err != nil {
		return fmt.Errorf("numeric: %w", err)
	}
	if err := t.d.Alpha.ShowStatic("8888"); err != nil {
		return fmt.Errorf("alpha: %w", err)
	}
	for _, b := range []input.Button{input.Minor, input.Major} {
		if err := t.d.Light(input.Light{Button: b, On: true}); err != nil {
			return err
		}
	}
	return nil
}

func (t *Task) restore() error {
	if err := t.d.Numeric.Show("", false); err != nil {
		return fmt.Errorf("numeric: %w", err)
	}
	if err := t.d.Alpha.ShowStatic(""); err != nil {
		return fmt.Errorf("alpha: %w", err)
	}
	return t.d.Blank()
}
