package app

import (
	"fmt"
	"image/color"
	"strings"

	"turnclock/device"
	"turnclock/kernel"
)

var panicRed = color.RGBA{R: 255, A: 255}

// installPanicHandler reports the first task failure: the error and stack go
// to the log, the marquee shows "ERR " and the strip turns red.
func installPanicHandler(k *kernel.Kernel, d *device.Device) {
	k.SetPanicHandler(func(info kernel.PanicInfo) {
		log := d.Logger("kernel")
		ev := log.Error().Str("task", info.Task).Uint8("task_id", uint8(info.TaskID))
		if err, ok := info.Value.(error); ok {
			ev = ev.Err(err)
		} else {
			ev = ev.Str("panic", fmt.Sprint(info.Value))
		}
		ev.Msg("task failed")

		for _, line := range strings.Split(string(info.Stack), "\n") {
			if line == "" {
				continue
			}
			log.Debug().Msg(line)
		}

		// The displays may be what failed; errors here have nowhere to go.
		_ = d.Alpha.ShowStatic("ERR ")
		_ = d.Pixels.Fill(panicRed)
	})
}
