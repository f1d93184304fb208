//go:build tinygo && baremetal

package main

import (
	"context"
	"time"

	"turnclock/app"
	"turnclock/config"
	"turnclock/hal"
)

func main() {
	cfg := config.Default()
	h, err := hal.New(hal.BoardConfig{Brightness: cfg.Brightness, Debounce: cfg.Debounce})
	if err != nil {
		halt(err)
	}

	acfg := app.BoardConfig()
	acfg.Timing = cfg.Timing()
	acfg.PassInterval = cfg.PassInterval
	acfg.LampTest = cfg.LampTest
	err = app.Run(context.Background(), h, acfg)
	// The panic handler has already reported task failures on the faces and
	// the UART; keep them visible.
	h.Logger().WriteLineString("turnclock stopped: " + err.Error())
	select {}
}

// halt repeats err on the default console; without a HAL nothing else can
// show it.
func halt(err error) {
	for {
		println("turnclock: board init failed:", err.Error())
		time.Sleep(2 * time.Second)
	}
}
