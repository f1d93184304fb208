//go:build !tinygo

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"turnclock/app"
	"turnclock/config"
	"turnclock/hal"
	"turnclock/internal/applog"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	acfg, err := appConfig(cfg)
	if err != nil {
		return err
	}
	newApp := func(h hal.HAL) func() error { return app.New(h, acfg) }
	host := hal.HostConfig{
		Brightness: cfg.Brightness,
		Debounce:   cfg.Debounce,
		Trace:      cfg.Trace,
	}

	if !cfg.Headless {
		return hal.RunWindow(newApp, hal.WindowConfig{Host: host, Scale: cfg.Scale})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = hal.RunHeadless(ctx, newApp, hal.HeadlessConfig{
		Host:     host,
		Hz:       cfg.Hz,
		Ticks:    cfg.Ticks,
		Commands: os.Stdin,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func appConfig(cfg config.Config) (app.Config, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return app.Config{}, err
	}
	format, err := applog.ParseFormat(cfg.LogFormat)
	if err != nil {
		return app.Config{}, err
	}
	return app.Config{
		Timing:       cfg.Timing(),
		PassInterval: cfg.PassInterval,
		LampTest:     cfg.LampTest,
		LogLevel:     level,
		LogFormat:    format,
	}, nil
}
