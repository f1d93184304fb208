package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"turnclock/device"
	"turnclock/hal"
	"turnclock/internal/applog"
	"turnclock/internal/buildinfo"
	"turnclock/kernel"
	"turnclock/marquee"
	"turnclock/tasks/boot"
	"turnclock/tasks/buttons"
	"turnclock/tasks/clockface"
	"turnclock/tasks/lamptest"
	"turnclock/tasks/ticker"
	"turnclock/tasks/wizard"
)

// Config selects timing and logging for one run.
type Config struct {
	Timing device.Timing
	// PassInterval is how long Run waits between passes while some task
	// yields with zero delay. Zero busy-polls.
	PassInterval time.Duration
	// LampTest lights every face for a moment before setup.
	LampTest bool

	LogLevel  zerolog.Level
	LogFormat applog.Format
}

// DefaultConfig returns the firmware defaults.
func DefaultConfig() Config {
	return Config{
		Timing:       device.DefaultTiming(),
		PassInterval: time.Millisecond,
		LogLevel:     zerolog.InfoLevel,
		LogFormat:    applog.FormatConsole,
	}
}

// BoardConfig is DefaultConfig for the microcontroller, which logs JSON
// lines to the UART.
func BoardConfig() Config {
	c := DefaultConfig()
	c.LogFormat = applog.FormatJSON
	return c
}

var errTaskTable = errors.New("app: task table full")

// System is one boot of the device: a kernel with every task registered.
type System struct {
	k   *kernel.Kernel
	d   *device.Device
	cfg Config
}

// NewSystem builds the device on h. Setup and the marquee run right away, or
// after the lamp test when it is enabled; the play tasks start parked and are
// released by the boot task.
func NewSystem(h hal.HAL, cfg Config) (*System, error) {
	log := applog.New(hal.NewLineWriter(h.Logger()), cfg.LogFormat, cfg.LogLevel, h.Clock().Now)
	d := device.New(h, cfg.Timing, log)
	k := kernel.New(d.Clock)
	installPanicHandler(k, d)

	btn := k.AddParked(buttons.New(d))
	tick := k.AddParked(ticker.New(d))
	face := k.AddParked(clockface.New(d))
	start := k.AddParked(boot.New(d, btn, tick, face))
	add := k.AddTask
	if cfg.LampTest {
		add = k.AddParked
	}
	mq := add(marquee.NewTask(d.Marquee, d.Alpha, d.Logger("marquee")))
	wiz := add(wizard.New(d, start))
	ids := []kernel.TaskID{btn, tick, face, start, mq, wiz}
	if cfg.LampTest {
		ids = append(ids, k.AddTask(lamptest.New(d, mq, wiz)))
	}
	for _, id := range ids {
		if id == kernel.NoTask {
			return nil, errTaskTable
		}
	}

	buildinfo.Stamp(d.Log.Info()).Msg("turnclock starting")
	return &System{k: k, d: d, cfg: cfg}, nil
}

// Kernel returns the scheduler.
func (s *System) Kernel() *kernel.Kernel { return s.k }

// Device returns the shared device state.
func (s *System) Device() *device.Device { return s.d }

// Step runs one scheduler pass. It returns the task failure once a task has
// panicked.
func (s *System) Step() error {
	s.k.Pass()
	return s.k.Err()
}

// Run drives the scheduler on its own clock until ctx ends or a task fails.
func (s *System) Run(ctx context.Context) error {
	return s.k.Run(ctx, s.cfg.PassInterval)
}

// New builds the system and returns its per-frame step, for the host
// runners.
func New(h hal.HAL, cfg Config) func() error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return func() error { return err }
	}
	return s.Step
}

// Run builds the system and blocks until it fails (TinyGo entrypoint).
func Run(ctx context.Context, h hal.HAL, cfg Config) error {
	s, err := NewSystem(h, cfg)
	if err != nil {
		return err
	}
	return s.Run(ctx)
}
