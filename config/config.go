// Package config holds the device settings. On the host they are layered:
// defaults, an optional YAML file, .env and TURNCLOCK_* environment
// variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"

	"turnclock/device"
	"turnclock/hal"
	"turnclock/input"
	"turnclock/marquee"
)

// EnvPrefix prefixes every environment variable.
const EnvPrefix = "TURNCLOCK_"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the full set of settings.
type Config struct {
	// Headless runs without a window, taking button commands on stdin.
	Headless bool `yaml:"headless"`
	// Hz is the host frame rate of the headless runner.
	Hz int `yaml:"hz"`
	// Ticks stops the headless runner after that many frames (0 = forever).
	Ticks uint64 `yaml:"ticks"`
	// Scale multiplies the window size.
	Scale int `yaml:"scale"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// Trace logs every display change as a plain line.
	Trace bool `yaml:"trace"`

	MarqueeSpeed time.Duration `yaml:"marquee_speed"`
	Refresh      time.Duration `yaml:"refresh"`
	ReadyDelay   time.Duration `yaml:"ready_delay"`
	LongPress    time.Duration `yaml:"long_press"`
	PassInterval time.Duration `yaml:"pass_interval"`
	Debounce     time.Duration `yaml:"debounce"`

	// LampTest lights every face for a moment at power-up.
	LampTest bool `yaml:"lamp_test"`

	// Brightness scales the LEDs, 0..1.
	Brightness float64 `yaml:"brightness"`
}

// Default returns the firmware settings.
func Default() Config {
	return Config{
		Hz:           200,
		Scale:        2,
		LogLevel:     "info",
		LogFormat:    "console",
		MarqueeSpeed: marquee.DefaultSpeed,
		Refresh:      50 * time.Millisecond,
		ReadyDelay:   500 * time.Millisecond,
		LongPress:    input.DefaultLongPress,
		PassInterval: time.Millisecond,
		Debounce:     hal.DefaultDebounce,
		Brightness:   0.1,
	}
}

// Validate rejects settings the device cannot run with.
func (c Config) Validate() error {
	positive := []struct {
		name string
		d    time.Duration
	}{
		{"marquee_speed", c.MarqueeSpeed},
		{"refresh", c.Refresh},
		{"ready_delay", c.ReadyDelay},
		{"long_press", c.LongPress},
	}
	for _, p := range positive {
		if p.d <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.d)
		}
	}
	if c.PassInterval < 0 {
		return fmt.Errorf("%w: pass_interval must not be negative", ErrInvalid)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("%w: debounce must not be negative", ErrInvalid)
	}
	if c.Hz <= 0 {
		return fmt.Errorf("%w: hz must be positive, got %d", ErrInvalid, c.Hz)
	}
	if c.Brightness < 0 || c.Brightness > 1 {
		return fmt.Errorf("%w: brightness must be within 0..1, got %g", ErrInvalid, c.Brightness)
	}
	return nil
}

// Timing returns the device delays.
func (c Config) Timing() device.Timing {
	return device.Timing{
		MarqueeSpeed: c.MarqueeSpeed,
		Refresh:      c.Refresh,
		ReadyDelay:   c.ReadyDelay,
		LongPress:    c.LongPress,
	}
}
