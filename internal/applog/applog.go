// Package applog builds the structured loggers used across the device.
package applog

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Format selects how log lines are rendered.
type Format uint8

const (
	// FormatConsole writes human-readable lines without color codes.
	FormatConsole Format = iota
	// FormatJSON writes one JSON object per line.
	FormatJSON
)

// ParseFormat maps "console" or "json".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "console", "text":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("applog: unknown format %q", s)
	}
}

// ParseLevel maps a level name, defaulting to info for "".
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("applog: %w", err)
	}
	return lvl, nil
}

// New returns a logger writing to w. now stamps each line; pass the device
// clock so simulated runs log simulated time.
func New(w io.Writer, format Format, level zerolog.Level, now func() time.Time) zerolog.Logger {
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    true,
			TimeFormat: "15:04:05.000",
		}
	}
	l := zerolog.New(w).Level(level)
	if now != nil {
		return l.Hook(clockHook(now))
	}
	return l.With().Timestamp().Logger()
}

// Component returns a sub-logger tagged with the component name.
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}

type clockHook func() time.Time

func (h clockHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Time(zerolog.TimestampFieldName, h())
}
