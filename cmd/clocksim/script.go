package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"turnclock/device"
	"turnclock/input"
)

// Script is a replayable session: optional timing overrides and a list of
// button steps, one per line of the form accepted by parseStep.
type Script struct {
	Timing struct {
		MarqueeSpeed time.Duration `yaml:"marquee_speed"`
		Refresh      time.Duration `yaml:"refresh"`
		ReadyDelay   time.Duration `yaml:"ready_delay"`
		LongPress    time.Duration `yaml:"long_press"`
	} `yaml:"timing"`
	// Frame is the simulated time between scheduler passes.
	Frame time.Duration `yaml:"frame"`
	Steps []string      `yaml:"steps"`
}

type opKind uint8

const (
	opPress opKind = iota + 1
	opRelease
	opHold
	opWait
)

type op struct {
	kind   opKind
	button input.Button
	d      time.Duration
}

const (
	defaultFrame = 5 * time.Millisecond
	tapHold      = 80 * time.Millisecond
)

var errEmptyScript = errors.New("script has no steps")

// readScript decodes r and parses every step.
func readScript(r io.Reader) (Script, []op, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Script{}, nil, fmt.Errorf("script: %w", err)
	}
	if len(s.Steps) == 0 {
		return Script{}, nil, errEmptyScript
	}
	if s.Frame <= 0 {
		s.Frame = defaultFrame
	}

	ops := make([]op, 0, len(s.Steps))
	for i, line := range s.Steps {
		op, err := parseStep(line)
		if err != nil {
			return Script{}, nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		ops = append(ops, op...)
	}
	return s, ops, nil
}

// timing overlays the script overrides on the defaults.
func (s Script) timing() device.Timing {
	t := device.DefaultTiming()
	if s.Timing.MarqueeSpeed > 0 {
		t.MarqueeSpeed = s.Timing.MarqueeSpeed
	}
	if s.Timing.Refresh > 0 {
		t.Refresh = s.Timing.Refresh
	}
	if s.Timing.ReadyDelay > 0 {
		t.ReadyDelay = s.Timing.ReadyDelay
	}
	if s.Timing.LongPress > 0 {
		t.LongPress = s.Timing.LongPress
	}
	return t
}

// parseStep accepts "press B", "release B", "tap B", "hold B DUR" and
// "wait DUR". Taps and holds expand to a press, a wait and a release.
func parseStep(line string) ([]op, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return nil, errors.New("empty step")
	}
	verb := strings.ToLower(f[0])
	if verb == "wait" {
		if len(f) != 2 {
			return nil, errors.New("wait: want one duration")
		}
		d, err := parsePositive(f[1])
		if err != nil {
			return nil, fmt.Errorf("wait: %w", err)
		}
		return []op{{kind: opWait, d: d}}, nil
	}

	if len(f) < 2 {
		return nil, fmt.Errorf("%s: missing button", verb)
	}
	b, ok := input.ParseButton(strings.ToLower(f[1]))
	if !ok {
		return nil, fmt.Errorf("%s: unknown button %q", verb, f[1])
	}

	switch verb {
	case "press":
		return []op{{kind: opPress, button: b}}, nil
	case "release":
		return []op{{kind: opRelease, button: b}}, nil
	case "tap":
		return hold(b, tapHold), nil
	case "hold":
		if len(f) != 3 {
			return nil, errors.New("hold: want a button and a duration")
		}
		d, err := parsePositive(f[2])
		if err != nil {
			return nil, fmt.Errorf("hold: %w", err)
		}
		return hold(b, d), nil
	default:
		return nil, fmt.Errorf("unknown step %q", verb)
	}
}

func hold(b input.Button, d time.Duration) []op {
	return []op{
		{kind: opPress, button: b},
		{kind: opWait, d: d},
		{kind: opRelease, button: b},
	}
}

func parsePositive(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %v", d)
	}
	return d, nil
}
