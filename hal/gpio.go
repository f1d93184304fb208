package hal

import (
	"fmt"
	"sync/atomic"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOCaps declares what operations a pin supports.
type GPIOCaps uint8

const (
	GPIOCapInput GPIOCaps = 1 << iota
	GPIOCapOutput
	GPIOCapPullUp
	GPIOCapPullDown
)

// GPIOPin is a single digital line.
type GPIOPin interface {
	Name() string
	Caps() GPIOCaps
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// DevicePin names one of the four lines the turn clock uses.
type DevicePin uint8

const (
	PinMinorButton DevicePin = iota
	PinMajorButton
	PinMinorLight
	PinMajorLight
	devicePinCount
)

func (p DevicePin) String() string {
	switch p {
	case PinMinorButton:
		return "BTN_MINOR"
	case PinMajorButton:
		return "BTN_MAJOR"
	case PinMinorLight:
		return "LIGHT_MINOR"
	case PinMajorLight:
		return "LIGHT_MAJOR"
	default:
		return fmt.Sprintf("PIN%d", uint8(p))
	}
}

// pinMap is the board wiring, indexed by DevicePin.
type pinMap [devicePinCount]GPIOPin

func (m *pinMap) wired(ids ...DevicePin) error {
	for _, id := range ids {
		if m[id] == nil {
			return fmt.Errorf("gpio: %s not wired", id)
		}
	}
	return nil
}

// checkMode reports whether a pin with caps can take mode and pull.
func checkMode(name string, caps GPIOCaps, mode GPIOMode, pull GPIOPull) error {
	var need GPIOCaps
	switch mode {
	case GPIOModeInput:
		need = GPIOCapInput
	case GPIOModeOutput:
		need = GPIOCapOutput
		if pull != GPIOPullNone {
			return fmt.Errorf("gpio: %s: pull on an output", name)
		}
	default:
		return fmt.Errorf("gpio: %s: invalid mode %d", name, mode)
	}
	switch pull {
	case GPIOPullNone:
	case GPIOPullUp:
		need |= GPIOCapPullUp
	case GPIOPullDown:
		need |= GPIOCapPullDown
	default:
		return fmt.Errorf("gpio: %s: invalid pull %d", name, pull)
	}
	if caps&need != need {
		return fmt.Errorf("gpio: %s: mode %d pull %d unsupported", name, mode, pull)
	}
	return nil
}

// simPin is a line of the simulated device. Inputs are driven from outside
// (keyboard, console, tests); Read sees the driven level.
type simPin struct {
	id         DevicePin
	caps       GPIOCaps
	configured atomic.Bool
	output     atomic.Bool
	level      atomic.Bool
}

func newSimPin(id DevicePin, caps GPIOCaps) *simPin {
	return &simPin{id: id, caps: caps}
}

func (p *simPin) Name() string   { return p.id.String() }
func (p *simPin) Caps() GPIOCaps { return p.caps }

func (p *simPin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkMode(p.Name(), p.caps, mode, pull); err != nil {
		return err
	}
	p.output.Store(mode == GPIOModeOutput)
	if mode == GPIOModeInput {
		// Nothing pressed: the input floats to its pull.
		p.level.Store(pull == GPIOPullUp)
	}
	p.configured.Store(true)
	return nil
}

func (p *simPin) Read() (bool, error) {
	if !p.configured.Load() {
		return false, fmt.Errorf("gpio: %s: not configured", p.Name())
	}
	return p.level.Load(), nil
}

func (p *simPin) Write(level bool) error {
	if !p.output.Load() {
		return fmt.Errorf("gpio: %s: not an output", p.Name())
	}
	p.level.Store(level)
	return nil
}

// drive sets the level an input reads, standing in for the switch.
func (p *simPin) drive(level bool) { p.level.Store(level) }

// lampPin is an output line that switches an LED.
type lampPin struct {
	id    DevicePin
	led   LED
	level atomic.Bool
}

func newLampPin(id DevicePin, led LED) *lampPin {
	return &lampPin{id: id, led: led}
}

func (p *lampPin) Name() string   { return p.id.String() }
func (p *lampPin) Caps() GPIOCaps { return GPIOCapOutput }

func (p *lampPin) Configure(mode GPIOMode, pull GPIOPull) error {
	return checkMode(p.Name(), GPIOCapOutput, mode, pull)
}

func (p *lampPin) Read() (bool, error) { return p.level.Load(), nil }

func (p *lampPin) Write(level bool) error {
	p.level.Store(level)
	if level {
		p.led.High()
	} else {
		p.led.Low()
	}
	return nil
}
