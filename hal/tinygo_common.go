//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"
)

type uartLogger struct {
	uart *machine.UART
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	for i := 0; i < len(b); i++ {
		l.uart.WriteByte(b[i])
	}
	l.uart.WriteByte('\r')
	l.uart.WriteByte('\n')
}

// machinePin adapts a board pin to GPIOPin.
type machinePin struct {
	id     DevicePin
	pin    machine.Pin
	caps   GPIOCaps
	output bool
}

func newMachinePin(id DevicePin, pin machine.Pin, caps GPIOCaps) *machinePin {
	return &machinePin{id: id, pin: pin, caps: caps}
}

func (p *machinePin) Name() string   { return p.id.String() }
func (p *machinePin) Caps() GPIOCaps { return p.caps }

func (p *machinePin) Configure(mode GPIOMode, pull GPIOPull) error {
	if err := checkMode(p.Name(), p.caps, mode, pull); err != nil {
		return err
	}
	m := machine.PinInput
	switch {
	case mode == GPIOModeOutput:
		m = machine.PinOutput
	case pull == GPIOPullUp:
		m = machine.PinInputPullup
	case pull == GPIOPullDown:
		m = machine.PinInputPulldown
	}
	p.pin.Configure(machine.PinConfig{Mode: m})
	p.output = mode == GPIOModeOutput
	return nil
}

func (p *machinePin) Read() (bool, error) { return p.pin.Get(), nil }

func (p *machinePin) Write(level bool) error {
	if !p.output {
		return fmt.Errorf("gpio: %s: not an output", p.Name())
	}
	p.pin.Set(level)
	return nil
}

type cpuRestarter struct{}

func (cpuRestarter) Restart() { machine.CPUReset() }
