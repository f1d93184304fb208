//go:build tinygo && baremetal

package hal

import (
	"image/color"
	"machine"
	"time"

	"github.com/jonboulle/clockwork"
	"tinygo.org/x/drivers/ws2812"

	"turnclock/input"
)

// Board wiring (Raspberry Pi Pico).
const (
	boardSDA         = machine.GP4
	boardSCL         = machine.GP5
	boardStrip       = machine.GP16
	boardMinorButton = machine.GP14
	boardMajorButton = machine.GP15
	boardMinorLight  = machine.GP12
	boardMajorLight  = machine.GP13

	boardStripPixels = 8
	buttonPollPeriod = time.Millisecond
)

// BoardConfig tunes the board HAL.
type BoardConfig struct {
	// Brightness scales the strip and the segment displays, 0..1.
	Brightness float64
	// Debounce is how long a button level must hold. Zero disables it.
	Debounce time.Duration
}

type tinyGoHAL struct {
	logger  *uartLogger
	clock   clockwork.Clock
	numeric *seg7Display
	alpha   *seg14Display
	strip   *stripPixels
	lights  *pinBacklights
	queue   input.Queue
	poller  *buttonPoller
}

// New returns the board HAL and starts the button poller.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// I2C0 on GP4/GP5 carries the numeric (0x70) and alphanumeric (0x71)
// HT16K33 backpacks.
func New(cfg BoardConfig) (HAL, error) {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{SDA: boardSDA, SCL: boardSCL, Frequency: 400 * machine.KHz}); err != nil {
		return nil, err
	}
	num, err := newHT16K33(bus, ht16k33AddrNumeric, cfg.Brightness)
	if err != nil {
		return nil, err
	}
	alpha, err := newHT16K33(bus, ht16k33AddrAlpha, cfg.Brightness)
	if err != nil {
		return nil, err
	}

	boardStrip.Configure(machine.PinConfig{Mode: machine.PinOutput})

	h := &tinyGoHAL{
		logger:  &uartLogger{uart: uart},
		clock:   clockwork.NewRealClock(),
		numeric: &seg7Display{dev: num},
		alpha:   &seg14Display{dev: alpha},
		strip:   &stripPixels{dev: ws2812.New(boardStrip), brightness: cfg.Brightness},
	}

	pins := &pinMap{
		PinMinorButton: newMachinePin(PinMinorButton, boardMinorButton, GPIOCapInput|GPIOCapPullUp),
		PinMajorButton: newMachinePin(PinMajorButton, boardMajorButton, GPIOCapInput|GPIOCapPullUp),
		PinMinorLight:  newMachinePin(PinMinorLight, boardMinorLight, GPIOCapOutput),
		PinMajorLight:  newMachinePin(PinMajorLight, boardMajorLight, GPIOCapOutput),
	}

	if h.lights, err = newPinBacklights(pins); err != nil {
		return nil, err
	}
	if h.poller, err = newButtonPoller(pins, &h.queue, h.clock, cfg.Debounce); err != nil {
		return nil, err
	}
	go h.pollButtons()
	return h, nil
}

func (h *tinyGoHAL) Logger() Logger          { return h.logger }
func (h *tinyGoHAL) Numeric() NumericDisplay { return h.numeric }
func (h *tinyGoHAL) Alpha() AlphaDisplay     { return h.alpha }
func (h *tinyGoHAL) Pixels() PixelStrip      { return h.strip }
func (h *tinyGoHAL) Backlights() Backlights  { return h.lights }
func (h *tinyGoHAL) Buttons() *input.Queue   { return &h.queue }
func (h *tinyGoHAL) Clock() clockwork.Clock  { return h.clock }
func (h *tinyGoHAL) Restarter() Restarter    { return cpuRestarter{} }

func (h *tinyGoHAL) pollButtons() {
	for {
		if err := h.poller.poll(); err != nil {
			h.logger.WriteLineString("buttons: " + err.Error())
		}
		time.Sleep(buttonPollPeriod)
	}
}

// stripPixels fills every LED of the WS2812 strip with one color.
type stripPixels struct {
	dev        ws2812.Device
	brightness float64
	buf        [boardStripPixels]color.RGBA
}

func (s *stripPixels) Fill(c color.RGBA) error {
	c = scaleRGB(c, s.brightness)
	for i := range s.buf {
		s.buf[i] = c
	}
	return s.dev.WriteColors(s.buf[:])
}
