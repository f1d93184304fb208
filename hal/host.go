//go:build !tinygo

package hal

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"turnclock/input"
)

// HostConfig tunes the host HAL.
type HostConfig struct {
	// Out receives log lines. Nil means stdout.
	Out io.Writer
	// Brightness scales the simulated pixel strip, 0..1.
	Brightness float64
	// Debounce is how long a button level must hold. Zero disables it.
	Debounce time.Duration
	// Trace logs every sink change as a plain line.
	Trace bool
}

type hostHAL struct {
	logger  *hostLogger
	clock   clockwork.Clock
	pins    *pinMap
	buttons [2]*simPin
	queue   input.Queue
	poller  *buttonPoller
	lights  *pinBacklights
	faces   *faces
	restart hostRestarter
}

// New returns a host HAL implementation.
func New(cfg HostConfig) (HAL, error) {
	return newHost(cfg)
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	logger := &hostLogger{w: cfg.Out}
	f := newFaces(cfg.Brightness)
	if cfg.Trace {
		f.trace = logger
	}

	minor := newSimPin(PinMinorButton, GPIOCapInput|GPIOCapPullUp)
	major := newSimPin(PinMajorButton, GPIOCapInput|GPIOCapPullUp)
	pins := &pinMap{
		PinMinorButton: minor,
		PinMajorButton: major,
		PinMinorLight:  newLampPin(PinMinorLight, &hostLED{f: f, b: input.Minor}),
		PinMajorLight:  newLampPin(PinMajorLight, &hostLED{f: f, b: input.Major}),
	}

	h := &hostHAL{
		logger:  logger,
		clock:   clockwork.NewRealClock(),
		pins:    pins,
		buttons: [2]*simPin{minor, major},
		faces:   f,
	}

	var err error
	if h.poller, err = newButtonPoller(h.pins, &h.queue, h.clock, cfg.Debounce); err != nil {
		return nil, err
	}
	if h.lights, err = newPinBacklights(h.pins); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger          { return h.logger }
func (h *hostHAL) Numeric() NumericDisplay { return hostNumeric{f: h.faces} }
func (h *hostHAL) Alpha() AlphaDisplay     { return hostAlpha{f: h.faces} }
func (h *hostHAL) Pixels() PixelStrip      { return hostPixels{f: h.faces} }
func (h *hostHAL) Backlights() Backlights  { return h.lights }
func (h *hostHAL) Buttons() *input.Queue   { return &h.queue }
func (h *hostHAL) Clock() clockwork.Clock  { return h.clock }
func (h *hostHAL) Restarter() Restarter    { return &h.restart }

// press drives a button input the way the physical switch would: pressed
// pulls the line low.
func (h *hostHAL) press(b input.Button, down bool) {
	if int(b) >= len(h.buttons) {
		return
	}
	h.buttons[b].drive(!down)
}

// frame runs one host frame: sample buttons, then step the core.
func (h *hostHAL) frame(step func() error) error {
	if err := h.poller.poll(); err != nil {
		return err
	}
	if step != nil {
		if err := step(); err != nil {
			return err
		}
	}
	if h.restart.requested() {
		return ErrRestart
	}
	return nil
}

type hostLogger struct {
	mu   sync.Mutex
	w    io.Writer
	tees []func(string)
}

// tee mirrors every line into fn (the window log pane).
func (l *hostLogger) tee(fn func(string)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tees = append(l.tees, fn)
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
	for _, fn := range l.tees {
		fn(s)
	}
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.WriteLineString(string(b))
}

type hostRestarter struct {
	flag atomic.Bool
}

func (r *hostRestarter) Restart()        { r.flag.Store(true) }
func (r *hostRestarter) requested() bool { return r.flag.Load() }

// reboot rebuilds the core on the same simulated hardware, the way a CPU
// reset leaves the board wiring alone. Queued button events are dropped.
func (h *hostHAL) reboot(newApp func(HAL) func() error) func() error {
	h.restart.flag.Store(false)
	for {
		if _, ok := h.queue.TryRecv(); !ok {
			break
		}
	}
	h.logger.WriteLineString("host: restarting core")
	return newApp(h)
}

// faces holds what the simulated device currently shows. The core writes it
// from the scheduler goroutine; the window reads it from the draw loop.
type faces struct {
	mu         sync.Mutex
	numeric    window
	colon      bool
	alpha      window
	strip      color.RGBA
	lights     [2]bool
	brightness float64
	trace      Logger
}

func newFaces(brightness float64) *faces {
	if brightness <= 0 || brightness > 1 {
		brightness = 1
	}
	return &faces{
		numeric:    fit(""),
		alpha:      fit(""),
		brightness: brightness,
	}
}

type faceSnapshot struct {
	numeric window
	colon   bool
	alpha   window
	strip   color.RGBA
	lights  [2]bool
}

func (f *faces) snapshot() faceSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return faceSnapshot{
		numeric: f.numeric,
		colon:   f.colon,
		alpha:   f.alpha,
		strip:   f.strip,
		lights:  f.lights,
	}
}

// logf writes a trace line. The caller holds f.mu.
func (f *faces) logf(format string, args ...any) {
	if f.trace == nil {
		return
	}
	f.trace.WriteLineString(fmt.Sprintf(format, args...))
}

type hostNumeric struct{ f *faces }

func (n hostNumeric) Show(text string, colon bool) error {
	f := n.f
	f.mu.Lock()
	defer f.mu.Unlock()
	w := fit(text)
	if w == f.numeric && colon == f.colon {
		return nil
	}
	f.numeric, f.colon = w, colon
	f.logf("numeric: %s", formatNumeric(w, colon))
	return nil
}

type hostAlpha struct{ f *faces }

func (a hostAlpha) ShowStatic(text string) error {
	f := a.f
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alpha = fit(text)
	f.logf("alpha: [%s]", f.alpha)
	return nil
}

func (a hostAlpha) ScrollStep(c byte) error {
	f := a.f
	f.mu.Lock()
	defer f.mu.Unlock()
	f.alpha.scroll(c)
	f.logf("alpha: [%s]", f.alpha)
	return nil
}

type hostPixels struct{ f *faces }

func (p hostPixels) Fill(c color.RGBA) error {
	f := p.f
	f.mu.Lock()
	defer f.mu.Unlock()
	f.strip = scaleRGB(c, f.brightness)
	f.logf("pixels: #%02x%02x%02x", c.R, c.G, c.B)
	return nil
}

// hostLED is a button backlight lamp on the simulated device.
type hostLED struct {
	f *faces
	b input.Button
}

func (l *hostLED) High() { l.set(true) }
func (l *hostLED) Low()  { l.set(false) }

func (l *hostLED) set(on bool) {
	l.f.mu.Lock()
	defer l.f.mu.Unlock()
	if l.f.lights[l.b] == on {
		return
	}
	l.f.lights[l.b] = on
	l.f.logf("light %s: %s", l.b, onOff(on))
}
