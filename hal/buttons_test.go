package hal

import (
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"

	"turnclock/input"
)

func newTestButtons(t *testing.T, debounce time.Duration) (*buttonPoller, [2]*simPin, *input.Queue, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	minor := newSimPin(PinMinorButton, GPIOCapInput|GPIOCapPullUp)
	major := newSimPin(PinMajorButton, GPIOCapInput|GPIOCapPullUp)
	m := &pinMap{
		PinMinorButton: minor,
		PinMajorButton: major,
		PinMinorLight:  newSimPin(PinMinorLight, GPIOCapOutput),
		PinMajorLight:  newSimPin(PinMajorLight, GPIOCapOutput),
	}

	q := &input.Queue{}
	p, err := newButtonPoller(m, q, clock, debounce)
	if err != nil {
		t.Fatalf("newButtonPoller: %v", err)
	}
	return p, [2]*simPin{minor, major}, q, clock
}

func TestButtonPollerIdleHighIsReleased(t *testing.T) {
	p, _, q, _ := newTestButtons(t, DefaultDebounce)
	if err := p.poll(); err != nil {
		t.Fatalf("poll: %v", err)
	}
	if q.Len() != 0 {
		t.Fatalf("queued %d events with no press", q.Len())
	}
}

func TestButtonPollerDebounce(t *testing.T) {
	p, pins, q, clock := newTestButtons(t, 10*time.Millisecond)
	start := clock.Now()

	pins[input.Major].drive(false)
	_ = p.poll()
	clock.Advance(5 * time.Millisecond)
	_ = p.poll()
	if q.Len() != 0 {
		t.Fatalf("edge reported before debounce expired")
	}

	clock.Advance(5 * time.Millisecond)
	_ = p.poll()
	ev, ok := q.TryRecv()
	if !ok {
		t.Fatalf("no edge after debounce")
	}
	if ev.Button != input.Major || ev.Edge != input.Pressed {
		t.Fatalf("got %v %v, want major pressed", ev.Button, ev.Edge)
	}
	if !ev.Time.Equal(start) {
		t.Fatalf("edge time = %v, want first level change %v", ev.Time, start)
	}
}

func TestButtonPollerIgnoresBounce(t *testing.T) {
	p, pins, q, clock := newTestButtons(t, 10*time.Millisecond)

	for i := 0; i < 4; i++ {
		pins[input.Minor].drive(i%2 == 1)
		_ = p.poll()
		clock.Advance(2 * time.Millisecond)
	}
	// Settled released again: nothing to report.
	pins[input.Minor].drive(true)
	clock.Advance(20 * time.Millisecond)
	_ = p.poll()
	if q.Len() != 0 {
		t.Fatalf("bounce produced %d events", q.Len())
	}
}

func TestButtonPollerPressRelease(t *testing.T) {
	p, pins, q, clock := newTestButtons(t, 0)

	pins[input.Minor].drive(false)
	_ = p.poll()
	clock.Advance(4 * time.Second)
	pins[input.Minor].drive(true)
	_ = p.poll()

	down, _ := q.TryRecv()
	up, ok := q.TryRecv()
	if !ok {
		t.Fatalf("want two events")
	}
	if down.Edge != input.Pressed || up.Edge != input.Released {
		t.Fatalf("edges = %v, %v", down.Edge, up.Edge)
	}
	if held := up.Time.Sub(down.Time); held != 4*time.Second {
		t.Fatalf("held = %v, want 4s", held)
	}
}

func TestButtonPollerNeedsPins(t *testing.T) {
	m := &pinMap{PinMinorButton: newSimPin(PinMinorButton, GPIOCapInput|GPIOCapPullUp)}
	_, err := newButtonPoller(m, &input.Queue{}, clockwork.NewFakeClock(), 0)
	if err == nil || !strings.Contains(err.Error(), "BTN_MAJOR not wired") {
		t.Fatalf("err = %v, want missing major button", err)
	}
}

func TestPinBacklights(t *testing.T) {
	l0 := newSimPin(PinMinorLight, GPIOCapOutput)
	l1 := newSimPin(PinMajorLight, GPIOCapOutput)

	b, err := newPinBacklights(&pinMap{PinMinorLight: l0, PinMajorLight: l1})
	if err != nil {
		t.Fatalf("newPinBacklights: %v", err)
	}
	if err := b.Set(input.Major, true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if lvl, _ := l1.Read(); !lvl {
		t.Fatalf("major light not driven high")
	}
	if lvl, _ := l0.Read(); lvl {
		t.Fatalf("minor light changed")
	}
	if err := b.Set(input.Button(7), true); err == nil {
		t.Fatalf("expected error for unknown button")
	}
}

func TestPinBacklightsRejectsInputOnlyPin(t *testing.T) {
	var m pinMap
	for i := range m {
		m[i] = newSimPin(DevicePin(i), GPIOCapInput)
	}
	if _, err := newPinBacklights(&m); err == nil {
		t.Fatalf("expected configure error")
	}
}

func TestCheckMode(t *testing.T) {
	cases := []struct {
		caps GPIOCaps
		mode GPIOMode
		pull GPIOPull
		ok   bool
	}{
		{GPIOCapInput | GPIOCapPullUp, GPIOModeInput, GPIOPullUp, true},
		{GPIOCapInput, GPIOModeInput, GPIOPullNone, true},
		{GPIOCapInput, GPIOModeInput, GPIOPullUp, false},
		{GPIOCapInput, GPIOModeInput, GPIOPullDown, false},
		{GPIOCapOutput, GPIOModeOutput, GPIOPullNone, true},
		{GPIOCapOutput | GPIOCapPullUp, GPIOModeOutput, GPIOPullUp, false},
		{GPIOCapInput, GPIOModeOutput, GPIOPullNone, false},
		{GPIOCapInput | GPIOCapOutput, GPIOMode(9), GPIOPullNone, false},
	}
	for _, c := range cases {
		err := checkMode("P", c.caps, c.mode, c.pull)
		if (err == nil) != c.ok {
			t.Fatalf("checkMode(%b, %d, %d) = %v, want ok=%v", c.caps, c.mode, c.pull, err, c.ok)
		}
	}
}

type countingLED struct{ high, low int }

func (l *countingLED) High() { l.high++ }
func (l *countingLED) Low()  { l.low++ }

func TestLampPinDrivesLED(t *testing.T) {
	led := &countingLED{}
	p := newLampPin(PinMajorLight, led)
	if p.Name() != "LIGHT_MAJOR" {
		t.Fatalf("name = %q", p.Name())
	}
	if err := p.Configure(GPIOModeInput, GPIOPullNone); err == nil {
		t.Fatalf("lamp accepted input mode")
	}
	_ = p.Write(true)
	_ = p.Write(false)
	if lvl, _ := p.Read(); lvl || led.high != 1 || led.low != 1 {
		t.Fatalf("level=%v high=%d low=%d", lvl, led.high, led.low)
	}
}

func TestSimPinNeedsConfigure(t *testing.T) {
	p := newSimPin(PinMinorButton, GPIOCapInput|GPIOCapPullUp)
	if _, err := p.Read(); err == nil {
		t.Fatalf("read before configure succeeded")
	}
	if err := p.Write(true); err == nil {
		t.Fatalf("write on an input succeeded")
	}
}
