package hal

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"turnclock/input"
)

// Entry is one observed change on a recorded sink.
type Entry struct {
	At    time.Time
	Sink  string
	Value string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s %-8s %s", e.At.Format("15:04:05.000"), e.Sink, e.Value)
}

// Recorder is an in-memory HAL. It keeps the current state of every sink and
// a transcript of changes, and lets callers inject button edges. It backs the
// simulator and the tests.
type Recorder struct {
	mu    sync.Mutex
	clock clockwork.Clock
	queue input.Queue

	numeric window
	colon   bool
	alpha   window
	strip   color.RGBA
	lights  [2]bool

	restarts int
	entries  []Entry
	lines    []string
	fail     map[string]error
}

// NewRecorder returns a recorder on clock.
func NewRecorder(clock clockwork.Clock) *Recorder {
	return &Recorder{
		clock:   clock,
		numeric: fit(""),
		alpha:   fit(""),
		lights:  [2]bool{true, true},
	}
}

func (r *Recorder) Logger() Logger          { return recLogger{r} }
func (r *Recorder) Numeric() NumericDisplay { return recNumeric{r} }
func (r *Recorder) Alpha() AlphaDisplay     { return recAlpha{r} }
func (r *Recorder) Pixels() PixelStrip      { return recPixels{r} }
func (r *Recorder) Backlights() Backlights  { return recLights{r} }
func (r *Recorder) Buttons() *input.Queue   { return &r.queue }
func (r *Recorder) Clock() clockwork.Clock  { return r.clock }
func (r *Recorder) Restarter() Restarter    { return recRestart{r} }

// Push queues a button edge stamped with the current clock reading.
func (r *Recorder) Push(b input.Button, e input.Edge) bool {
	return r.queue.TrySend(input.Event{Button: b, Edge: e, Time: r.clock.Now()})
}

// FailWith makes every later call on sink ("numeric", "alpha", "pixels",
// "lights") return err.
func (r *Recorder) FailWith(sink string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail == nil {
		r.fail = make(map[string]error)
	}
	r.fail[sink] = err
}

// NumericText returns the numeric display contents and colon state.
func (r *Recorder) NumericText() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.numeric.String(), r.colon
}

// AlphaText returns the visible marquee window.
func (r *Recorder) AlphaText() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.alpha.String()
}

// Strip returns the last pixel strip color.
func (r *Recorder) Strip() color.RGBA {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.strip
}

// Light returns the state of a button backlight.
func (r *Recorder) Light(b input.Button) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if int(b) >= len(r.lights) {
		return false
	}
	return r.lights[b]
}

// Restarts returns how many restart requests were issued.
func (r *Recorder) Restarts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.restarts
}

// Entries returns a copy of the transcript.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Lines returns a copy of the log lines.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// record appends a transcript entry unless value repeats the sink's last one.
// The caller holds r.mu.
func (r *Recorder) record(sink, value string) {
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].Sink != sink {
			continue
		}
		if r.entries[i].Value == value {
			return
		}
		break
	}
	r.entries = append(r.entries, Entry{At: r.clock.Now(), Sink: sink, Value: value})
}

func (r *Recorder) failed(sink string) error {
	if r.fail == nil {
		return nil
	}
	return r.fail[sink]
}

type recLogger struct{ r *Recorder }

func (l recLogger) WriteLineString(s string) {
	l.r.mu.Lock()
	defer l.r.mu.Unlock()
	l.r.lines = append(l.r.lines, s)
}

func (l recLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

type recNumeric struct{ r *Recorder }

func (n recNumeric) Show(text string, colon bool) error {
	r := n.r
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("numeric"); err != nil {
		return err
	}
	r.numeric = fit(text)
	r.colon = colon
	r.record("numeric", formatNumeric(r.numeric, colon))
	return nil
}

type recAlpha struct{ r *Recorder }

func (a recAlpha) ShowStatic(text string) error {
	r := a.r
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("alpha"); err != nil {
		return err
	}
	r.alpha = fit(text)
	r.record("alpha", "["+r.alpha.String()+"]")
	return nil
}

func (a recAlpha) ScrollStep(c byte) error {
	r := a.r
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("alpha"); err != nil {
		return err
	}
	r.alpha.scroll(c)
	r.record("alpha", "["+r.alpha.String()+"]")
	return nil
}

type recPixels struct{ r *Recorder }

func (p recPixels) Fill(c color.RGBA) error {
	r := p.r
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("pixels"); err != nil {
		return err
	}
	r.strip = c
	r.record("pixels", fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	return nil
}

type recLights struct{ r *Recorder }

func (l recLights) Set(b input.Button, on bool) error {
	r := l.r
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("lights"); err != nil {
		return err
	}
	if int(b) >= len(r.lights) {
		return fmt.Errorf("lights: unknown button %d", b)
	}
	r.lights[b] = on
	r.record("light."+b.String(), onOff(on))
	return nil
}

type recRestart struct{ r *Recorder }

func (x recRestart) Restart() {
	x.r.mu.Lock()
	defer x.r.mu.Unlock()
	x.r.restarts++
	x.r.entries = append(x.r.entries, Entry{At: x.r.clock.Now(), Sink: "restart", Value: "requested"})
}

func formatNumeric(w window, colon bool) string {
	if colon {
		return "[" + string(w[:2]) + ":" + string(w[2:]) + "]"
	}
	return "[" + w.String() + "]"
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
