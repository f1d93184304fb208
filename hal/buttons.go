package hal

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"turnclock/input"
)

// DefaultDebounce is how long a button level must hold before it counts.
const DefaultDebounce = 10 * time.Millisecond

type pinBacklights struct {
	pins [2]GPIOPin
}

func newPinBacklights(m *pinMap) (*pinBacklights, error) {
	if err := m.wired(PinMinorLight, PinMajorLight); err != nil {
		return nil, fmt.Errorf("backlights: %w", err)
	}
	b := &pinBacklights{pins: [2]GPIOPin{m[PinMinorLight], m[PinMajorLight]}}
	for _, p := range b.pins {
		if err := p.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
			return nil, fmt.Errorf("backlights: %w", err)
		}
	}
	return b, nil
}

func (b *pinBacklights) Set(btn input.Button, on bool) error {
	if int(btn) >= len(b.pins) {
		return fmt.Errorf("backlights: unknown button %d", btn)
	}
	return b.pins[btn].Write(on)
}

// buttonPoller samples the two button inputs, debounces them and queues
// edges. Buttons are active-low with pull-ups.
type buttonPoller struct {
	clock    clockwork.Clock
	q        *input.Queue
	debounce time.Duration

	pins    [2]GPIOPin
	stable  [2]bool // true = pressed
	pending [2]bool
	since   [2]time.Time
}

func newButtonPoller(m *pinMap, q *input.Queue, clock clockwork.Clock, debounce time.Duration) (*buttonPoller, error) {
	if err := m.wired(PinMinorButton, PinMajorButton); err != nil {
		return nil, fmt.Errorf("buttons: %w", err)
	}
	if debounce < 0 {
		debounce = 0
	}
	p := &buttonPoller{
		clock:    clock,
		q:        q,
		debounce: debounce,
		pins:     [2]GPIOPin{m[PinMinorButton], m[PinMajorButton]},
	}
	for _, pin := range p.pins {
		if err := pin.Configure(GPIOModeInput, GPIOPullUp); err != nil {
			return nil, fmt.Errorf("buttons: %w", err)
		}
	}
	return p, nil
}

// poll samples both pins once.
func (p *buttonPoller) poll() error {
	now := p.clock.Now()
	for i, pin := range p.pins {
		level, err := pin.Read()
		if err != nil {
			return fmt.Errorf("buttons: %s: %w", pin.Name(), err)
		}
		down := !level

		if down != p.pending[i] {
			p.pending[i] = down
			p.since[i] = now
		}
		if p.pending[i] == p.stable[i] || now.Sub(p.since[i]) < p.debounce {
			continue
		}

		p.stable[i] = p.pending[i]
		edge := input.Released
		if p.stable[i] {
			edge = input.Pressed
		}
		p.q.TrySend(input.Event{Button: input.Button(i), Edge: edge, Time: p.since[i]})
	}
	return nil
}
