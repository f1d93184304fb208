package device

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"turnclock/game"
	"turnclock/hal"
	"turnclock/input"
)

func TestShowPlayer(t *testing.T) {
	clock := clockwork.NewFakeClock()
	rec := hal.NewRecorder(clock)
	d := New(rec, DefaultTiming(), zerolog.Nop())

	p := game.NewPlayer(3, game.PaletteAt(1), clock)
	if err := d.ShowPlayer(p); err != nil {
		t.Fatalf("ShowPlayer: %v", err)
	}
	m := d.Marquee.Current()
	if m.Text != "3 PLAYER " || !m.Scroll || m.Speed != d.Timing.MarqueeSpeed {
		t.Fatalf("marquee = %+v", m)
	}
	if got := rec.Strip(); got != p.Color.RGBA() {
		t.Fatalf("strip = %v, want %v", got, p.Color.RGBA())
	}
}

func TestShowPlayerPixelError(t *testing.T) {
	rec := hal.NewRecorder(clockwork.NewFakeClock())
	boom := errors.New("strip")
	rec.FailWith("pixels", boom)
	d := New(rec, DefaultTiming(), zerolog.Nop())

	err := d.ShowPlayer(game.NewPlayer(1, game.PaletteAt(0), rec.Clock()))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
}

func TestLightAndBlank(t *testing.T) {
	rec := hal.NewRecorder(clockwork.NewFakeClock())
	d := New(rec, DefaultTiming(), zerolog.Nop())

	if err := d.Light(input.Light{Button: input.Minor, On: false}); err != nil {
		t.Fatalf("Light: %v", err)
	}
	if rec.Light(input.Minor) {
		t.Fatalf("minor light still on")
	}
	_ = d.Pixels.Fill(game.PaletteAt(0).RGBA())
	if err := d.Blank(); err != nil {
		t.Fatalf("Blank: %v", err)
	}
	if c := rec.Strip(); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Fatalf("strip not blank: %v", c)
	}
}

func TestSessionTagsLogs(t *testing.T) {
	var buf bytes.Buffer
	d := New(hal.NewRecorder(clockwork.NewFakeClock()), DefaultTiming(), zerolog.New(&buf))
	if d.Session == uuid.Nil {
		t.Fatalf("no session id")
	}
	l := d.Logger("buttons")
	l.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, d.Session.String()) || !strings.Contains(out, `"component":"buttons"`) {
		t.Fatalf("log line = %s", out)
	}
}
