// Package device holds the state shared by the scheduled tasks: the game,
// the marquee slot and the handles to the hardware.
package device

import (
	"fmt"
	"image/color"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"turnclock/game"
	"turnclock/hal"
	"turnclock/input"
	"turnclock/internal/applog"
	"turnclock/marquee"
)

// Timing collects the device delays.
type Timing struct {
	// MarqueeSpeed is the scroll step of status messages.
	MarqueeSpeed time.Duration
	// Refresh is the time display period.
	Refresh time.Duration
	// ReadyDelay is how long "RDY " shows before play is enabled.
	ReadyDelay time.Duration
	// LongPress is the minor-button hold that ends or restarts a game.
	LongPress time.Duration
}

// DefaultTiming returns the firmware delays.
func DefaultTiming() Timing {
	return Timing{
		MarqueeSpeed: marquee.DefaultSpeed,
		Refresh:      50 * time.Millisecond,
		ReadyDelay:   500 * time.Millisecond,
		LongPress:    input.DefaultLongPress,
	}
}

// Device is the context object handed to every task.
//
// Only the scheduler goroutine touches it.
type Device struct {
	Game    *game.Game
	Marquee *marquee.Channel

	Numeric    hal.NumericDisplay
	Alpha      hal.AlphaDisplay
	Pixels     hal.PixelStrip
	Backlights hal.Backlights
	Buttons    *input.Queue
	Restarter  hal.Restarter

	Clock   clockwork.Clock
	Timing  Timing
	Session uuid.UUID
	Log     zerolog.Logger
}

// New builds a device on h with a fresh game and session id.
func New(h hal.HAL, timing Timing, log zerolog.Logger) *Device {
	session := uuid.New()
	return &Device{
		Game:       game.New(),
		Marquee:    &marquee.Channel{},
		Numeric:    h.Numeric(),
		Alpha:      h.Alpha(),
		Pixels:     h.Pixels(),
		Backlights: h.Backlights(),
		Buttons:    h.Buttons(),
		Restarter:  h.Restarter(),
		Clock:      h.Clock(),
		Timing:     timing,
		Session:    session,
		Log:        log.With().Str("session", session.String()).Logger(),
	}
}

// Logger returns a component sub-logger.
func (d *Device) Logger(component string) zerolog.Logger {
	return applog.Component(d.Log, component)
}

// Say scrolls a status message at the configured speed.
func (d *Device) Say(text string) {
	d.Marquee.Set(text, d.Timing.MarqueeSpeed, true)
}

// ShowPlayer announces p on the marquee and shows its color on the strip.
func (d *Device) ShowPlayer(p *game.Player) error {
	d.Say(fmt.Sprintf("%d PLAYER ", p.Number))
	if err := d.Pixels.Fill(p.Color.RGBA()); err != nil {
		return fmt.Errorf("pixels: %w", err)
	}
	return nil
}

// Blank turns the strip off.
func (d *Device) Blank() error {
	if err := d.Pixels.Fill(color.RGBA{}); err != nil {
		return fmt.Errorf("pixels: %w", err)
	}
	return nil
}

// Light sets one button backlight.
func (d *Device) Light(l input.Light) error {
	if err := d.Backlights.Set(l.Button, l.On); err != nil {
		return fmt.Errorf("backlight %s: %w", l.Button, err)
	}
	return nil
}
