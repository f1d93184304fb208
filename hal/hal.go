package hal

import (
	"errors"
	"image/color"

	"github.com/jonboulle/clockwork"

	"turnclock/input"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

// ErrRestart reports that the core asked for a full reinitialization.
// The host runners handle it by rebuilding the core.
var ErrRestart = errors.New("restart requested")

// DisplayWidth is the number of characters on both segment displays.
const DisplayWidth = 4

// NumericDisplay is the 4-digit 7-segment time display.
type NumericDisplay interface {
	Show(text string, colon bool) error
}

// AlphaDisplay is the 4-character alphanumeric marquee window.
type AlphaDisplay interface {
	// ShowStatic replaces the window with text (padded or cut to 4 chars).
	ShowStatic(text string) error
	// ScrollStep shifts the window left by one and appends c on the right.
	ScrollStep(c byte) error
}

// PixelStrip is the RGB indicator.
type PixelStrip interface {
	Fill(c color.RGBA) error
}

// Backlights drives the lamps inside the two buttons.
type Backlights interface {
	Set(b input.Button, on bool) error
}

// Restarter asks whatever supervises the core to reinitialize it.
type Restarter interface {
	Restart()
}

// HAL provides the only contact point between the core and the outside world.
type HAL interface {
	Logger() Logger
	Numeric() NumericDisplay
	Alpha() AlphaDisplay
	Pixels() PixelStrip
	Backlights() Backlights
	// Buttons is filled by the platform with debounced edges.
	Buttons() *input.Queue
	Clock() clockwork.Clock
	Restarter() Restarter
}
