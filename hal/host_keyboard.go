//go:build !tinygo && cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"turnclock/input"
)

// hostKeyboard maps keys onto the device buttons: Space is the minor button,
// Enter the major one. Key levels drive the virtual pins so holds last as
// long as the key is down.
type hostKeyboard struct {
	h *hostHAL
}

func (k hostKeyboard) poll() (quit bool) {
	k.h.press(input.Minor, ebiten.IsKeyPressed(ebiten.KeySpace))
	k.h.press(input.Major, ebiten.IsKeyPressed(ebiten.KeyEnter) || ebiten.IsKeyPressed(ebiten.KeyNumpadEnter))
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
