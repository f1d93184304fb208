//go:build !tinygo && cgo

package hal

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"

	"turnclock/input"
	"turnclock/internal/buildinfo"
)

const (
	windowWidth = 320
	faceHeight  = 112
	paneHeight  = 128
)

var (
	colorPanel   = color.RGBA{0x18, 0x18, 0x18, 0xFF}
	colorSegment = color.RGBA{0xFF, 0x30, 0x20, 0xFF}
	colorAlpha   = color.RGBA{0x40, 0xFF, 0x60, 0xFF}
	colorLabel   = color.RGBA{0x90, 0x90, 0x90, 0xFF}
	colorLamp    = color.RGBA{0xFF, 0xE0, 0x80, 0xFF}
	colorLampOff = color.RGBA{0x40, 0x38, 0x20, 0xFF}
)

// stripPixels is the number of LEDs drawn for the pixel strip.
const stripPixels = 8

// WindowConfig controls the desktop window runner.
type WindowConfig struct {
	Host HostConfig
	// Scale multiplies the window size.
	Scale int
}

// RunWindow starts a desktop window that draws the device faces and a log
// pane, and forwards the keyboard to the buttons. It blocks until the window
// closes or the core stops.
func RunWindow(newApp func(HAL) func() error, cfg WindowConfig) error {
	h, err := newHost(cfg.Host)
	if err != nil {
		return err
	}
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}

	g := &hostGame{
		h:      h,
		kbd:    hostKeyboard{h: h},
		newApp: newApp,
		face:   newHostFramebuffer(windowWidth, faceHeight),
		pane:   newHostFramebuffer(windowWidth, paneHeight),
	}
	g.term = tinyterm.NewTerminal(newFBDisplay(g.pane))
	g.term.Configure(&tinyterm.Config{
		Font:       &proggy.TinySZ8pt7b,
		FontHeight: 10,
		FontOffset: 6,
	})
	h.logger.tee(func(s string) {
		fmt.Fprintf(g.term, "%s\r\n", s)
	})
	g.step = newApp(h)

	ebiten.SetWindowTitle("turnclock (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(windowWidth*cfg.Scale, (faceHeight+paneHeight)*cfg.Scale)
	ebiten.SetTPS(120)
	err = ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type hostGame struct {
	h      *hostHAL
	kbd    hostKeyboard
	newApp func(HAL) func() error
	step   func() error

	face *hostFramebuffer
	pane *hostFramebuffer
	term *tinyterm.Terminal

	pix   []byte
	image *ebiten.Image
}

func (g *hostGame) Update() error {
	if g.kbd.poll() {
		return ebiten.Termination
	}
	err := g.h.frame(g.step)
	if errors.Is(err, ErrRestart) {
		g.step = g.h.reboot(g.newApp)
		return nil
	}
	return err
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	g.drawFaces(g.h.faces.snapshot())

	if g.image == nil {
		g.image = ebiten.NewImage(windowWidth, faceHeight+paneHeight)
		g.pix = make([]byte, windowWidth*(faceHeight+paneHeight)*4)
	}
	g.face.copyRGBA(g.pix[:windowWidth*faceHeight*4])
	g.pane.copyRGBA(g.pix[windowWidth*faceHeight*4:])
	g.image.WritePixels(g.pix)
	screen.DrawImage(g.image, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowWidth, faceHeight + paneHeight
}

// drawFaces renders the numeric display, the marquee window, the strip and
// the two button lamps.
func (g *hostGame) drawFaces(s faceSnapshot) {
	fb := g.face
	d := newFBDisplay(fb)
	fb.clear(color.RGBA{A: 0xFF})

	// Numeric display with colon.
	fb.fillRect(8, 8, 148, 48, colorPanel)
	num := string(s.numeric[:2]) + " " + string(s.numeric[2:])
	if s.colon {
		num = string(s.numeric[:2]) + ":" + string(s.numeric[2:])
	}
	tinyfont.WriteLine(d, &freemono.Bold18pt7b, 14, 44, num, colorSegment)

	// Marquee window.
	fb.fillRect(164, 8, 148, 48, colorPanel)
	tinyfont.WriteLine(d, &freemono.Bold18pt7b, 174, 44, s.alpha.String(), colorAlpha)

	// Pixel strip.
	for i := 0; i < stripPixels; i++ {
		fb.fillRect(8+i*20, 68, 16, 16, s.strip)
	}

	// Button lamps.
	for i, label := range []string{input.Minor.String(), input.Major.String()} {
		x := 184 + i*68
		lamp := colorLampOff
		if s.lights[i] {
			lamp = colorLamp
		}
		fb.fillRect(x, 64, 56, 24, lamp)
		tinyfont.WriteLine(d, &proggy.TinySZ8pt7b, int16(x+8), 102, label, colorLabel)
	}
}
