//go:build !tinygo

package hal

import (
	"image/color"
	"sync"

	"tinygo.org/x/drivers"
)

type hostFramebuffer struct {
	mu     sync.Mutex
	width  int
	height int
	stride int
	buf    []byte
	// scroll is the buffer row shown at the top of the region.
	scroll int
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	stride := width * 2
	return &hostFramebuffer{
		width:  width,
		height: height,
		stride: stride,
		buf:    make([]byte, stride*height),
	}
}

func (f *hostFramebuffer) fillRect(x, y, w, h int, c color.RGBA) {
	f.mu.Lock()
	defer f.mu.Unlock()

	pixel := rgb565(c.R, c.G, c.B)
	lo, hi := byte(pixel), byte(pixel>>8)
	for yy := max(y, 0); yy < y+h && yy < f.height; yy++ {
		row := yy * f.stride
		for xx := max(x, 0); xx < x+w && xx < f.width; xx++ {
			f.buf[row+xx*2] = lo
			f.buf[row+xx*2+1] = hi
		}
	}
}

func (f *hostFramebuffer) clear(c color.RGBA) {
	f.fillRect(0, 0, f.width, f.height, c)
}

func (f *hostFramebuffer) setPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	pixel := rgb565(c.R, c.G, c.B)
	off := y*f.stride + x*2
	f.buf[off] = byte(pixel)
	f.buf[off+1] = byte(pixel >> 8)
}

func (f *hostFramebuffer) setScroll(line int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.height > 0 {
		f.scroll = ((line % f.height) + f.height) % f.height
	}
}

// copyRGBA converts the buffer into dst (RGBA, width*height*4 bytes),
// applying the scroll offset.
func (f *hostFramebuffer) copyRGBA(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for y := 0; y < f.height; y++ {
		src := ((y + f.scroll) % f.height) * f.stride
		out := y * f.width * 4
		for x := 0; x < f.width; x++ {
			p := uint16(f.buf[src+x*2]) | uint16(f.buf[src+x*2+1])<<8
			r, g, b := rgb888From565(p)
			dst[out+x*4+0] = r
			dst[out+x*4+1] = g
			dst[out+x*4+2] = b
			dst[out+x*4+3] = 0xFF
		}
	}
}

// fbDisplay exposes a framebuffer as a TinyGo display for tinyfont and
// tinyterm.
type fbDisplay struct {
	fb *hostFramebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func newFBDisplay(fb *hostFramebuffer) *fbDisplay {
	return &fbDisplay{fb: fb}
}

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.width), int16(d.fb.height)
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.fb.setPixel(int(x), int(y), c)
}

func (d *fbDisplay) Display() error { return nil }

func (d *fbDisplay) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	d.fb.fillRect(int(x), int(y), int(width), int(height), c)
	return nil
}

// SetScroll emulates the vertical scroll register of SPI panels.
func (d *fbDisplay) SetScroll(line int16) {
	d.fb.setScroll(int(line))
}
