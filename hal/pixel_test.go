package hal

import (
	"image/color"
	"testing"
)

func TestScaleRGB(t *testing.T) {
	c := color.RGBA{R: 200, G: 100, B: 10, A: 255}
	if got := scaleRGB(c, 1); got != c {
		t.Fatalf("full brightness changed color: %v", got)
	}
	if got := scaleRGB(c, 0); got != (color.RGBA{A: 255}) {
		t.Fatalf("zero brightness = %v", got)
	}
	if got := scaleRGB(c, 0.5); got.R != 100 || got.G != 50 || got.B != 5 {
		t.Fatalf("half brightness = %v", got)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	r, g, b := rgb888From565(rgb565(255, 0, 255))
	if r < 248 || g != 0 || b < 248 {
		t.Fatalf("magenta = %d,%d,%d", r, g, b)
	}
}
