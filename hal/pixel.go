package hal

import "image/color"

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// scaleRGB dims a color by brightness in 0..1, as the pixel strip driver
// has no global brightness register.
func scaleRGB(c color.RGBA, brightness float64) color.RGBA {
	if brightness <= 0 {
		return color.RGBA{A: c.A}
	}
	if brightness >= 1 {
		return c
	}
	return color.RGBA{
		R: uint8(float64(c.R)*brightness + 0.5),
		G: uint8(float64(c.G)*brightness + 0.5),
		B: uint8(float64(c.B)*brightness + 0.5),
		A: c.A,
	}
}
