package hal

// Segment fonts for the HT16K33 backpacks. Unknown characters render blank.

var seg7 = [128]uint8{
	'0': 0x3F, '1': 0x06, '2': 0x5B, '3': 0x4F, '4': 0x66,
	'5': 0x6D, '6': 0x7D, '7': 0x07, '8': 0x7F, '9': 0x6F,
	'-': 0x40, '_': 0x08,
	'A': 0x77, 'B': 0x7C, 'C': 0x39, 'D': 0x5E, 'E': 0x79, 'F': 0x71,
	'P': 0x73, 'R': 0x50, 'Y': 0x6E,
}

var seg14 = [128]uint16{
	'0': 0x0C3F, '1': 0x0006, '2': 0x00DB, '3': 0x008F, '4': 0x00E6,
	'5': 0x2069, '6': 0x00FD, '7': 0x0007, '8': 0x00FF, '9': 0x00EF,
	'A': 0x00F7, 'B': 0x128F, 'C': 0x0039, 'D': 0x120F, 'E': 0x00F9,
	'F': 0x0071, 'G': 0x00BD, 'H': 0x00F6, 'I': 0x1209, 'J': 0x001E,
	'K': 0x2470, 'L': 0x0038, 'M': 0x0536, 'N': 0x2136, 'O': 0x003F,
	'P': 0x00F3, 'Q': 0x203F, 'R': 0x20F3, 'S': 0x00ED, 'T': 0x1201,
	'U': 0x003E, 'V': 0x0C30, 'W': 0x2836, 'X': 0x2D00, 'Y': 0x1500,
	'Z': 0x0C09,
	'-': 0x00C0, '_': 0x0008, '.': 0x4000, '\'': 0x0400, '/': 0x0C00,
}

func glyph7(c byte) uint8 {
	c = upper(c)
	if c >= 128 {
		return 0
	}
	return seg7[c]
}

func glyph14(c byte) uint16 {
	c = upper(c)
	if c >= 128 {
		return 0
	}
	return seg14[c]
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// window is the visible part of a 4-character display.
type window [DisplayWidth]byte

// fit pads or cuts text to the display width.
func fit(text string) window {
	var w window
	for i := range w {
		w[i] = ' '
		if i < len(text) {
			w[i] = text[i]
		}
	}
	return w
}

// scroll shifts the window left and appends c.
func (w *window) scroll(c byte) {
	copy(w[:], w[1:])
	w[DisplayWidth-1] = c
}

func (w window) String() string { return string(w[:]) }
