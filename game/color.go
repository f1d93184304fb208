package game

import "image/color"

// Color is a named player color.
type Color struct {
	Name    string
	R, G, B uint8
}

// RGBA returns the color for pixel drivers.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

func (c Color) String() string { return c.Name }

var (
	Red    = Color{"RED", 255, 0, 0}
	Green  = Color{"GREEN", 0, 255, 0}
	Blue   = Color{"BLUE", 0, 0, 255}
	Yellow = Color{"YELLOW", 255, 255, 0}
	Purple = Color{"PURPLE", 255, 0, 255}
	Orange = Color{"ORANGE", 255, 70, 0}
	White  = Color{"WHITE", 255, 255, 255}
	Pink   = Color{"PINK", 255, 90, 90}
	Cyan   = Color{"CYAN", 0, 255, 255}
	Grey   = Color{"GREY", 50, 50, 50}
	Black  = Color{"BLACK", 0, 0, 0}
)

// palette is the order the setup wizard offers colors in.
var palette = [...]Color{Red, Green, Blue, Yellow, Purple, Orange, Pink, Cyan, Grey, White, Black}

// PaletteSize is the number of selectable colors.
const PaletteSize = len(palette)

// PaletteAt returns the palette entry at i, wrapping in both directions.
func PaletteAt(i int) Color {
	i %= PaletteSize
	if i < 0 {
		i += PaletteSize
	}
	return palette[i]
}
