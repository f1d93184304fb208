package hal

import (
	"fmt"

	"tinygo.org/x/drivers"
)

// HT16K33 LED backpack driver, talking to the chip over a TinyGo I2C bus.

const (
	ht16k33AddrNumeric = 0x70
	ht16k33AddrAlpha   = 0x71

	ht16k33CmdOscOn      = 0x21
	ht16k33CmdDisplayOn  = 0x81
	ht16k33CmdBrightness = 0xE0

	// 7-segment backpack: digit RAM slots and the colon slot.
	seg7ColonSlot = 2
	seg7ColonBits = 0x02
)

var seg7DigitSlots = [DisplayWidth]int{0, 1, 3, 4}

type ht16k33 struct {
	bus  drivers.I2C
	addr uint16

	// ram[0] is the RAM start address; ram[1:] mirrors display RAM.
	ram [17]byte
}

func newHT16K33(bus drivers.I2C, addr uint16, brightness float64) (*ht16k33, error) {
	if bus == nil {
		return nil, fmt.Errorf("ht16k33 0x%02x: no bus", addr)
	}
	d := &ht16k33{bus: bus, addr: addr}
	if err := d.command(ht16k33CmdOscOn); err != nil {
		return nil, err
	}
	if err := d.command(ht16k33CmdDisplayOn); err != nil {
		return nil, err
	}
	if err := d.setBrightness(brightness); err != nil {
		return nil, err
	}
	if err := d.flush(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *ht16k33) command(cmd byte) error {
	if err := d.bus.Tx(d.addr, []byte{cmd}, nil); err != nil {
		return fmt.Errorf("ht16k33 0x%02x: cmd 0x%02x: %w", d.addr, cmd, err)
	}
	return nil
}

// setBrightness maps 0..1 onto the 16 dimming steps.
func (d *ht16k33) setBrightness(level float64) error {
	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}
	return d.command(ht16k33CmdBrightness | byte(level*15+0.5))
}

func (d *ht16k33) setSlot(slot int, bits uint16) {
	d.ram[1+slot*2] = byte(bits)
	d.ram[2+slot*2] = byte(bits >> 8)
}

func (d *ht16k33) flush() error {
	d.ram[0] = 0x00
	if err := d.bus.Tx(d.addr, d.ram[:], nil); err != nil {
		return fmt.Errorf("ht16k33 0x%02x: write ram: %w", d.addr, err)
	}
	return nil
}

// seg7Display is the numeric time display on a 7-segment backpack.
type seg7Display struct {
	dev *ht16k33
}

func (s *seg7Display) Show(text string, colon bool) error {
	w := fit(text)
	for i, slot := range seg7DigitSlots {
		s.dev.setSlot(slot, uint16(glyph7(w[i])))
	}
	var c uint16
	if colon {
		c = seg7ColonBits
	}
	s.dev.setSlot(seg7ColonSlot, c)
	return s.dev.flush()
}

// seg14Display is the marquee window on a 14-segment backpack.
type seg14Display struct {
	dev *ht16k33
	win window
}

func (s *seg14Display) ShowStatic(text string) error {
	s.win = fit(text)
	return s.render()
}

func (s *seg14Display) ScrollStep(c byte) error {
	s.win.scroll(c)
	return s.render()
}

func (s *seg14Display) render() error {
	for i, c := range s.win {
		s.dev.setSlot(i, glyph14(c))
	}
	return s.dev.flush()
}
