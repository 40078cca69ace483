package ppu

// Shade is one of the four levels of grey of the DMG screen.
type Shade uint8

const (
	White Shade = iota
	LightGrey
	DarkGrey
	Black
)

// greyscale is the RGB value of each Shade.
var greyscale = [4][3]uint8{
	{0xFF, 0xFF, 0xFF},
	{0xCC, 0xCC, 0xCC},
	{0x77, 0x77, 0x77},
	{0x00, 0x00, 0x00},
}

// RGB returns the colour used to display s.
func (s Shade) RGB() [3]uint8 {
	return greyscale[s&0x03]
}

// Palette is one of the monochrome palette registers (BGP, OBP0, OBP1).
// Each colour number 0-3 is mapped to a Shade, two bits per colour with
// colour 0 in the lowest bits.
type Palette uint8

// Shade returns the shade colour number index is mapped to.
func (p Palette) Shade(index uint8) Shade {
	return Shade(p>>((index&0x03)*2)) & 0x03
}

// NewPalette builds the register value mapping colour i to shades[i].
func NewPalette(shades [4]Shade) Palette {
	var p Palette
	for i, s := range shades {
		p |= Palette(s&0x03) << (i * 2)
	}
	return p
}
