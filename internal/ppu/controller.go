package ppu

import "github.com/thelolagemann/gbcore/internal/types"

// Controller is the LCD control register (types.LCDC). It controls
// various aspects of the LCD, such as enabling the background and
// window display.
//
//	Bit 7 - LCD Enable             (0=Off, 1=On)
//	Bit 6 - Window Tile Map Display Select (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 5 - Window Display Enable          (0=Off, 1=On)
//	Bit 4 - BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
//	Bit 3 - BG Tile Map Display Select     (0=9800-9BFF, 1=9C00-9FFF)
//	Bit 2 - OBJ (Sprite) Size              (0=8x8, 1=8x16)
//	Bit 1 - OBJ (Sprite) Display Enable    (0=Off, 1=On)
//	Bit 0 - BG/Window Display/Priority     (0=Off, 1=On)
type Controller uint8

// Enabled reports whether the LCD and PPU are on.
func (c Controller) Enabled() bool {
	return c&types.Bit7 != 0
}

// WindowTileMapAddress returns the start of the tile map used by the window.
func (c Controller) WindowTileMapAddress() uint16 {
	if c&types.Bit6 != 0 {
		return 0x9C00
	}
	return 0x9800
}

func (c Controller) WindowEnabled() bool {
	return c&types.Bit5 != 0
}

// TileDataAddress returns the start of the BG and window tile data.
// At 0x8800 the tile numbers are signed.
func (c Controller) TileDataAddress() uint16 {
	if c&types.Bit4 != 0 {
		return 0x8000
	}
	return 0x8800
}

// BackgroundTileMapAddress returns the start of the tile map used by the
// background.
func (c Controller) BackgroundTileMapAddress() uint16 {
	if c&types.Bit3 != 0 {
		return 0x9C00
	}
	return 0x9800
}

// SpriteSize returns the height of objects, 8 or 16.
func (c Controller) SpriteSize() uint8 {
	if c&types.Bit2 != 0 {
		return 16
	}
	return 8
}

func (c Controller) SpriteEnabled() bool {
	return c&types.Bit1 != 0
}

func (c Controller) BackgroundEnabled() bool {
	return c&types.Bit0 != 0
}
