package ppu

import "testing"

func TestPalette_Shade(t *testing.T) {
	// 0xE4 is the identity palette: 3, 2, 1, 0
	p := Palette(0xE4)
	for i := uint8(0); i < 4; i++ {
		if p.Shade(i) != Shade(i) {
			t.Errorf("colour %d: expected shade %d, got %d", i, i, p.Shade(i))
		}
	}

	p = Palette(0xFC)
	want := [4]Shade{White, Black, Black, Black}
	for i, s := range want {
		if got := p.Shade(uint8(i)); got != s {
			t.Errorf("colour %d: expected shade %d, got %d", i, s, got)
		}
	}
	if NewPalette(want) != p {
		t.Errorf("expected NewPalette to produce 0x%02X, got 0x%02X", uint8(p), uint8(NewPalette(want)))
	}
	if Black.RGB() != [3]uint8{0, 0, 0} {
		t.Errorf("expected black to be 0,0,0, got %v", Black.RGB())
	}
}

func TestController(t *testing.T) {
	c := Controller(0x91)
	if !c.Enabled() || !c.BackgroundEnabled() || c.SpriteEnabled() || c.WindowEnabled() {
		t.Errorf("unexpected flags for 0x91")
	}
	if c.TileDataAddress() != 0x8000 {
		t.Errorf("expected tile data at 0x8000, got 0x%04X", c.TileDataAddress())
	}
	if c.BackgroundTileMapAddress() != 0x9800 || c.WindowTileMapAddress() != 0x9800 {
		t.Errorf("expected tile maps at 0x9800")
	}
	if c.SpriteSize() != 8 || Controller(0x04).SpriteSize() != 16 {
		t.Errorf("unexpected sprite size")
	}
}
