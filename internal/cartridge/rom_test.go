package cartridge

import "testing"

func TestROM_ReadWrite(t *testing.T) {
	rom := newROM(2, ROM, 0)
	for i := range rom[0x150:] {
		rom[0x150+i] = byte(i * 7)
	}
	c, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}

	for addr := 0; addr < 0x8000; addr++ {
		if got := c.Read(uint16(addr)); got != rom[addr] {
			t.Fatalf("0x%04X: expected 0x%02X, got 0x%02X", addr, rom[addr], got)
		}
	}

	// writes are ignored, including bank select
	c.Write(0x2000, 0x01)
	c.Write(0x4000, 0xFF)
	c.Write(0x0150, 0xAB)
	if got := c.Read(0x4000); got != rom[0x4000] {
		t.Errorf("expected writes to be ignored, got 0x%02X", got)
	}
	if got := c.Read(0x0150); got != rom[0x0150] {
		t.Errorf("expected ROM to be read only, got 0x%02X", got)
	}

	if got := c.Read(0xA000); got != 0xFF {
		t.Errorf("expected absent RAM to read 0xFF, got 0x%02X", got)
	}
}

func TestROMRAM_ReadWrite(t *testing.T) {
	c, err := NewCartridge(newROM(2, ROMRAMBATT, 0x02))
	if err != nil {
		t.Fatal(err)
	}
	c.Write(0xA123, 0x42)
	if got := c.Read(0xA123); got != 0x42 {
		t.Errorf("expected 0x42, got 0x%02X", got)
	}
}

func TestROM_ShortImage(t *testing.T) {
	rom := newROM(1, ROM, 0)
	c, err := NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Read(0x4000); got != 0xFF {
		t.Errorf("expected reads past the image to return 0xFF, got 0x%02X", got)
	}
}
