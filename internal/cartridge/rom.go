package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// readROM handles cartridges without a bank controller. The ROM is
// mapped as is, RAM (ROM+RAM only) is always enabled.
func (c *Cartridge) readROM(address uint16) uint8 {
	if address < 0x8000 {
		if int(address) >= len(c.rom) {
			return types.OpenBus
		}
		return c.rom[address]
	}
	if b := c.ramByte(0, address-0xA000); b != nil {
		return *b
	}
	return types.OpenBus
}

// writeROM discards writes to ROM.
func (c *Cartridge) writeROM(address uint16, value uint8) {
	if address < 0x8000 {
		return
	}
	if b := c.ramByte(0, address-0xA000); b != nil {
		*b = value
	}
}
