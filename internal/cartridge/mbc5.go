package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// readMBC5 reads from an MBC5 cartridge. Unlike the MBC1, bank 0 can be
// mapped into 4000-7FFF.
func (c *Cartridge) readMBC5(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return c.romByte(0, address) // first bank is always fixed
	case address < 0x8000:
		return c.romByte(int(c.romBank)%c.romBanks, address-0x4000)
	}

	if !c.ramEnabled {
		return types.OpenBus
	}
	if b := c.ramByte(int(c.ramBank), address-0xA000); b != nil {
		return *b
	}
	return types.OpenBus
}

func (c *Cartridge) writeMBC5(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		c.ramEnabled = value&0x0F == 0x0A
	case address < 0x3000:
		// ROM bank number (lower 8 bits)
		c.romBank = c.romBank&0x100 | uint16(value)
	case address < 0x4000:
		// ROM bank number (upper 1 bit)
		c.romBank = c.romBank&0x0FF | uint16(value&0x01)<<8
	case address < 0x6000:
		c.ramBank = value & 0x0F
	case address < 0x8000:
		// unused
	default:
		if !c.ramEnabled {
			return
		}
		if b := c.ramByte(int(c.ramBank), address-0xA000); b != nil {
			*b = value
		}
	}
}
