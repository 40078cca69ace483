package cartridge

import "github.com/thelolagemann/gbcore/internal/types"

// readMBC1 reads from an MBC1 cartridge. The MBC1 supports up to 2MiB of
// ROM and 32KiB of RAM, selected through two bank registers.
func (c *Cartridge) readMBC1(address uint16) uint8 {
	switch {
	case address < 0x4000:
		bank := 0
		if c.advancedBanking {
			bank = int(c.ramBank) << 5
		}
		return c.romByte(bank%c.romBanks, address)
	case address < 0x8000:
		bank := int(c.ramBank)<<5 | int(c.romBank)
		return c.romByte(bank%c.romBanks, address-0x4000)
	}

	if !c.ramEnabled {
		return types.OpenBus
	}
	if b := c.ramByte(c.mbc1RAMBank(), address-0xA000); b != nil {
		return *b
	}
	return types.OpenBus
}

// writeMBC1 updates the bank registers, or writes to the selected
// RAM bank.
func (c *Cartridge) writeMBC1(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		c.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		// lower 5 bits of the ROM bank, 0 selects bank 1
		c.romBank = uint16(value & 0x1F)
		if c.romBank == 0 {
			c.romBank = 1
		}
	case address < 0x6000:
		c.ramBank = value & 0x03
	case address < 0x8000:
		c.advancedBanking = value&0x01 == 0x01
	default:
		if !c.ramEnabled {
			return
		}
		if b := c.ramByte(c.mbc1RAMBank(), address-0xA000); b != nil {
			*b = value
		}
	}
}

func (c *Cartridge) mbc1RAMBank() int {
	if c.advancedBanking {
		return int(c.ramBank)
	}
	return 0
}
