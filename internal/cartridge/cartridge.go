// Package cartridge provides the game cartridge of the DMG: the game
// ROM, any external RAM, and the memory bank controller that maps them
// into 0x0000-0x7FFF and 0xA000-0xBFFF.
package cartridge

import (
	"fmt"

	"github.com/cespare/xxhash"
	"github.com/pkg/errors"

	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	romBankSize = 0x4000
	ramBankSize = 0x2000
)

// Kind is the bank controller family of a Cartridge.
type Kind uint8

const (
	// KindROM has no controller, the ROM is mapped flat.
	KindROM Kind = iota
	// KindROMRAM has no controller and up to 8 KiB of RAM.
	KindROMRAM
	KindMBC1
	KindMBC5
)

func (k Kind) String() string {
	switch k {
	case KindROM:
		return "ROM"
	case KindROMRAM:
		return "ROM+RAM"
	case KindMBC1:
		return "MBC1"
	case KindMBC5:
		return "MBC5"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Cartridge represents a game cartridge. The set of controllers is
// closed; Read and Write dispatch on Kind.
type Cartridge struct {
	Kind Kind

	rom []byte
	ram []byte

	header      Header
	fingerprint uint64
	romBanks    int

	ramEnabled bool
	// romBank is the 5 bit MBC1 bank register, or the 9 bit MBC5
	// bank number.
	romBank uint16
	// ramBank is the 2 bit MBC1 secondary register, or the 4 bit
	// MBC5 RAM bank.
	ramBank uint8
	// advancedBanking is the MBC1 banking mode (6000-7FFF). When set
	// the secondary register also applies to 0000-3FFF and to RAM.
	advancedBanking bool
}

// NewCartridge parses the header of rom and returns a cartridge with
// the matching bank controller.
func NewCartridge(rom []byte) (*Cartridge, error) {
	header, err := parseHeader(rom)
	if err != nil {
		return nil, errors.Wrap(err, "parsing header")
	}
	kind, _ := header.CartridgeType.kind()

	c := &Cartridge{
		Kind:        kind,
		rom:         rom,
		header:      header,
		fingerprint: xxhash.Sum64(rom),
		romBanks:    (len(rom) + romBankSize - 1) / romBankSize,
		romBank:     1,
	}
	if c.romBanks < 2 {
		c.romBanks = 2
	}

	switch kind {
	case KindROM:
		// no RAM, whatever the header says
	case KindROMRAM:
		size := header.RAMSize
		if size > ramBankSize {
			size = ramBankSize
		}
		c.ram = make([]byte, size)
	default:
		c.ram = make([]byte, header.RAMSize)
	}

	return c, nil
}

// Read returns the byte at address, which must lie in 0x0000-0x7FFF or
// 0xA000-0xBFFF.
func (c *Cartridge) Read(address uint16) uint8 {
	if address >= 0x8000 && (address < 0xA000 || address >= 0xC000) {
		panic(fmt.Sprintf("cartridge: illegal read from 0x%04X", address))
	}

	switch c.Kind {
	case KindROM, KindROMRAM:
		return c.readROM(address)
	case KindMBC1:
		return c.readMBC1(address)
	case KindMBC5:
		return c.readMBC5(address)
	}
	panic(fmt.Sprintf("cartridge: unknown kind %v", c.Kind))
}

// Write writes value to address. Writes to 0x0000-0x7FFF reach the
// bank controller, if any.
func (c *Cartridge) Write(address uint16, value uint8) {
	if address >= 0x8000 && (address < 0xA000 || address >= 0xC000) {
		panic(fmt.Sprintf("cartridge: illegal write to 0x%04X", address))
	}

	switch c.Kind {
	case KindROM, KindROMRAM:
		c.writeROM(address, value)
	case KindMBC1:
		c.writeMBC1(address, value)
	case KindMBC5:
		c.writeMBC5(address, value)
	default:
		panic(fmt.Sprintf("cartridge: unknown kind %v", c.Kind))
	}
}

// romByte returns the byte at offset within the given bank, or
// open bus if the image is shorter than the header claims.
func (c *Cartridge) romByte(bank int, offset uint16) uint8 {
	i := bank*romBankSize + int(offset)
	if i >= len(c.rom) {
		return types.OpenBus
	}
	return c.rom[i]
}

// ramByte returns a pointer to the RAM byte at offset within bank,
// wrapping around smaller RAM chips. It returns nil if there is no RAM.
func (c *Cartridge) ramByte(bank int, offset uint16) *uint8 {
	if len(c.ram) == 0 {
		return nil
	}
	return &c.ram[(bank*ramBankSize+int(offset))%len(c.ram)]
}

// Header returns the parsed cartridge header.
func (c *Cartridge) Header() Header {
	return c.header
}

// Title returns the game title from the header.
func (c *Cartridge) Title() string {
	return c.header.Title
}

// Type returns the name of the cartridge type, e.g. "MBC1+RAM".
func (c *Cartridge) Type() string {
	return c.header.CartridgeType.String()
}

// Fingerprint returns the xxhash of the whole ROM image.
func (c *Cartridge) Fingerprint() uint64 {
	return c.fingerprint
}

var _ types.Stater = (*Cartridge)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - RAM ([]byte, sized by the header)
//   - ramEnabled (bool)
//   - romBank (uint16)
//   - ramBank (uint8)
//   - advancedBanking (bool)
func (c *Cartridge) Load(s *types.State) {
	s.ReadData(c.ram)
	c.ramEnabled = s.ReadBool()
	c.romBank = s.Read16()
	c.ramBank = s.Read8()
	c.advancedBanking = s.ReadBool()
}

// Save implements the types.Stater interface.
func (c *Cartridge) Save(s *types.State) {
	s.WriteData(c.ram)
	s.WriteBool(c.ramEnabled)
	s.Write16(c.romBank)
	s.Write8(c.ramBank)
	s.WriteBool(c.advancedBanking)
}
