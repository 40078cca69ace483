package cartridge

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	// ErrTruncated is returned for images too short to hold a header.
	ErrTruncated = errors.New("cartridge: truncated image")
	// ErrUnsupportedType is returned when byte 0x0147 names a bank
	// controller that is not emulated.
	ErrUnsupportedType = errors.New("cartridge: unsupported cartridge type")
	// ErrUnknownRAMSize is returned when byte 0x0149 is not a valid
	// RAM size code.
	ErrUnknownRAMSize = errors.New("cartridge: unknown RAM size")
)

// Flag is the CGB compatibility byte at 0x0143.
type Flag uint8

const (
	FlagOnlyDMG Flag = iota
	FlagSupportsCGB
	FlagOnlyCGB
)

// ramSizes maps the header code at 0x0149 to the size of the
// external RAM in bytes.
var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 0, // unused, some homebrew sets it anyway
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Type is the cartridge type byte at 0x0147.
type Type uint8

const (
	ROM               Type = 0x00
	MBC1              Type = 0x01
	MBC1RAM           Type = 0x02
	MBC1RAMBATT       Type = 0x03
	ROMRAM            Type = 0x08
	ROMRAMBATT        Type = 0x09
	MBC5              Type = 0x19
	MBC5RAM           Type = 0x1A
	MBC5RAMBATT       Type = 0x1B
	MBC5RUMBLE        Type = 0x1C
	MBC5RUMBLERAM     Type = 0x1D
	MBC5RUMBLERAMBATT Type = 0x1E
)

var typeNames = map[Type]string{
	ROM:               "ROM",
	MBC1:              "MBC1",
	MBC1RAM:           "MBC1+RAM",
	MBC1RAMBATT:       "MBC1+RAM+BATTERY",
	ROMRAM:            "ROM+RAM",
	ROMRAMBATT:        "ROM+RAM+BATTERY",
	MBC5:              "MBC5",
	MBC5RAM:           "MBC5+RAM",
	MBC5RAMBATT:       "MBC5+RAM+BATTERY",
	MBC5RUMBLE:        "MBC5+RUMBLE",
	MBC5RUMBLERAM:     "MBC5+RUMBLE+RAM",
	MBC5RUMBLERAMBATT: "MBC5+RUMBLE+RAM+BATTERY",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(0x%02X)", uint8(t))
}

// kind returns the controller family of t.
func (t Type) kind() (Kind, bool) {
	switch t {
	case ROM:
		return KindROM, true
	case ROMRAM, ROMRAMBATT:
		return KindROMRAM, true
	case MBC1, MBC1RAM, MBC1RAMBATT:
		return KindMBC1, true
	case MBC5, MBC5RAM, MBC5RAMBATT, MBC5RUMBLE, MBC5RUMBLERAM, MBC5RUMBLERAMBATT:
		return KindMBC5, true
	}
	return 0, false
}

// Header represents the header of a cartridge, each cartridge has a header and is
// located at the address space 0x0100-0x014F. The header contains information about
// the cartridge itself, and the hardware it expects to run on.
type Header struct {
	// 0x0134-0x0143 - Title of the game
	Title string

	// 0x013F-0x0142 - ManufacturerCode of the game
	ManufacturerCode string

	// 0x0143 - CartridgeGBMode of the game. In older cartridges this byte was part
	// of the title, but the Colour Game Boy and later models interpret this byte
	// to determine if the cartridge is compatible with the Colour Game Boy.
	CartridgeGBMode Flag

	NewLicenseeCode string
	SGBFlag         bool
	CartridgeType   Type
	ROMSize         int
	RAMSize         int
	CountryCode     uint8
	OldLicenseeCode uint8
	MaskROMVersion  uint8
	HeaderChecksum  uint8
	GlobalChecksum  uint16

	// ChecksumValid reports whether HeaderChecksum matches the
	// bytes 0x0134-0x014C. Real hardware refuses to boot otherwise,
	// here it is only reported.
	ChecksumValid bool
}

// parseHeader parses the header of the given ROM. Every problem found
// is reported, combined into a single error.
func parseHeader(rom []byte) (Header, error) {
	h := Header{}
	if len(rom) < 0x150 {
		return h, errors.Wrapf(ErrTruncated, "%d bytes, need at least %d", len(rom), 0x150)
	}

	var result *multierror.Error

	switch rom[0x143] {
	case 0x80:
		h.CartridgeGBMode = FlagSupportsCGB
	case 0xC0:
		h.CartridgeGBMode = FlagOnlyCGB
	default:
		h.CartridgeGBMode = FlagOnlyDMG
	}
	h.Title = parseTitle(rom)
	h.ManufacturerCode = strings.TrimRight(string(rom[0x13F:0x143]), "\x00")
	h.NewLicenseeCode = string(rom[0x144:0x146])
	h.SGBFlag = rom[0x146] == 0x03

	h.CartridgeType = Type(rom[0x147])
	if _, ok := h.CartridgeType.kind(); !ok {
		result = multierror.Append(result, errors.Wrapf(ErrUnsupportedType, "0x%02X", rom[0x147]))
	}

	// calculated by 32kB x (1 << n)
	h.ROMSize = (32 * 1024) << (rom[0x148] & 0x0F)

	size, ok := ramSizes[rom[0x149]]
	if !ok {
		result = multierror.Append(result, errors.Wrapf(ErrUnknownRAMSize, "0x%02X", rom[0x149]))
	}
	h.RAMSize = size

	h.CountryCode = rom[0x14A]
	h.OldLicenseeCode = rom[0x14B]
	h.MaskROMVersion = rom[0x14C]
	h.HeaderChecksum = rom[0x14D]
	h.GlobalChecksum = uint16(rom[0x14E])<<8 | uint16(rom[0x14F])
	h.ChecksumValid = headerChecksum(rom) == h.HeaderChecksum

	return h, result.ErrorOrNil()
}

// parseTitle reads the title at 0x0134. It is 16 bytes long, or 11 on
// cartridges that declare CGB support, and ends at the first zero byte.
func parseTitle(rom []byte) string {
	length := 16
	if rom[0x143] == 0x80 || rom[0x143] == 0xC0 {
		length = 11
	}
	title := rom[0x134 : 0x134+length]
	for i, b := range title {
		if b == 0 {
			title = title[:i]
			break
		}
	}
	return string(title)
}

func headerChecksum(rom []byte) uint8 {
	var x uint8
	for _, b := range rom[0x134:0x14D] {
		x = x - b - 1
	}
	return x
}

// GameboyColor reports whether the cartridge declares CGB support.
func (h Header) GameboyColor() bool {
	return h.CartridgeGBMode == FlagOnlyCGB || h.CartridgeGBMode == FlagSupportsCGB
}

func (h Header) Hardware() string {
	switch h.CartridgeGBMode {
	case FlagSupportsCGB, FlagOnlyCGB:
		return "CGB"
	default:
		return "DMG"
	}
}

func (h Header) String() string {
	return fmt.Sprintf("%s | %s | Mode: %s | ROM Size: %dkB | RAM Size: %dkB",
		h.Title, h.CartridgeType, h.Hardware(), h.ROMSize/1024, h.RAMSize/1024)
}
