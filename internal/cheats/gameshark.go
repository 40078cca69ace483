package cheats

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/thelolagemann/gbcore/internal/types"
)

// GameShark writes fixed values into RAM once per frame.
type GameShark struct {
	Codes []GameSharkCode
}

// A GameSharkCode consists of eight hex digits, formatted as ABCDGHEF.
// AB is the external RAM bank, CD is the new data, and EFGH is the
// address.
type GameSharkCode struct {
	ExternalRAMBank uint8
	Address         uint16
	NewData         uint8

	Name    string
	Enabled bool
}

func parseGameSharkCode(code string) (GameSharkCode, error) {
	var c GameSharkCode
	if len(code) != 8 {
		return c, errors.Wrapf(ErrInvalidCode, "gameshark code %q", code)
	}
	v, err := strconv.ParseUint(code, 16, 32)
	if err != nil {
		return c, errors.Wrapf(ErrInvalidCode, "gameshark code %q", code)
	}

	c.ExternalRAMBank = uint8(v >> 24)
	c.NewData = uint8(v >> 16)
	// the address is stored little endian
	c.Address = uint16(v>>8)&0xFF | uint16(v)<<8
	if c.Address < types.ExtRAMStart || c.Address >= types.EchoStart {
		return c, errors.Wrapf(ErrInvalidCode, "gameshark code %q writes 0x%04X", code, c.Address)
	}

	return c, nil
}

// NewGameShark creates a new GameShark.
func NewGameShark() *GameShark {
	return &GameShark{}
}

// Load parses code and adds it, enabled, under name.
func (g *GameShark) Load(code, name string) error {
	c, err := parseGameSharkCode(code)
	if err != nil {
		return err
	}
	c.Name = name
	c.Enabled = true
	g.Codes = append(g.Codes, c)
	return nil
}

// Apply writes every enabled code to mem. Codes for external RAM are
// written to whichever bank is currently mapped.
func (g *GameShark) Apply(mem types.Memory) {
	for _, c := range g.Codes {
		if c.Enabled {
			mem.Write(c.Address, c.NewData)
		}
	}
}

// SetEnabled enables or disables every code loaded under name.
func (g *GameShark) SetEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}
