package cheats

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// GameGenie patches the values read from cartridge ROM.
type GameGenie struct {
	Codes []GameGenieCode
}

// A GameGenieCode consists of six or nine hex digits, formatted as
// ABC-DEF or ABC-DEF-GHI. AB is the new data, FCDE is the ROM address
// XORed by 0xF000, and GI is the old data XORed by 0xBA and rotated
// left by 2. H is unused.
type GameGenieCode struct {
	NewData uint8
	Address uint16
	OldData uint8
	// Compare is set for nine digit codes, which only patch the
	// address when it holds OldData.
	Compare bool

	Name    string
	Enabled bool
}

func parseGameGenieCode(code string) (GameGenieCode, error) {
	var c GameGenieCode
	if len(code) != 7 && len(code) != 11 {
		return c, errors.Wrapf(ErrInvalidCode, "game genie code %q", code)
	}
	digits := strings.ReplaceAll(code, "-", "")

	v, err := strconv.ParseUint(digits[:6], 16, 32)
	if err != nil {
		return c, errors.Wrapf(ErrInvalidCode, "game genie code %q", code)
	}
	c.NewData = uint8(v >> 16)
	// CDE is the low 12 bits of the address, F the top nibble
	c.Address = (uint16(v)>>4 | uint16(v&0xF)<<12) ^ 0xF000

	if len(digits) == 9 {
		gi, err := strconv.ParseUint(digits[6:7]+digits[8:9], 16, 8)
		if err != nil {
			return c, errors.Wrapf(ErrInvalidCode, "game genie code %q", code)
		}
		old := uint8(gi)
		c.OldData = (old>>2 | old<<6) ^ 0xBA
		c.Compare = true
	}
	if c.Address >= 0x8000 {
		return c, errors.Wrapf(ErrInvalidCode, "game genie code %q patches 0x%04X", code, c.Address)
	}

	return c, nil
}

// NewGameGenie creates a new GameGenie.
func NewGameGenie() *GameGenie {
	return &GameGenie{}
}

// Load parses code and adds it, enabled, under name.
func (g *GameGenie) Load(code, name string) error {
	c, err := parseGameGenieCode(code)
	if err != nil {
		return err
	}
	c.Name = name
	c.Enabled = true
	g.Codes = append(g.Codes, c)
	return nil
}

// Patch returns the value to read at address in place of value.
func (g *GameGenie) Patch(address uint16, value uint8) uint8 {
	for _, c := range g.Codes {
		if !c.Enabled || c.Address != address {
			continue
		}
		if c.Compare && c.OldData != value {
			continue
		}
		return c.NewData
	}
	return value
}

// SetEnabled enables or disables every code loaded under name.
func (g *GameGenie) SetEnabled(name string, enabled bool) {
	for i := range g.Codes {
		if g.Codes[i].Name == name {
			g.Codes[i].Enabled = enabled
		}
	}
}
