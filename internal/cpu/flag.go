package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// Flag is one of the flags held in the upper nibble of the F register.
type Flag = uint8

const (
	// FlagZero is set when the result of an operation is 0.
	FlagZero Flag = types.Bit7
	// FlagSubtract is set when the last operation was a subtraction.
	FlagSubtract Flag = types.Bit6
	// FlagHalfCarry is set on a carry out of bit 3 (bit 11 for
	// 16-bit additions).
	FlagHalfCarry Flag = types.Bit5
	// FlagCarry is set on a carry out of bit 7 (bit 15), a borrow,
	// or when a 1 is shifted out.
	FlagCarry Flag = types.Bit4
)

// clearFlag clears a flag from the F register.
func (c *CPU) clearFlag(flag Flag) {
	c.F &^= flag
}

// setFlag sets a flag in the F register.
func (c *CPU) setFlag(flag Flag) {
	c.F |= flag
}

// isFlagSet returns true if the given flag is set.
func (c *CPU) isFlagSet(flag Flag) bool {
	return c.F&flag != 0
}

// setFlags sets all four flags at once. The lower nibble of F is
// always cleared.
func (c *CPU) setFlags(zero, subtract, halfCarry, carry bool) {
	c.F = 0
	if zero {
		c.F |= FlagZero
	}
	if subtract {
		c.F |= FlagSubtract
	}
	if halfCarry {
		c.F |= FlagHalfCarry
	}
	if carry {
		c.F |= FlagCarry
	}
}
