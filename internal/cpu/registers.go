package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Registers holds the 8-bit registers of the CPU, and the 16-bit
// pairs that are views over them.
type Registers struct {
	A, F, B, C, D, E, H, L types.Register

	BC *types.RegisterPair
	DE *types.RegisterPair
	HL *types.RegisterPair
	AF *types.RegisterPair
}

// registerNames are the operand names of the 3-bit register
// selector used throughout the instruction set.
var registerNames = [8]string{"B", "C", "D", "E", "H", "L", "(HL)", "A"}

// readRegister returns the operand selected by the 3-bit index: B, C,
// D, E, H, L, (HL) or A.
func (c *CPU) readRegister(index uint8) uint8 {
	switch index & 0x7 {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.bus.Read(c.HL.Uint16())
	case 7:
		return c.A
	}
	panic(fmt.Sprintf("cpu: invalid register index %d", index))
}

// writeRegister writes to the operand selected by the 3-bit index.
func (c *CPU) writeRegister(index uint8, value uint8) {
	switch index & 0x7 {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.bus.Write(c.HL.Uint16(), value)
	case 7:
		c.A = value
	}
}

// registerPair returns the pair selected by bits 4-5 of a 16-bit
// load or arithmetic opcode: BC, DE, HL. Index 3 is SP, which is
// not a pair, and is handled by the callers.
func (c *CPU) registerPair(index uint8) *types.RegisterPair {
	switch index & 0x3 {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.HL
	}
	panic(fmt.Sprintf("cpu: invalid register pair index %d", index))
}

// readPair returns BC, DE, HL or SP.
func (c *CPU) readPair(index uint8) uint16 {
	if index&0x3 == 3 {
		return c.SP
	}
	return c.registerPair(index).Uint16()
}

// writePair writes to BC, DE, HL or SP.
func (c *CPU) writePair(index uint8, value uint16) {
	if index&0x3 == 3 {
		c.SP = value
		return
	}
	c.registerPair(index).SetUint16(value)
}
