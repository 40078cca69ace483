package cpu

import "fmt"

// rotateLeft rotates n left, bit 7 going to both bit 0 and the carry flag.
//
//	RLC n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Contains old bit 7 data.
func (c *CPU) rotateLeft(n uint8) uint8 {
	result := n<<1 | n>>7
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRight rotates n right, bit 0 going to both bit 7 and the carry flag.
//
//	RRC n
func (c *CPU) rotateRight(n uint8) uint8 {
	result := n>>1 | n<<7
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// rotateLeftThroughCarry rotates n left through the carry flag.
//
//	RL n
func (c *CPU) rotateLeftThroughCarry(n uint8) uint8 {
	result := n << 1
	if c.isFlagSet(FlagCarry) {
		result |= 0x01
	}
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// rotateRightThroughCarry rotates n right through the carry flag.
//
//	RR n
func (c *CPU) rotateRightThroughCarry(n uint8) uint8 {
	result := n >> 1
	if c.isFlagSet(FlagCarry) {
		result |= 0x80
	}
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftLeftIntoCarry shifts n left into the carry flag, bit 0 is reset.
//
//	SLA n
func (c *CPU) shiftLeftIntoCarry(n uint8) uint8 {
	result := n << 1
	c.setFlags(result == 0, false, false, n&0x80 != 0)
	return result
}

// shiftRightIntoCarry shifts n right into the carry flag, bit 7 is
// unchanged.
//
//	SRA n
func (c *CPU) shiftRightIntoCarry(n uint8) uint8 {
	result := n>>1 | n&0x80
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// shiftRightLogical shifts n right into the carry flag, bit 7 is reset.
//
//	SRL n
func (c *CPU) shiftRightLogical(n uint8) uint8 {
	result := n >> 1
	c.setFlags(result == 0, false, false, n&0x01 != 0)
	return result
}

// swap swaps the upper and lower nibbles of n.
//
//	SWAP n
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Reset.
//	C - Reset.
func (c *CPU) swap(n uint8) uint8 {
	result := n<<4 | n>>4
	c.setFlags(result == 0, false, false, false)
	return result
}

// testBit tests bit b of n, setting Z if it is not set.
//
//	BIT b, n
//
// Flags affected:
//
//	Z - Set if bit b of n is 0.
//	N - Reset.
//	H - Set.
//	C - Not affected.
func (c *CPU) testBit(b uint8, n uint8) {
	c.setFlags(n&(1<<b) == 0, false, true, c.isFlagSet(FlagCarry))
}

// shiftNames are the mnemonics of the CB shifts selected by bits 3-5.
var shiftNames = [8]string{"RLC", "RRC", "RL", "RR", "SLA", "SRA", "SWAP", "SRL"}

// shift performs the shift or rotate selected by op on n.
func (c *CPU) shift(op uint8, n uint8) uint8 {
	switch op & 0x7 {
	case 0:
		return c.rotateLeft(n)
	case 1:
		return c.rotateRight(n)
	case 2:
		return c.rotateLeftThroughCarry(n)
	case 3:
		return c.rotateRightThroughCarry(n)
	case 4:
		return c.shiftLeftIntoCarry(n)
	case 5:
		return c.shiftRightIntoCarry(n)
	case 6:
		return c.swap(n)
	}
	return c.shiftRightLogical(n)
}

func init() {
	for r := uint8(0); r < 8; r++ {
		// (HL) operands read and write memory
		cycles, bitCycles := uint8(8), uint8(8)
		if r == 6 {
			cycles, bitCycles = 16, 12
		}

		// 0x00 - 0x3F shifts and rotates
		for op := uint8(0); op < 8; op++ {
			op, r := op, r
			DefineInstructionCB(op<<3|r, fmt.Sprintf("%s %s", shiftNames[op], registerNames[r]), func(c *CPU) {
				c.writeRegister(r, c.shift(op, c.readRegister(r)))
			}, Cycles(cycles))
		}

		for b := uint8(0); b < 8; b++ {
			b, r := b, r
			// 0x40 - 0x7F BIT b, r
			DefineInstructionCB(0x40|b<<3|r, fmt.Sprintf("BIT %d, %s", b, registerNames[r]), func(c *CPU) {
				c.testBit(b, c.readRegister(r))
			}, Cycles(bitCycles))
			// 0x80 - 0xBF RES b, r
			DefineInstructionCB(0x80|b<<3|r, fmt.Sprintf("RES %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeRegister(r, c.readRegister(r)&^(1<<b))
			}, Cycles(cycles))
			// 0xC0 - 0xFF SET b, r
			DefineInstructionCB(0xC0|b<<3|r, fmt.Sprintf("SET %d, %s", b, registerNames[r]), func(c *CPU) {
				c.writeRegister(r, c.readRegister(r)|1<<b)
			}, Cycles(cycles))
		}
	}
}
