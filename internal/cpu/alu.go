package cpu

import "fmt"

// add adds n, and the carry flag if carry is set, to the A Register.
//
//	ADD A, n / ADC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) add(n uint8, carry bool) {
	var cin uint8
	if carry && c.isFlagSet(FlagCarry) {
		cin = 1
	}
	sum := uint16(c.A) + uint16(n) + uint16(cin)
	c.setFlags(uint8(sum) == 0, false, (c.A&0xF)+(n&0xF)+cin > 0xF, sum > 0xFF)
	c.A = uint8(sum)
}

// sub subtracts n, and the carry flag if carry is set, from the A
// Register.
//
//	SUB n / SBC A, n
//	n = d8, B, C, D, E, H, L, (HL), A
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func (c *CPU) sub(n uint8, carry bool) {
	var cin uint8
	if carry && c.isFlagSet(FlagCarry) {
		cin = 1
	}
	diff := int16(c.A) - int16(n) - int16(cin)
	halfBorrow := int16(c.A&0xF)-int16(n&0xF)-int16(cin) < 0
	c.setFlags(uint8(diff) == 0, true, halfBorrow, diff < 0)
	c.A = uint8(diff)
}

// and performs a bitwise AND operation on n and the A Register.
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set.
//	C - Reset.
func (c *CPU) and(n uint8) {
	c.A &= n
	c.setFlags(c.A == 0, false, true, false)
}

// or performs a bitwise OR operation on n and the A Register.
func (c *CPU) or(n uint8) {
	c.A |= n
	c.setFlags(c.A == 0, false, false, false)
}

// xor performs a bitwise XOR operation on n and the A Register.
func (c *CPU) xor(n uint8) {
	c.A ^= n
	c.setFlags(c.A == 0, false, false, false)
}

// compare compares n to the A Register, setting the flags as SUB
// would without storing the result.
//
//	CP n
//	n = d8, B, C, D, E, H, L, (HL), A
func (c *CPU) compare(n uint8) {
	c.setFlags(c.A == n, true, n&0x0F > c.A&0x0F, n > c.A)
}

// increment n by 1 and set the flags accordingly.
//
//	INC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from lower nibble.
//	C - Not affected.
func (c *CPU) increment(n uint8) uint8 {
	incremented := n + 0x01
	c.setFlags(incremented == 0, false, n&0xF == 0xF, c.isFlagSet(FlagCarry))
	return incremented
}

// decrement n by 1 and set the flags accordingly.
//
//	DEC n
//	n = 8-bit value
//
// Flags affected:
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Not affected.
func (c *CPU) decrement(n uint8) uint8 {
	decremented := n - 0x01
	c.setFlags(decremented == 0, true, n&0xF == 0x0, c.isFlagSet(FlagCarry))
	return decremented
}

// addHL adds n to the HL Register pair.
//
// Flags affected:
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func (c *CPU) addHL(n uint16) {
	hl := c.HL.Uint16()
	sum := uint32(hl) + uint32(n)
	c.setFlags(c.isFlagSet(FlagZero), false, (hl&0xFFF)+(n&0xFFF) > 0xFFF, sum > 0xFFFF)
	c.HL.SetUint16(uint16(sum))
}

// addSPSigned returns SP plus the signed offset e. Used by ADD SP, e
// and LD HL, SP+e, which compute H and C from the low byte.
//
// Flags affected:
//
//	Z - Reset.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func (c *CPU) addSPSigned(e uint8) uint16 {
	result := c.SP + uint16(int16(int8(e)))
	c.setFlags(false, false, (c.SP&0xF)+uint16(e&0xF) > 0xF, (c.SP&0xFF)+uint16(e) > 0xFF)
	return result
}

// aluNames are the mnemonics of the ALU operations selected by bits 3-5.
var aluNames = [8]string{"ADD A,", "ADC A,", "SUB", "SBC A,", "AND", "XOR", "OR", "CP"}

// alu performs the ALU operation selected by op on n.
func (c *CPU) alu(op uint8, n uint8) {
	switch op & 0x7 {
	case 0:
		c.add(n, false)
	case 1:
		c.add(n, true)
	case 2:
		c.sub(n, false)
	case 3:
		c.sub(n, true)
	case 4:
		c.and(n)
	case 5:
		c.xor(n)
	case 6:
		c.or(n)
	case 7:
		c.compare(n)
	}
}

func init() {
	// 0x80 - 0xBF ALU A, r and 0xC6 - 0xFE ALU A, d8
	for op := uint8(0); op < 8; op++ {
		for r := uint8(0); r < 8; r++ {
			cycles := uint8(4)
			if r == 6 {
				cycles = 8
			}
			op, r := op, r
			DefineInstruction(0x80|op<<3|r, fmt.Sprintf("%s %s", aluNames[op], registerNames[r]), func(c *CPU) {
				c.alu(op, c.readRegister(r))
			}, Cycles(cycles))
		}
		op := op
		DefineInstruction(0xC6|op<<3, aluNames[op]+" d8", func(c *CPU) {
			c.alu(op, c.readOperand())
		}, Cycles(8))
	}

	// INC r and DEC r
	for r := uint8(0); r < 8; r++ {
		cycles := uint8(4)
		if r == 6 {
			cycles = 12
		}
		r := r
		DefineInstruction(r<<3|0x04, "INC "+registerNames[r], func(c *CPU) {
			c.writeRegister(r, c.increment(c.readRegister(r)))
		}, Cycles(cycles))
		DefineInstruction(r<<3|0x05, "DEC "+registerNames[r], func(c *CPU) {
			c.writeRegister(r, c.decrement(c.readRegister(r)))
		}, Cycles(cycles))
	}

	// INC rr, DEC rr and ADD HL, rr
	for p := uint8(0); p < 4; p++ {
		p := p
		DefineInstruction(p<<4|0x03, "INC "+pairNames[p], func(c *CPU) {
			c.writePair(p, c.readPair(p)+1)
		}, Cycles(8))
		DefineInstruction(p<<4|0x0B, "DEC "+pairNames[p], func(c *CPU) {
			c.writePair(p, c.readPair(p)-1)
		}, Cycles(8))
		DefineInstruction(p<<4|0x09, "ADD HL, "+pairNames[p], func(c *CPU) {
			c.addHL(c.readPair(p))
		}, Cycles(8))
	}

	DefineInstruction(0xE8, "ADD SP, r8", func(c *CPU) {
		c.SP = c.addSPSigned(c.readOperand())
	}, Cycles(16))
}
