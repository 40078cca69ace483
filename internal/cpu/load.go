package cpu

import "fmt"

// pushNN pushes a 16 bit value onto the stack, high byte first.
func (c *CPU) pushNN(value uint16) {
	c.push(uint8(value >> 8))
	c.push(uint8(value))
}

// popNN pops a 16 bit value off the stack, low byte first.
func (c *CPU) popNN() uint16 {
	low := c.pop()
	return uint16(c.pop())<<8 | uint16(low)
}

// push decrements SP, then writes value to the stack.
func (c *CPU) push(value uint8) {
	c.SP--
	c.bus.Write(c.SP, value)
}

// pop reads the value at the top of the stack, then increments SP.
func (c *CPU) pop() uint8 {
	value := c.bus.Read(c.SP)
	c.SP++
	return value
}

// pairNames are the names of the pairs selected by bits 4-5.
var pairNames = [4]string{"BC", "DE", "HL", "SP"}

func init() {
	// 0x40 - 0x7F LD r, r'
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			opcode := 0x40 | dst<<3 | src
			if opcode == 0x76 {
				continue // HALT
			}
			cycles := uint8(4)
			if dst == 6 || src == 6 {
				cycles = 8
			}
			dst, src := dst, src
			DefineInstruction(opcode, fmt.Sprintf("LD %s, %s", registerNames[dst], registerNames[src]), func(c *CPU) {
				c.writeRegister(dst, c.readRegister(src))
			}, Cycles(cycles))
		}
	}

	// LD r, d8
	for r := uint8(0); r < 8; r++ {
		cycles := uint8(8)
		if r == 6 {
			cycles = 12
		}
		r := r
		DefineInstruction(r<<3|0x06, fmt.Sprintf("LD %s, d8", registerNames[r]), func(c *CPU) {
			c.writeRegister(r, c.readOperand())
		}, Cycles(cycles))
	}

	// LD rr, d16
	for p := uint8(0); p < 4; p++ {
		p := p
		DefineInstruction(p<<4|0x01, fmt.Sprintf("LD %s, d16", pairNames[p]), func(c *CPU) {
			c.writePair(p, c.readOperand16())
		}, Cycles(12))
	}

	// LD (rr), A and LD A, (rr)
	DefineInstruction(0x02, "LD (BC), A", func(c *CPU) { c.bus.Write(c.BC.Uint16(), c.A) }, Cycles(8))
	DefineInstruction(0x12, "LD (DE), A", func(c *CPU) { c.bus.Write(c.DE.Uint16(), c.A) }, Cycles(8))
	DefineInstruction(0x22, "LD (HL+), A", func(c *CPU) {
		hl := c.HL.Uint16()
		c.bus.Write(hl, c.A)
		c.HL.SetUint16(hl + 1)
	}, Cycles(8))
	DefineInstruction(0x32, "LD (HL-), A", func(c *CPU) {
		hl := c.HL.Uint16()
		c.bus.Write(hl, c.A)
		c.HL.SetUint16(hl - 1)
	}, Cycles(8))
	DefineInstruction(0x0A, "LD A, (BC)", func(c *CPU) { c.A = c.bus.Read(c.BC.Uint16()) }, Cycles(8))
	DefineInstruction(0x1A, "LD A, (DE)", func(c *CPU) { c.A = c.bus.Read(c.DE.Uint16()) }, Cycles(8))
	DefineInstruction(0x2A, "LD A, (HL+)", func(c *CPU) {
		hl := c.HL.Uint16()
		c.A = c.bus.Read(hl)
		c.HL.SetUint16(hl + 1)
	}, Cycles(8))
	DefineInstruction(0x3A, "LD A, (HL-)", func(c *CPU) {
		hl := c.HL.Uint16()
		c.A = c.bus.Read(hl)
		c.HL.SetUint16(hl - 1)
	}, Cycles(8))

	DefineInstruction(0x08, "LD (a16), SP", func(c *CPU) {
		address := c.readOperand16()
		c.bus.Write(address, uint8(c.SP))
		c.bus.Write(address+1, uint8(c.SP>>8))
	}, Cycles(20))

	// high page loads
	DefineInstruction(0xE0, "LDH (a8), A", func(c *CPU) {
		c.bus.Write(0xFF00+uint16(c.readOperand()), c.A)
	}, Cycles(12))
	DefineInstruction(0xF0, "LDH A, (a8)", func(c *CPU) {
		c.A = c.bus.Read(0xFF00 + uint16(c.readOperand()))
	}, Cycles(12))
	DefineInstruction(0xE2, "LD (C), A", func(c *CPU) {
		c.bus.Write(0xFF00+uint16(c.C), c.A)
	}, Cycles(8))
	DefineInstruction(0xF2, "LD A, (C)", func(c *CPU) {
		c.A = c.bus.Read(0xFF00 + uint16(c.C))
	}, Cycles(8))
	DefineInstruction(0xEA, "LD (a16), A", func(c *CPU) {
		c.bus.Write(c.readOperand16(), c.A)
	}, Cycles(16))
	DefineInstruction(0xFA, "LD A, (a16)", func(c *CPU) {
		c.A = c.bus.Read(c.readOperand16())
	}, Cycles(16))

	// stack pointer
	DefineInstruction(0xF8, "LD HL, SP+r8", func(c *CPU) {
		c.HL.SetUint16(c.addSPSigned(c.readOperand()))
	}, Cycles(12))
	DefineInstruction(0xF9, "LD SP, HL", func(c *CPU) {
		c.SP = c.HL.Uint16()
	}, Cycles(8))

	// PUSH and POP, where index 3 is AF rather than SP
	for p := uint8(0); p < 3; p++ {
		p := p
		DefineInstruction(0xC5|p<<4, "PUSH "+pairNames[p], func(c *CPU) {
			c.pushNN(c.registerPair(p).Uint16())
		}, Cycles(16))
		DefineInstruction(0xC1|p<<4, "POP "+pairNames[p], func(c *CPU) {
			c.registerPair(p).SetUint16(c.popNN())
		}, Cycles(12))
	}
	DefineInstruction(0xF5, "PUSH AF", func(c *CPU) {
		c.pushNN(c.AF.Uint16())
	}, Cycles(16))
	DefineInstruction(0xF1, "POP AF", func(c *CPU) {
		// the lower nibble of F always reads 0
		c.AF.SetUint16(c.popNN() & 0xFFF0)
	}, Cycles(12))
}
