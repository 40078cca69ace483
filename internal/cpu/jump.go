package cpu

import "fmt"

// conditionNames are the names of the conditions selected by bits 3-4.
var conditionNames = [4]string{"NZ", "Z", "NC", "C"}

// condition reports whether the condition selected by bits 3-4 of
// an opcode holds.
func (c *CPU) condition(index uint8) bool {
	switch index & 0x3 {
	case 0:
		return !c.isFlagSet(FlagZero)
	case 1:
		return c.isFlagSet(FlagZero)
	case 2:
		return !c.isFlagSet(FlagCarry)
	}
	return c.isFlagSet(FlagCarry)
}

// jumpRelative adds the signed offset e to PC, which already points
// past the operand.
func (c *CPU) jumpRelative(e uint8) {
	c.PC += uint16(int16(int8(e)))
}

// call pushes PC and jumps to address.
func (c *CPU) call(address uint16) {
	c.pushNN(c.PC)
	c.PC = address
}

// ret pops PC off the stack.
func (c *CPU) ret() {
	c.PC = c.popNN()
}

func init() {
	DefineInstruction(0xC3, "JP a16", func(c *CPU) {
		c.PC = c.readOperand16()
	}, Cycles(16))
	DefineInstruction(0xE9, "JP HL", func(c *CPU) {
		c.PC = c.HL.Uint16()
	})
	DefineInstruction(0x18, "JR r8", func(c *CPU) {
		c.jumpRelative(c.readOperand())
	}, Cycles(12))
	DefineInstruction(0xCD, "CALL a16", func(c *CPU) {
		c.call(c.readOperand16())
	}, Cycles(24))
	DefineInstruction(0xC9, "RET", func(c *CPU) {
		c.ret()
	}, Cycles(16))
	DefineInstruction(0xD9, "RETI", func(c *CPU) {
		c.ret()
		c.irq.IME = true
	}, Cycles(16))

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		name := conditionNames[cc]

		// operands are always read, whether the branch is taken or not
		DefineInstruction(0xC2|cc<<3, "JP "+name+", a16", func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.PC = address
				c.branched = true
			}
		}, Cycles(12), Branch(16))
		DefineInstruction(0x20|cc<<3, "JR "+name+", r8", func(c *CPU) {
			e := c.readOperand()
			if c.condition(cc) {
				c.jumpRelative(e)
				c.branched = true
			}
		}, Cycles(8), Branch(12))
		DefineInstruction(0xC4|cc<<3, "CALL "+name+", a16", func(c *CPU) {
			address := c.readOperand16()
			if c.condition(cc) {
				c.call(address)
				c.branched = true
			}
		}, Cycles(12), Branch(24))
		DefineInstruction(0xC0|cc<<3, "RET "+name, func(c *CPU) {
			if c.condition(cc) {
				c.ret()
				c.branched = true
			}
		}, Cycles(8), Branch(20))
	}

	// RST n
	for n := uint8(0); n < 8; n++ {
		vector := uint16(n) * 8
		DefineInstruction(0xC7|n<<3, fmt.Sprintf("RST %02XH", vector), func(c *CPU) {
			c.call(vector)
		}, Cycles(16))
	}
}
