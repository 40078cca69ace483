package cpu

import "github.com/thelolagemann/gbcore/internal/types"

// Instruction describes one entry of the instruction tables.
type Instruction struct {
	name string
	// cycles is the number of T-cycles the instruction takes, or takes
	// when its condition doesn't hold.
	cycles uint8
	// branchCycles is the number of T-cycles a conditional instruction
	// takes when its condition holds.
	branchCycles uint8
	fn           func(*CPU)
}

// Name returns the mnemonic of the instruction.
func (i Instruction) Name() string {
	return i.name
}

// Cycles returns the T-cycles of the instruction, and of its taken
// branch for conditional instructions.
func (i Instruction) Cycles() (cycles, branchCycles uint8) {
	return i.cycles, i.branchCycles
}

// InstructionOption configures an Instruction as it is defined.
type InstructionOption func(*Instruction)

// Cycles sets the number of T-cycles an instruction takes. Instructions
// take 4 unless told otherwise.
func Cycles(n uint8) InstructionOption {
	return func(i *Instruction) {
		i.cycles = n
	}
}

// Branch sets the number of T-cycles a conditional instruction takes
// when its condition holds.
func Branch(n uint8) InstructionOption {
	return func(i *Instruction) {
		i.branchCycles = n
	}
}

func newInstruction(name string, fn func(*CPU), opts []InstructionOption) Instruction {
	i := Instruction{name: name, cycles: 4, fn: fn}
	for _, opt := range opts {
		opt(&i)
	}
	if i.branchCycles == 0 {
		i.branchCycles = i.cycles
	}
	return i
}

// DefineInstruction defines the instruction in the InstructionSet, with
// the provided opcode.
func DefineInstruction(opcode uint8, name string, fn func(*CPU), opts ...InstructionOption) {
	InstructionSet[opcode] = newInstruction(name, fn, opts)
}

// DefineInstructionCB defines the instruction in the InstructionSetCB,
// with the provided opcode.
func DefineInstructionCB(opcode uint8, name string, fn func(*CPU), opts ...InstructionOption) {
	InstructionSetCB[opcode] = newInstruction(name, fn, opts)
}

// InstructionSet holds the unprefixed instructions. Opcodes that do
// not exist have no fn.
var InstructionSet [256]Instruction

// InstructionSetCB holds the instructions prefixed by 0xCB.
var InstructionSetCB [256]Instruction

// illegalOpcodes lock up real hardware.
var illegalOpcodes = []uint8{
	0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD,
}

func init() {
	DefineInstruction(0x00, "NOP", func(c *CPU) {})
	DefineInstruction(0x10, "STOP", func(c *CPU) {
		// STOP is followed by a padding byte
		c.readOperand()
		c.bus.Write(types.DIV, 0)
		c.halted = true
	})
	DefineInstruction(0x76, "HALT", func(c *CPU) {
		if !c.irq.IME && c.irq.HasInterrupts() {
			c.haltBug = true
			return
		}
		c.halted = true
	})
	DefineInstruction(0xF3, "DI", func(c *CPU) {
		c.irq.IME = false
		c.imeDelay = 0
	})
	DefineInstruction(0xFB, "EI", func(c *CPU) {
		// IME is set after the next instruction
		if !c.irq.IME && c.imeDelay == 0 {
			c.imeDelay = 2
		}
	})
	for _, opcode := range illegalOpcodes {
		InstructionSet[opcode] = Instruction{name: "ILLEGAL"}
	}

	DefineInstruction(0x27, "DAA", func(c *CPU) {
		if !c.isFlagSet(FlagSubtract) {
			if c.isFlagSet(FlagCarry) || c.A > 0x99 {
				c.A += 0x60
				c.setFlag(FlagCarry)
			}
			if c.isFlagSet(FlagHalfCarry) || c.A&0xF > 0x9 {
				c.A += 0x06
			}
		} else {
			if c.isFlagSet(FlagCarry) {
				c.A -= 0x60
			}
			if c.isFlagSet(FlagHalfCarry) {
				c.A -= 0x06
			}
		}
		c.setFlags(c.A == 0, c.isFlagSet(FlagSubtract), false, c.isFlagSet(FlagCarry))
	})
	DefineInstruction(0x2F, "CPL", func(c *CPU) {
		c.A = 0xFF ^ c.A
		c.setFlag(FlagSubtract)
		c.setFlag(FlagHalfCarry)
	})
	DefineInstruction(0x37, "SCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, true)
	})
	DefineInstruction(0x3F, "CCF", func(c *CPU) {
		c.setFlags(c.isFlagSet(FlagZero), false, false, !c.isFlagSet(FlagCarry))
	})

	// the accumulator rotates always clear Z, unlike their CB versions
	DefineInstruction(0x07, "RLCA", func(c *CPU) {
		c.A = c.rotateLeft(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x0F, "RRCA", func(c *CPU) {
		c.A = c.rotateRight(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x17, "RLA", func(c *CPU) {
		c.A = c.rotateLeftThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
	DefineInstruction(0x1F, "RRA", func(c *CPU) {
		c.A = c.rotateRightThroughCarry(c.A)
		c.clearFlag(FlagZero)
	})
}
