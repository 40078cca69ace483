// Package cpu implements the Sharp LR35902, the CPU of the Game Boy.
// Instructions are executed whole; the number of cycles each one
// took is returned so that the rest of the system can catch up.
package cpu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the CPU in T-cycles per second.
	ClockSpeed = 4194304

	// interruptCycles is the time taken to dispatch an interrupt.
	interruptCycles = 20
	// haltCycles is the time that passes per Step while halted.
	haltCycles = 4
)

// IllegalOpcodeError is the panic value raised when the CPU fetches
// one of the opcodes that do not exist on the LR35902. Real hardware
// locks up.
type IllegalOpcodeError struct {
	Opcode uint8
	PC     uint16
}

func (e *IllegalOpcodeError) Error() string {
	return fmt.Sprintf("cpu: illegal opcode 0x%02X at 0x%04X", e.Opcode, e.PC)
}

// CPU represents the Gameboy CPU. It is responsible for executing instructions.
type CPU struct {
	// PC is the program counter, it points to the next instruction to be executed.
	PC uint16
	// SP is the stack pointer, it points to the top of the stack.
	SP uint16
	// Registers contains the 8-bit registers, as well as the 16-bit register pairs.
	Registers

	bus types.Memory
	irq *interrupts.Service

	// halted is set by HALT and STOP, until an interrupt is pending.
	halted bool
	// haltBug is set when HALT is executed with IME off and an
	// interrupt pending; the next fetch doesn't increment PC.
	haltBug bool
	// imeDelay counts down the steps until EI takes effect.
	imeDelay uint8
	// branched is set by conditional instructions when the
	// condition held.
	branched bool

	// Debug logs every instruction executed.
	Debug bool
	Log   log.Logger
}

// NewCPU creates a new CPU reading and writing through bus, with its
// registers set to the values the DMG boot ROM leaves behind.
func NewCPU(bus types.Memory, irq *interrupts.Service, logger log.Logger) *CPU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	c := &CPU{
		bus: bus,
		irq: irq,
		Log: logger,
	}
	// create register pairs
	c.BC = &types.RegisterPair{High: &c.B, Low: &c.C}
	c.DE = &types.RegisterPair{High: &c.D, Low: &c.E}
	c.HL = &types.RegisterPair{High: &c.H, Low: &c.L}
	c.AF = &types.RegisterPair{High: &c.A, Low: &c.F}

	c.A, c.F = 0x01, 0xB0
	c.B, c.C = 0x00, 0x13
	c.D, c.E = 0x00, 0xD8
	c.H, c.L = 0x01, 0x4D
	c.SP = 0xFFFE
	c.PC = 0x0100

	return c
}

// Reset clears every register, for running a boot ROM from 0x0000.
func (c *CPU) Reset() {
	c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L = 0, 0, 0, 0, 0, 0, 0, 0
	c.SP = 0
	c.PC = 0
	c.halted = false
	c.haltBug = false
	c.imeDelay = 0
	c.irq.IME = false
}

// Halted reports whether the CPU is waiting for an interrupt.
func (c *CPU) Halted() bool {
	return c.halted
}

// Step executes a single instruction, or services an interrupt, and
// returns the number of T-cycles it took.
func (c *CPU) Step() uint8 {
	if c.halted {
		if !c.irq.HasInterrupts() {
			return haltCycles
		}
		// any pending interrupt wakes the CPU, regardless of IME
		c.halted = false
	}

	if c.irq.IME && c.irq.HasInterrupts() {
		c.executeInterrupt()
		return interruptCycles
	}

	cycles := c.runInstruction()

	if c.imeDelay > 0 {
		if c.imeDelay--; c.imeDelay == 0 {
			c.irq.IME = true
		}
	}

	return cycles
}

// runInstruction fetches, decodes and executes the instruction at PC.
func (c *CPU) runInstruction() uint8 {
	pc := c.PC
	opcode := c.readInstruction()

	instruction := InstructionSet[opcode]
	if opcode == 0xCB {
		instruction = InstructionSetCB[c.readOperand()]
	}
	if instruction.fn == nil {
		c.PC = pc
		panic(&IllegalOpcodeError{Opcode: opcode, PC: pc})
	}

	if c.Debug {
		c.Log.Debugf("%04X: %-16s A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X",
			pc, instruction.name, c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP)
	}

	c.branched = false
	instruction.fn(c)
	if c.branched {
		return instruction.branchCycles
	}
	return instruction.cycles
}

// executeInterrupt pushes PC and jumps to the vector of the highest
// priority pending interrupt, disabling IME.
func (c *CPU) executeInterrupt() {
	c.pushNN(c.PC)
	c.PC = c.irq.Vector()
	c.irq.IME = false
	c.imeDelay = 0
}

// readInstruction reads the next opcode from memory.
func (c *CPU) readInstruction() uint8 {
	value := c.bus.Read(c.PC)
	if c.haltBug {
		// the halt bug fails to increment PC once
		c.haltBug = false
	} else {
		c.PC++
	}
	return value
}

// readOperand reads the next operand from memory.
func (c *CPU) readOperand() uint8 {
	value := c.bus.Read(c.PC)
	c.PC++
	return value
}

// readOperand16 reads a little endian 16-bit operand.
func (c *CPU) readOperand16() uint16 {
	low := c.readOperand()
	return uint16(c.readOperand())<<8 | uint16(low)
}

var _ types.Stater = (*CPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - A, F, B, C, D, E, H, L (uint8)
//   - SP, PC (uint16)
//   - halted, haltBug (bool)
//   - imeDelay (uint8)
func (c *CPU) Load(s *types.State) {
	c.A = s.Read8()
	c.F = s.Read8() & 0xF0
	c.B = s.Read8()
	c.C = s.Read8()
	c.D = s.Read8()
	c.E = s.Read8()
	c.H = s.Read8()
	c.L = s.Read8()
	c.SP = s.Read16()
	c.PC = s.Read16()
	c.halted = s.ReadBool()
	c.haltBug = s.ReadBool()
	c.imeDelay = s.Read8()
}

// Save implements the types.Stater interface.
func (c *CPU) Save(s *types.State) {
	s.Write8(c.A)
	s.Write8(c.F)
	s.Write8(c.B)
	s.Write8(c.C)
	s.Write8(c.D)
	s.Write8(c.E)
	s.Write8(c.H)
	s.Write8(c.L)
	s.Write16(c.SP)
	s.Write16(c.PC)
	s.WriteBool(c.halted)
	s.WriteBool(c.haltBug)
	s.Write8(c.imeDelay)
}
