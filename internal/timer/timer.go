// Package timer provides an implementation of the Game Boy
// timer. It is used to generate interrupts at a specific
// frequency. The frequency can be configured using the
// types.TAC register.
package timer

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// bits are the bits of the system counter whose falling edge
// increments TIMA, indexed by TAC bits 0-1. They correspond to
// periods of 1024, 16, 64 and 256 cycles.
var bits = [4]uint16{512, 8, 32, 128}

// reloadDelay is the number of cycles TIMA reads 0 after overflowing,
// before it is reloaded from TMA.
const reloadDelay = 4

// Controller is a timer controller. It is used to generate
// interrupts at a specific frequency. The frequency can be
// configured using the types.TAC register.
type Controller struct {
	// div is the 16-bit system counter, of which DIV is the
	// upper byte.
	div uint16

	tima uint8
	tma  uint8
	tac  uint8

	Enabled            bool
	currentBit         uint16
	lastBit            bool
	overflow           bool
	ticksSinceOverflow uint8

	irq interrupts.Requester
}

// NewController returns a new timer controller in its post-boot state.
func NewController(irq interrupts.Requester) *Controller {
	return &Controller{
		div:        0xABCC,
		tac:        0xF8,
		currentBit: bits[0],
		irq:        irq,
	}
}

// Tick advances the timer by the given number of cycles.
func (c *Controller) Tick(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		c.div++

		if c.overflow {
			c.ticksSinceOverflow++
			if c.ticksSinceOverflow == reloadDelay {
				c.tima = c.tma
				c.irq.Request(interrupts.Timer)
				c.overflow = false
				c.ticksSinceOverflow = 0
			}
		}

		c.edge()
	}
}

// edge increments TIMA on a falling edge of the selected counter bit,
// ANDed with the enable bit.
func (c *Controller) edge() {
	newBit := c.Enabled && c.div&c.currentBit != 0
	if c.lastBit && !newBit {
		c.increment()
	}
	c.lastBit = newBit
}

func (c *Controller) increment() {
	c.tima++
	if c.tima == 0 {
		c.overflow = true
		c.ticksSinceOverflow = 0
	}
}

// Read returns the value of one of the timer registers.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.DIV:
		return uint8(c.div >> 8)
	case types.TIMA:
		return c.tima
	case types.TMA:
		return c.tma
	case types.TAC:
		return c.tac | 0b11111000
	}
	panic(fmt.Sprintf("timer: illegal read from 0x%04X", address))
}

// Write writes to one of the timer registers.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.DIV:
		// any write resets the whole counter, which may
		// itself produce a falling edge
		c.div = 0
		c.edge()
	case types.TIMA:
		// a write during the reload delay cancels the reload
		c.tima = value
		c.overflow = false
		c.ticksSinceOverflow = 0
	case types.TMA:
		c.tma = value
	case types.TAC:
		c.tac = value & 0x07
		c.currentBit = bits[value&0b11]
		c.Enabled = value&types.Bit2 != 0
		c.edge()
	default:
		panic(fmt.Sprintf("timer: illegal write to 0x%04X", address))
	}
}

var _ types.Stater = (*Controller)(nil)

// Load loads the state of the controller.
func (c *Controller) Load(s *types.State) {
	c.div = s.Read16()
	c.tima = s.Read8()
	c.tma = s.Read8()
	c.tac = s.Read8()

	c.Enabled = s.ReadBool()
	c.currentBit = s.Read16()
	c.lastBit = s.ReadBool()
	c.overflow = s.ReadBool()
	c.ticksSinceOverflow = s.Read8()
}

// Save saves the state of the controller.
func (c *Controller) Save(s *types.State) {
	s.Write16(c.div)
	s.Write8(c.tima)
	s.Write8(c.tma)
	s.Write8(c.tac)

	s.WriteBool(c.Enabled)
	s.Write16(c.currentBit)
	s.WriteBool(c.lastBit)
	s.WriteBool(c.overflow)
	s.Write8(c.ticksSinceOverflow)
}
