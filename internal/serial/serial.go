// Package serial provides the serial link port of the Game Boy.
// Only transfers clocked by the Game Boy itself make progress; with no
// device attached every transfer shifts in 0xFF.
package serial

import (
	"fmt"
	"io"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// ticksPerBit is the number of cycles it takes to shift one bit
// with the internal clock (8192 Hz).
const ticksPerBit = 512

// Controller is the serial controller. It is responsible for sending and
// receiving data to and from devices.
// Before a transfer, data holds the next byte to be sent. AKA types.SB
// During a transfer, it has a mix of the incoming data and the outgoing data.
// each cycle, the leftmost bit of data is sent to the attached device, and
// shifted out of data, and the incoming bit is shifted into data.
//
// example:
//
//	Before : data = o7 o6 o5 o4 o3 o2 o1 o0
//	Cycle 1: data = o6 o5 o4 o3 o2 o1 o0 i0
//	Cycle 2: data = o5 o4 o3 o2 o1 o0 i0 i1
//	...
//	Cycle 8: data = i0 i1 i2 i3 i4 i5 i6 i7
//
// Where o0-o7 are the outgoing bits, and i0-i7 are the incoming bits.
type Controller struct {
	data            uint8  // types.SB
	count           uint8  // the number of bits that have been transferred.
	ticks           uint16 // cycles until the next bit is shifted.
	InternalClock   bool   // if true, this controller is the master.
	TransferRequest bool   // if true, a transfer has been requested.

	AttachedDevice Device // the device that is attached to this controller.

	// output receives every byte sent with the internal clock, which
	// is how test ROMs report their results.
	output io.Writer

	irq interrupts.Requester
}

// NewController creates a new Controller. By default, the Controller is
// attached to a nullDevice, which acts as if there is no device attached.
func NewController(irq interrupts.Requester) *Controller {
	return &Controller{
		AttachedDevice: nullDevice{},
		irq:            irq,
	}
}

// Attach attaches a Device to the Controller.
func (c *Controller) Attach(d Device) {
	c.AttachedDevice = d
}

// SetOutput sets the writer that receives each byte sent.
func (c *Controller) SetOutput(w io.Writer) {
	c.output = w
}

// Tick advances a transfer in progress by the given number of cycles.
func (c *Controller) Tick(cycles uint8) {
	if !c.TransferRequest || !c.InternalClock {
		return
	}

	remaining := uint16(cycles)
	for remaining > 0 && c.TransferRequest {
		if remaining < c.ticks {
			c.ticks -= remaining
			return
		}
		remaining -= c.ticks
		c.ticks = ticksPerBit
		c.shift()
	}
}

// shift exchanges one bit with the attached device.
func (c *Controller) shift() {
	bit := c.AttachedDevice.Send()
	c.AttachedDevice.Receive(c.data&types.Bit7 == types.Bit7)

	c.data <<= 1
	if bit {
		c.data |= 1
	}

	if c.count++; c.count == 8 {
		c.count = 0
		c.TransferRequest = false
		c.irq.Request(interrupts.Serial)
	}
}

// Read returns the value of SB or SC.
func (c *Controller) Read(address uint16) uint8 {
	switch address {
	case types.SB:
		return c.data
	case types.SC:
		value := uint8(0x7E) // bits 1-6 are unused
		if c.TransferRequest {
			value |= types.Bit7
		}
		if c.InternalClock {
			value |= types.Bit0
		}
		return value
	}
	panic(fmt.Sprintf("serial: illegal read from 0x%04X", address))
}

// Write writes to SB or SC. Setting SC bit 7 starts a transfer.
func (c *Controller) Write(address uint16, value uint8) {
	switch address {
	case types.SB:
		c.data = value
	case types.SC:
		c.InternalClock = value&types.Bit0 == types.Bit0
		c.TransferRequest = value&types.Bit7 == types.Bit7
		if c.TransferRequest {
			c.count = 0
			c.ticks = ticksPerBit
			if c.InternalClock && c.output != nil {
				_, _ = c.output.Write([]byte{c.data})
			}
		}
	default:
		panic(fmt.Sprintf("serial: illegal write to 0x%04X", address))
	}
}

var _ types.Stater = (*Controller)(nil)

// Load implements the types.Stater interface.
func (c *Controller) Load(s *types.State) {
	c.data = s.Read8()
	c.count = s.Read8()
	c.ticks = s.Read16()
	c.InternalClock = s.ReadBool()
	c.TransferRequest = s.ReadBool()
}

// Save implements the types.Stater interface.
func (c *Controller) Save(s *types.State) {
	s.Write8(c.data)
	s.Write8(c.count)
	s.Write16(c.ticks)
	s.WriteBool(c.InternalClock)
	s.WriteBool(c.TransferRequest)
}
