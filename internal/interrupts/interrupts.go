// Package interrupts provides the interrupt controller of the Game Boy,
// the IF/IE register pair and the master enable (IME).
package interrupts

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// Kind identifies one of the five interrupt sources. Its value is the
// bit of the source in the IF and IE registers.
type Kind uint8

const (
	// VBlank is requested every time the PPU enters
	// the vertical blanking period.
	VBlank Kind = types.Bit0
	// LCD is requested on a rising edge of the STAT
	// interrupt line (see types.STAT).
	LCD Kind = types.Bit1
	// Timer is requested when TIMA overflows.
	Timer Kind = types.Bit2
	// Serial is requested when a serial transfer
	// completes.
	Serial Kind = types.Bit3
	// Joypad is requested when a selected input line
	// goes from high to low.
	Joypad Kind = types.Bit4
)

// Vector returns the address the CPU jumps to when servicing k.
func (k Kind) Vector() uint16 {
	switch k {
	case VBlank:
		return 0x0040
	case LCD:
		return 0x0048
	case Timer:
		return 0x0050
	case Serial:
		return 0x0058
	case Joypad:
		return 0x0060
	}
	panic(fmt.Sprintf("interrupts: invalid kind %08b", uint8(k)))
}

func (k Kind) String() string {
	switch k {
	case VBlank:
		return "VBlank"
	case LCD:
		return "LCD"
	case Timer:
		return "Timer"
	case Serial:
		return "Serial"
	case Joypad:
		return "Joypad"
	}
	return fmt.Sprintf("Kind(%08b)", uint8(k))
}

// Requester is the only capability a peripheral is given over the
// interrupt controller.
type Requester interface {
	Request(k Kind)
}

// Service is the interrupt service, used to request
// interrupts and to get the current interrupt vector.
//
// When an interrupt is requested, the corresponding bit
// in the Flag register is set. When an interrupt is
// enabled, the corresponding bit in the Enable register
// is set. When an interrupt is requested and enabled,
// and the IME is set, the CPU will jump to the interrupt
// vector, and the corresponding bit in the Flag register
// will be cleared.
type Service struct {
	Flag   uint8 // interrupt Flag (types.IF)
	Enable uint8 // interrupt Enable (types.IE)

	// IME is the interrupt master enable, set by EI/RETI and
	// cleared by DI and by servicing an interrupt.
	IME bool
}

// NewService returns a new Service in its post-boot state.
func NewService() *Service {
	return &Service{Flag: 0x01}
}

// Request requests the specified interrupt, by setting
// the corresponding bit in the Flag register.
func (s *Service) Request(k Kind) {
	s.Flag |= uint8(k)
}

// HasInterrupts returns true if there are any interrupts
// that are requested and enabled, regardless of IME.
func (s *Service) HasInterrupts() bool {
	return s.Enable&s.Flag&0x1F != 0
}

// Vector acknowledges the highest priority pending interrupt,
// clearing its bit in the Flag register, and returns its vector.
// It returns 0 if nothing is pending.
func (s *Service) Vector() uint16 {
	pending := s.Enable & s.Flag & 0x1F
	if pending == 0 {
		return 0
	}
	for i := uint8(0); i < 5; i++ {
		k := Kind(1 << i)
		if pending&uint8(k) != 0 {
			s.Flag &^= uint8(k)
			return k.Vector()
		}
	}

	return 0
}

// Read implements types.Memory for IF and IE.
func (s *Service) Read(address uint16) uint8 {
	switch address {
	case types.IF:
		return s.Flag | 0xE0 // the upper 3 bits are always set
	case types.IE:
		return s.Enable
	}
	panic(fmt.Sprintf("interrupts: illegal read from 0x%04X", address))
}

// Write implements types.Memory for IF and IE.
func (s *Service) Write(address uint16, value uint8) {
	switch address {
	case types.IF:
		s.Flag = value & 0x1F // only the first 5 bits are used
	case types.IE:
		s.Enable = value
	default:
		panic(fmt.Sprintf("interrupts: illegal write to 0x%04X", address))
	}
}

var _ types.Stater = (*Service)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - Flag (uint8)
//   - Enable (uint8)
//   - IME (bool)
func (s *Service) Load(st *types.State) {
	s.Flag = st.Read8()
	s.Enable = st.Read8()
	s.IME = st.ReadBool()
}

// Save implements the types.Stater interface.
func (s *Service) Save(st *types.State) {
	st.Write8(s.Flag)
	st.Write8(s.Enable)
	st.WriteBool(s.IME)
}
