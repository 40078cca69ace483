// Package apu provides the register interface of the Game Boy's audio
// processing unit. No sound is generated: registers hold what is
// written to them and read back with their write-only bits set.
package apu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// readMasks are ORed into each register from types.NR10 to types.NR52
// when it is read. Unused addresses read as 0xFF.
var readMasks = [0x17]uint8{
	0x80, 0x3F, 0x00, 0xFF, 0xBF, // NR10-NR14
	0xFF, 0x3F, 0x00, 0xFF, 0xBF, // NR20-NR24
	0x7F, 0xFF, 0x9F, 0xFF, 0xBF, // NR30-NR34
	0xFF, 0xFF, 0x00, 0x00, 0xBF, // NR40-NR44
	0x00, 0x00, 0x70, // NR50-NR52
}

// APU represents the GameBoy's audio processing unit. It comprises 4
// channels: 2 pulse channels, a wave channel and a noise channel. Each
// channel is controlled by a set of registers.
type APU struct {
	enabled bool

	registers [0x17]uint8 // types.NR10 - types.NR51
	// active holds the channel status bits 0-3 of NR52. A channel
	// becomes active when triggered with its DAC on.
	active  uint8
	waveRAM [16]uint8
}

// NewAPU returns a new APU in its post-boot state.
func NewAPU() *APU {
	a := &APU{enabled: true, active: 0x01}
	a.registers[types.NR10-types.NR10] = 0x80
	a.registers[types.NR11-types.NR10] = 0xBF
	a.registers[types.NR12-types.NR10] = 0xF3
	a.registers[types.NR14-types.NR10] = 0xBF
	a.registers[types.NR50-types.NR10] = 0x77
	a.registers[types.NR51-types.NR10] = 0xF3
	return a
}

// Read returns the value of a sound register or a byte of wave RAM.
func (a *APU) Read(address uint16) uint8 {
	switch {
	case address >= types.WaveRAM && address < types.WaveRAM+16:
		return a.waveRAM[address-types.WaveRAM]
	case address == types.NR52:
		value := readMasks[address-types.NR10] | a.active
		if a.enabled {
			value |= types.Bit7
		}
		return value
	case address >= types.NR10 && address < types.NR52:
		return a.registers[address-types.NR10] | readMasks[address-types.NR10]
	}
	panic(fmt.Sprintf("apu: illegal read from 0x%04X", address))
}

// Write writes to a sound register or wave RAM. While the APU is powered
// off, only NR52 and wave RAM can be written.
func (a *APU) Write(address uint16, value uint8) {
	switch {
	case address >= types.WaveRAM && address < types.WaveRAM+16:
		a.waveRAM[address-types.WaveRAM] = value
	case address == types.NR52:
		enabled := value&types.Bit7 != 0
		if a.enabled && !enabled {
			// powering off clears every register
			a.registers = [0x17]uint8{}
			a.active = 0
		}
		a.enabled = enabled
	case address >= types.NR10 && address < types.NR52:
		if !a.enabled {
			return
		}
		a.registers[address-types.NR10] = value
		if value&types.Bit7 != 0 {
			a.trigger(address)
		}
	default:
		panic(fmt.Sprintf("apu: illegal write to 0x%04X", address))
	}
}

// trigger marks a channel active when its NRx4 register is written
// with bit 7 set, provided its DAC is on.
func (a *APU) trigger(address uint16) {
	var channel uint8
	var dac bool
	switch address {
	case types.NR14:
		channel, dac = 0, a.registers[types.NR12-types.NR10]&0xF8 != 0
	case types.NR24:
		channel, dac = 1, a.registers[types.NR22-types.NR10]&0xF8 != 0
	case types.NR34:
		channel, dac = 2, a.registers[types.NR30-types.NR10]&types.Bit7 != 0
	case types.NR44:
		channel, dac = 3, a.registers[types.NR42-types.NR10]&0xF8 != 0
	default:
		return
	}
	if dac {
		a.active |= 1 << channel
	}
}

var _ types.Stater = (*APU)(nil)

// Load implements the types.Stater interface.
func (a *APU) Load(s *types.State) {
	a.enabled = s.ReadBool()
	a.active = s.Read8() & 0x0F
	s.ReadData(a.registers[:])
	s.ReadData(a.waveRAM[:])
}

// Save implements the types.Stater interface.
func (a *APU) Save(s *types.State) {
	s.WriteBool(a.enabled)
	s.Write8(a.active)
	s.WriteData(a.registers[:])
	s.WriteData(a.waveRAM[:])
}
