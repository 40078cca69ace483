// Package mmu provides a memory management unit for the Game Boy. The
// MMU decodes every address of the 64kB address space and delegates to
// the component that owns it.
package mmu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/ram"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

// Device is a memory mapped component that needs to be told about the
// passage of time.
type Device interface {
	types.Memory
	Tick(cycles uint8)
}

// UnmappedAddressError is the panic value raised when an access reaches
// an address no component owns, and the MMU is strict.
type UnmappedAddressError struct {
	Address uint16
	Write   bool
}

func (e *UnmappedAddressError) Error() string {
	if e.Write {
		return fmt.Sprintf("mmu: write to unmapped address 0x%04X", e.Address)
	}
	return fmt.Sprintf("mmu: read from unmapped address 0x%04X", e.Address)
}

// address holds the handlers of a single address.
type address struct {
	Read  func(uint16) uint8
	Write func(uint16, uint8)
}

// MMU is the memory management unit for the Game Boy. It handles all
// memory reads and writes to the Game Boy's 64kB of memory, and
// delegates to the other components.
type MMU struct {
	// 64kB address space
	raw [65536]*address

	// 0x0000 - 0x00FF - BOOT ROM (256B)
	bootROM     *boot.ROM
	bootROMDone bool

	// 0x0000 - 0x7FFF - ROM (32kB)
	// 0xA000 - 0xBFFF - External RAM (8kB)
	Cart *cartridge.Cartridge

	// 0x8000 - 0x9FFF - Video RAM (8kB)
	// 0xFE00 - 0xFE9F - Sprite Attribute Table (160B)
	// 0xFF40 - 0xFF4B - LCD registers (except 0xFF46)
	Video Device

	// 0xC000 - 0xDFFF - Work RAM (8kB)
	// 0xE000 - 0xFDFF - Echo RAM (7.5kB)
	wRAM *WRAM

	// 0xFF00 - joypad
	Joypad types.Memory
	// 0xFF01 - 0xFF02 - serial
	Serial Device
	// 0xFF04 - 0xFF07 - timer
	Timer Device
	// 0xFF10 - 0xFF26 - sound registers
	// 0xFF30 - 0xFF3F - Wave Pattern RAM (16B)
	Sound types.Memory

	// 0xFF0F, 0xFFFF - interrupt flag and enable
	irq *interrupts.Service

	// 0xFF46 - last value written to DMA
	dma uint8

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	zRAM ram.RAM

	// patcher rewrites values read from cartridge ROM
	patcher Patcher

	// Strict makes accesses to unmapped addresses fatal, rather than
	// reading 0xFF and ignoring writes.
	Strict bool

	Log log.Logger
}

// NewMMU returns a new MMU for the given cartridge. Components are
// attached afterwards, until then their addresses are unmapped.
func NewMMU(cart *cartridge.Cartridge, logger log.Logger) *MMU {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	m := &MMU{
		Cart: cart,
		wRAM: NewWRAM(),
		zRAM: ram.NewRAM(0x7F), // 127 bytes
		irq:  interrupts.NewService(),
		Log:  logger,
	}
	m.init()

	return m
}

func (m *MMU) init() {
	unmapped := &address{Read: m.readUnmapped, Write: m.writeUnmapped}
	for i := range m.raw {
		m.raw[i] = unmapped
	}

	addresses := []*address{
		{Read: m.readCart, Write: m.Cart.Write},
		{Read: m.readROM, Write: m.Cart.Write},
		{Read: m.wRAM.Read, Write: m.wRAM.Write},
		{Read: readOffset(m.zRAM.Read, types.HRAMStart), Write: writeOffset(m.zRAM.Write, types.HRAMStart)},
		{Read: m.irq.Read, Write: m.irq.Write},
		{Read: m.readDMA, Write: m.writeDMA},
		{Read: m.readBDIS, Write: m.writeBDIS},
	}

	// 0x0000 - 0x7FFF - ROM (32kB)
	m.mapRange(0x0000, 0x0100, addresses[0])
	m.mapRange(0x0100, types.VRAMStart, addresses[1])

	// 0xA000 - 0xBFFF - external RAM (8kB)
	m.mapRange(types.ExtRAMStart, types.WRAM0Start, &address{Read: m.Cart.Read, Write: m.Cart.Write})

	// 0xC000 - 0xFDFF - internal RAM (8kB) and its echo
	m.mapRange(types.WRAM0Start, types.OAMStart, addresses[2])

	// 0xFF80 - 0xFFFE - Zero Page RAM (127B)
	m.mapRange(types.HRAMStart, types.IE, addresses[3])

	m.raw[types.IF] = addresses[4]
	m.raw[types.IE] = addresses[4]
	m.raw[types.DMA] = addresses[5]
	m.raw[types.BDIS] = addresses[6]
}

// mapRange maps [from, to) to a.
func (m *MMU) mapRange(from, to uint16, a *address) {
	for i := uint32(from); i < uint32(to); i++ {
		m.raw[i] = a
	}
}

func readOffset(read func(uint16) uint8, offset uint16) func(uint16) uint8 {
	return func(addr uint16) uint8 {
		return read(addr - offset)
	}
}

func writeOffset(write func(uint16, uint8), offset uint16) func(uint16, uint8) {
	return func(addr uint16, v uint8) {
		write(addr-offset, v)
	}
}

// AttachVideo attaches the PPU, which owns VRAM, OAM and the LCD
// registers.
func (m *MMU) AttachVideo(video Device) {
	m.Video = video
	a := &address{Read: video.Read, Write: video.Write}

	// 0x8000 - 0x9FFF - VRAM (8kB)
	m.mapRange(types.VRAMStart, types.ExtRAMStart, a)
	// 0xFE00 - 0xFE9F - sprite attribute table (OAM) (160B)
	m.mapRange(types.OAMStart, types.UnusableFrom, a)
	// 0xFF40 - 0xFF4B - LCD registers, around DMA
	m.mapRange(types.LCDC, types.DMA, a)
	m.mapRange(types.BGP, types.WX+1, a)
}

// AttachSound attaches the APU.
func (m *MMU) AttachSound(sound types.Memory) {
	m.Sound = sound
	a := &address{Read: sound.Read, Write: sound.Write}
	m.mapRange(types.NR10, types.NR52+1, a)
	m.mapRange(types.WaveRAM, types.WaveRAM+16, a)
}

// AttachTimer attaches the timer to 0xFF04 - 0xFF07.
func (m *MMU) AttachTimer(timer Device) {
	m.Timer = timer
	m.mapRange(types.DIV, types.TAC+1, &address{Read: timer.Read, Write: timer.Write})
}

// AttachSerial attaches the serial port to 0xFF01 - 0xFF02.
func (m *MMU) AttachSerial(serial Device) {
	m.Serial = serial
	m.mapRange(types.SB, types.SC+1, &address{Read: serial.Read, Write: serial.Write})
}

// AttachJoypad attaches the joypad to 0xFF00.
func (m *MMU) AttachJoypad(joypad types.Memory) {
	m.Joypad = joypad
	m.raw[types.P1] = &address{Read: joypad.Read, Write: joypad.Write}
}

// SetBootROM maps the boot ROM over 0x0000 - 0x00FF, until it is
// disabled by writing to types.BDIS.
func (m *MMU) SetBootROM(rom *boot.ROM) {
	m.bootROM = rom
	m.bootROMDone = rom == nil
}

// BootROMMapped reports whether the boot ROM is currently mapped.
func (m *MMU) BootROMMapped() bool {
	return m.bootROM != nil && !m.bootROMDone
}

// Interrupts returns the interrupt controller.
func (m *MMU) Interrupts() *interrupts.Service {
	return m.irq
}

// Tick advances every time-sensitive component by the given number of
// cycles, in a fixed order: video, timer then serial.
func (m *MMU) Tick(cycles uint8) {
	if m.Video != nil {
		m.Video.Tick(cycles)
	}
	if m.Timer != nil {
		m.Timer.Tick(cycles)
	}
	if m.Serial != nil {
		m.Serial.Tick(cycles)
	}
}

func (m *MMU) readCart(address uint16) uint8 {
	// handle the boot ROM (if enabled)
	if m.BootROMMapped() {
		return m.bootROM.Read(address)
	}

	return m.readROM(address)
}

func (m *MMU) readROM(address uint16) uint8 {
	if m.patcher != nil {
		return m.patcher.Patch(address, m.Cart.Read(address))
	}
	return m.Cart.Read(address)
}

// Patcher rewrites values read from cartridge ROM, as a Game Genie does.
type Patcher interface {
	Patch(address uint16, value uint8) uint8
}

// SetPatcher installs p over cartridge ROM reads.
func (m *MMU) SetPatcher(p Patcher) {
	m.patcher = p
}

func (m *MMU) readUnmapped(address uint16) uint8 {
	if m.Strict {
		panic(&UnmappedAddressError{Address: address})
	}
	m.Log.Debugf("mmu: read from unmapped address 0x%04X", address)
	return types.OpenBus
}

func (m *MMU) writeUnmapped(address uint16, value uint8) {
	if m.Strict {
		panic(&UnmappedAddressError{Address: address, Write: true})
	}
	m.Log.Debugf("mmu: ignoring write of 0x%02X to unmapped address 0x%04X", value, address)
}

func (m *MMU) readDMA(uint16) uint8 {
	return m.dma
}

// writeDMA copies 160 bytes from (value << 8) into OAM. The transfer
// completes immediately. Sources at 0xE000 and above read from work RAM.
func (m *MMU) writeDMA(_ uint16, value uint8) {
	m.dma = value
	source := uint16(value) << 8
	if source >= types.EchoStart {
		source -= 0x2000
	}
	for i := uint16(0); i < 0xA0; i++ {
		m.Write(types.OAMStart+i, m.Read(source+i))
	}
}

func (m *MMU) readBDIS(uint16) uint8 {
	return types.OpenBus
}

func (m *MMU) writeBDIS(_ uint16, value uint8) {
	if value != 0 && m.BootROMMapped() {
		m.Log.Debugf("mmu: boot ROM disabled")
		m.bootROMDone = true
	}
}

// Read returns the value at the given address. It handles all the memory
// banks, mirroring, I/O, etc.
func (m *MMU) Read(address uint16) uint8 {
	return m.raw[address].Read(address)
}

func (m *MMU) Write(address uint16, value uint8) {
	m.raw[address].Write(address, value)
}

// Read16 returns the little endian 16-bit value at address.
func (m *MMU) Read16(address uint16) uint16 {
	return types.Read16(m, address)
}

// Write16 writes value at address in little endian order.
func (m *MMU) Write16(address uint16, value uint16) {
	types.Write16(m, address, value)
}

var _ types.Stater = (*MMU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - bootROMDone (bool)
//   - dma (uint8)
//   - interrupts
//   - cartridge
//   - work RAM
//   - zero page RAM
func (m *MMU) Load(s *types.State) {
	m.bootROMDone = s.ReadBool()
	m.dma = s.Read8()
	m.irq.Load(s)
	m.Cart.Load(s)
	m.wRAM.Load(s)
	m.zRAM.Load(s)
}

// Save implements the types.Stater interface.
func (m *MMU) Save(s *types.State) {
	s.WriteBool(m.bootROMDone)
	s.Write8(m.dma)
	m.irq.Save(s)
	m.Cart.Save(s)
	m.wRAM.Save(s)
	m.zRAM.Save(s)
}
