package mmu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// fakeDevice is a Device backed by a plain map, recording ticks.
type fakeDevice struct {
	name  string
	mem   map[uint16]uint8
	order *[]string
}

func newFakeDevice(name string, order *[]string) *fakeDevice {
	return &fakeDevice{name: name, mem: map[uint16]uint8{}, order: order}
}

func (f *fakeDevice) Read(address uint16) uint8         { return f.mem[address] }
func (f *fakeDevice) Write(address uint16, value uint8) { f.mem[address] = value }
func (f *fakeDevice) Tick(uint8) {
	if f.order != nil {
		*f.order = append(*f.order, f.name)
	}
}

func newTestMMU(t *testing.T) *MMU {
	t.Helper()
	rom := make([]byte, 0x8000)
	for i := range rom {
		rom[i] = uint8(i)
	}
	rom[0x147] = 0x08 // ROM+RAM
	rom[0x149] = 0x02
	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		t.Fatal(err)
	}
	return NewMMU(cart, nil)
}

func TestMMU_Read16Write16(t *testing.T) {
	m := newTestMMU(t)
	m.Write16(0xC000, 0xBEEF)
	if m.Read(0xC000) != 0xEF || m.Read(0xC001) != 0xBE {
		t.Errorf("expected little endian order, got %02X %02X", m.Read(0xC000), m.Read(0xC001))
	}
	if got := m.Read16(0xC000); got != 0xBEEF {
		t.Errorf("expected 0xBEEF, got 0x%04X", got)
	}

	for _, addr := range []uint16{0xA000, 0xC800, 0xD000, 0xFF80, 0xFFFD} {
		m.Write16(addr, 0x1234)
		if got := m.Read16(addr); got != 0x1234 {
			t.Errorf("0x%04X: expected 0x1234, got 0x%04X", addr, got)
		}
	}
}

func TestMMU_Echo(t *testing.T) {
	m := newTestMMU(t)
	tests := []struct {
		wram, echo uint16
	}{
		{0xC000, 0xE000},
		{0xCFFF, 0xEFFF},
		{0xD000, 0xF000},
		{0xDDFF, 0xFDFF},
	}
	for _, tt := range tests {
		m.Write(tt.wram, 0x42)
		if got := m.Read(tt.echo); got != 0x42 {
			t.Errorf("expected 0x%04X to echo 0x%04X, got 0x%02X", tt.echo, tt.wram, got)
		}
		m.Write(tt.echo, 0x24)
		if got := m.Read(tt.wram); got != 0x24 {
			t.Errorf("expected write to 0x%04X to reach 0x%04X, got 0x%02X", tt.echo, tt.wram, got)
		}
	}
}

func TestMMU_Cartridge(t *testing.T) {
	m := newTestMMU(t)
	if got := m.Read(0x1234); got != 0x34 {
		t.Errorf("expected ROM byte 0x34, got 0x%02X", got)
	}
	m.Write(0xA000, 0x77)
	if got := m.Read(0xA000); got != 0x77 {
		t.Errorf("expected cartridge RAM to be writable, got 0x%02X", got)
	}
}

func TestMMU_Interrupts(t *testing.T) {
	m := newTestMMU(t)
	m.Write(types.IF, 0x00)
	m.Interrupts().Request(interrupts.Timer)
	if got := m.Read(types.IF); got != 0xE4 {
		t.Errorf("expected IF 0xE4, got 0x%02X", got)
	}
	m.Write(types.IE, 0x1F)
	if got := m.Read(types.IE); got != 0x1F {
		t.Errorf("expected IE 0x1F, got 0x%02X", got)
	}
}

func TestMMU_Unmapped(t *testing.T) {
	m := newTestMMU(t)
	for _, addr := range []uint16{0xFEA0, 0xFEFF, 0xFF03, 0xFF27, 0xFF4C, 0xFF7F, 0x8000, 0xFF40} {
		m.Write(addr, 0x12)
		if got := m.Read(addr); got != 0xFF {
			t.Errorf("0x%04X: expected open bus 0xFF, got 0x%02X", addr, got)
		}
	}

	m.Strict = true
	defer func() {
		r := recover()
		err, ok := r.(*UnmappedAddressError)
		if !ok {
			t.Fatalf("expected *UnmappedAddressError, got %v", r)
		}
		if err.Address != 0xFF03 || err.Write {
			t.Errorf("expected read of 0xFF03, got %v", err)
		}
	}()
	m.Read(0xFF03)
}

func TestMMU_Devices(t *testing.T) {
	m := newTestMMU(t)
	var order []string
	video := newFakeDevice("video", &order)
	timer := newFakeDevice("timer", &order)
	serial := newFakeDevice("serial", &order)
	sound := newFakeDevice("sound", nil)
	joypad := newFakeDevice("joypad", nil)

	// attach out of order, ticks must still be video, timer, serial
	m.AttachSerial(serial)
	m.AttachTimer(timer)
	m.AttachVideo(video)
	m.AttachSound(sound)
	m.AttachJoypad(joypad)

	writes := map[uint16]*fakeDevice{
		0x8000:     video,
		0xFE9F:     video,
		types.LCDC: video,
		types.WX:   video,
		types.DIV:  timer,
		types.TAC:  timer,
		types.SB:   serial,
		types.NR10: sound,
		0xFF3F:     sound,
		types.P1:   joypad,
	}
	for addr, dev := range writes {
		m.Write(addr, 0x5A)
		if dev.mem[addr] != 0x5A {
			t.Errorf("expected 0x%04X to reach %s", addr, dev.name)
		}
	}

	m.Tick(4)
	if len(order) != 3 || order[0] != "video" || order[1] != "timer" || order[2] != "serial" {
		t.Errorf("expected tick order video, timer, serial, got %v", order)
	}
}

func TestMMU_DMA(t *testing.T) {
	m := newTestMMU(t)
	video := newFakeDevice("video", nil)
	m.AttachVideo(video)

	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xC100+i, uint8(i)^0xFF)
	}
	m.Write(types.DMA, 0xC1)
	for i := uint16(0); i < 0xA0; i++ {
		if got := video.mem[types.OAMStart+i]; got != uint8(i)^0xFF {
			t.Fatalf("OAM 0x%02X: expected 0x%02X, got 0x%02X", i, uint8(i)^0xFF, got)
		}
	}
	if m.Read(types.DMA) != 0xC1 {
		t.Errorf("expected DMA to read back 0xC1, got 0x%02X", m.Read(types.DMA))
	}
}

func TestMMU_DMAEcho(t *testing.T) {
	m := newTestMMU(t)
	video := newFakeDevice("video", nil)
	m.AttachVideo(video)
	m.Strict = true
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("expected no panic, got %v", r)
		}
	}()
	for i := uint16(0); i < 0xA0; i++ {
		m.Write(0xDF00+i, uint8(i)^0x5A)
	}
	m.Write(types.DMA, 0xFF)
	for i := uint16(0); i < 0xA0; i++ {
		if got := video.mem[types.OAMStart+i]; got != uint8(i)^0x5A {
			t.Fatalf("OAM 0x%02X: expected 0x%02X, got 0x%02X", i, uint8(i)^0x5A, got)
		}
	}
}

func TestMMU_BootROM(t *testing.T) {
	m := newTestMMU(t)
	raw := make([]byte, boot.Size)
	for i := range raw {
		raw[i] = 0xAA
	}
	b, err := boot.LoadBootROM(raw)
	if err != nil {
		t.Fatal(err)
	}
	m.SetBootROM(b)

	if got := m.Read(0x0010); got != 0xAA {
		t.Errorf("expected boot ROM at 0x0010, got 0x%02X", got)
	}
	if got := m.Read(0x0110); got != 0x10 {
		t.Errorf("expected cartridge at 0x0110, got 0x%02X", got)
	}

	m.Write(types.BDIS, 0x00)
	if !m.BootROMMapped() {
		t.Errorf("expected a zero write to keep the boot ROM mapped")
	}
	m.Write(types.BDIS, 0x01)
	if got := m.Read(0x0010); got != 0x10 {
		t.Errorf("expected cartridge at 0x0010 after disabling, got 0x%02X", got)
	}
}

func TestMMU_SaveLoad(t *testing.T) {
	m := newTestMMU(t)
	m.Write(0xC123, 0x11)
	m.Write(0xFF90, 0x22)
	m.Write(0xA010, 0x33)
	m.Write(types.IE, 0x05)

	s := types.NewState()
	m.Save(s)

	n := newTestMMU(t)
	n.Load(types.StateFromBytes(s.Bytes()))
	for addr, want := range map[uint16]uint8{0xC123: 0x11, 0xFF90: 0x22, 0xA010: 0x33, types.IE: 0x05} {
		if got := n.Read(addr); got != want {
			t.Errorf("0x%04X: expected 0x%02X, got 0x%02X", addr, want, got)
		}
	}
}

type patchFunc func(uint16, uint8) uint8

func (f patchFunc) Patch(address uint16, value uint8) uint8 { return f(address, value) }

func TestMMU_Patcher(t *testing.T) {
	m := newTestMMU(t)
	m.SetPatcher(patchFunc(func(address uint16, value uint8) uint8 {
		if address == 0x4567 {
			return 0xAA
		}
		return value
	}))
	if got := m.Read(0x4567); got != 0xAA {
		t.Errorf("expected patched byte 0xAA, got 0x%02X", got)
	}
	if got := m.Read(0x4568); got != 0x68 {
		t.Errorf("expected ROM byte 0x68, got 0x%02X", got)
	}
}
