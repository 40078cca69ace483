package types

import "testing"

type flat [0x10000]uint8

func (f *flat) Read(address uint16) uint8 { return f[address] }

func (f *flat) Write(address uint16, value uint8) { f[address] = value }

func TestRead16Write16(t *testing.T) {
	m := &flat{}
	Write16(m, 0xC000, 0xBEEF)
	if m[0xC000] != 0xEF || m[0xC001] != 0xBE {
		t.Errorf("expected little endian bytes EF BE, got %02X %02X", m[0xC000], m[0xC001])
	}
	if got := Read16(m, 0xC000); got != 0xBEEF {
		t.Errorf("expected 0xBEEF, got 0x%04X", got)
	}

	// the high byte wraps around the address space
	Write16(m, 0xFFFF, 0x1234)
	if m[0x0000] != 0x12 {
		t.Errorf("expected high byte at 0x0000, got 0x%02X", m[0x0000])
	}
}

func TestRegisterPair(t *testing.T) {
	var h, l Register
	p := &RegisterPair{High: &h, Low: &l}
	p.SetUint16(0xABCD)
	if h != 0xAB || l != 0xCD {
		t.Errorf("expected AB CD, got %02X %02X", h, l)
	}
	l = 0x01
	if p.Uint16() != 0xAB01 {
		t.Errorf("expected the pair to follow its halves, got 0x%04X", p.Uint16())
	}
}
