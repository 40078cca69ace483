package apu

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
)

func TestAPU_ReadMasks(t *testing.T) {
	a := NewAPU()
	tests := []struct {
		address  uint16
		expected uint8
	}{
		{types.NR10, 0x80},
		{types.NR11, 0x3F},
		{types.NR13, 0xFF},
		{types.NR30, 0x7F},
		{types.NR32, 0x9F},
		{0xFF15, 0xFF},
		{0xFF1F, 0xFF},
	}
	for _, tt := range tests {
		a.Write(tt.address, 0x00)
		if got := a.Read(tt.address); got != tt.expected {
			t.Errorf("0x%04X: expected 0x%02X, got 0x%02X", tt.address, tt.expected, got)
		}
	}
}

func TestAPU_Power(t *testing.T) {
	a := NewAPU()
	if got := a.Read(types.NR52); got != 0xF1 {
		t.Fatalf("expected NR52 0xF1 after boot, got 0x%02X", got)
	}

	a.Write(types.WaveRAM+3, 0x5A)
	a.Write(types.NR52, 0x00)
	if got := a.Read(types.NR52); got != 0x70 {
		t.Errorf("expected NR52 0x70 when off, got 0x%02X", got)
	}
	if got := a.Read(types.NR50); got != 0x00 {
		t.Errorf("expected registers to be cleared, got 0x%02X", got)
	}
	a.Write(types.NR50, 0x77)
	if got := a.Read(types.NR50); got != 0x00 {
		t.Errorf("expected writes to be ignored while off, got 0x%02X", got)
	}
	if got := a.Read(types.WaveRAM + 3); got != 0x5A {
		t.Errorf("expected wave RAM to survive power off, got 0x%02X", got)
	}

	a.Write(types.NR52, 0x80)
	a.Write(types.NR22, 0xF0)
	a.Write(types.NR24, 0x80)
	if got := a.Read(types.NR52); got != 0xF2 {
		t.Errorf("expected channel 2 to be active, got 0x%02X", got)
	}
}
