package joypad

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

type recorder map[interrupts.Kind]int

func (r recorder) Request(k interrupts.Kind) {
	r[k]++
}

func TestState_Read(t *testing.T) {
	r := recorder{}
	s := New(r)
	if got := s.Read(types.P1); got != 0xFF {
		t.Errorf("expected 0xFF with nothing selected, got 0x%02X", got)
	}

	s.Press(ButtonA)
	s.Press(ButtonDown)
	if r[interrupts.Joypad] != 2 {
		t.Errorf("expected 2 joypad interrupts, got %d", r[interrupts.Joypad])
	}
	s.Press(ButtonA)
	if r[interrupts.Joypad] != 2 {
		t.Errorf("expected a held button not to raise again")
	}

	tests := []struct {
		selection uint8
		expected  uint8
	}{
		{0x30, 0xFF},
		{0x10, 0xDE}, // action buttons, A pressed
		{0x20, 0xE7}, // direction buttons, Down pressed
		{0x00, 0xC6},
	}
	for _, tt := range tests {
		s.Write(types.P1, tt.selection)
		if got := s.Read(types.P1); got != tt.expected {
			t.Errorf("select %02X: expected 0x%02X, got 0x%02X", tt.selection, tt.expected, got)
		}
	}

	s.Release(ButtonA)
	s.Write(types.P1, 0x10)
	if got := s.Read(types.P1); got != 0xDF {
		t.Errorf("expected A to be released, got 0x%02X", got)
	}
}
