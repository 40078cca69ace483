package interrupts

import (
	"testing"

	"github.com/thelolagemann/gbcore/internal/types"
)

func TestService_Priority(t *testing.T) {
	s := NewService()
	s.Flag = 0
	s.Enable = 0x1F
	s.Request(Joypad)
	s.Request(Timer)
	s.Request(LCD)

	for _, want := range []uint16{0x0048, 0x0050, 0x0060} {
		if got := s.Vector(); got != want {
			t.Errorf("expected vector 0x%04X, got 0x%04X", want, got)
		}
	}
	if s.HasInterrupts() {
		t.Error("expected no interrupts left pending")
	}
	if got := s.Vector(); got != 0 {
		t.Errorf("expected vector 0 when nothing is pending, got 0x%04X", got)
	}
}

func TestService_Enable(t *testing.T) {
	s := NewService()
	s.Flag = 0
	s.Request(Serial)
	if s.HasInterrupts() {
		t.Error("expected a disabled interrupt not to be pending")
	}
	s.Write(types.IE, uint8(Serial))
	if !s.HasInterrupts() {
		t.Error("expected an enabled interrupt to be pending")
	}
}

func TestService_Registers(t *testing.T) {
	s := NewService()
	s.Write(types.IF, 0xFF)
	if s.Flag != 0x1F {
		t.Errorf("expected IF to keep 5 bits, got %08b", s.Flag)
	}
	if got := s.Read(types.IF); got != 0xFF {
		t.Errorf("expected IF to read 0xFF, got 0x%02X", got)
	}
	s.Write(types.IF, 0)
	if got := s.Read(types.IF); got != 0xE0 {
		t.Errorf("expected IF to read 0xE0, got 0x%02X", got)
	}
	s.Write(types.IE, 0xAB)
	if got := s.Read(types.IE); got != 0xAB {
		t.Errorf("expected IE 0xAB, got 0x%02X", got)
	}
}

func TestKind_Vector(t *testing.T) {
	tests := []struct {
		kind   Kind
		vector uint16
	}{
		{VBlank, 0x40}, {LCD, 0x48}, {Timer, 0x50}, {Serial, 0x58}, {Joypad, 0x60},
	}
	for _, tt := range tests {
		if got := tt.kind.Vector(); got != tt.vector {
			t.Errorf("%s: expected 0x%02X, got 0x%02X", tt.kind, tt.vector, got)
		}
	}
}

func TestService_SaveLoad(t *testing.T) {
	s := NewService()
	s.Flag, s.Enable, s.IME = 0x05, 0x1F, true
	st := types.NewState()
	s.Save(st)

	loaded := NewService()
	loaded.Load(types.StateFromBytes(st.Bytes()))
	if loaded.Flag != 0x05 || loaded.Enable != 0x1F || !loaded.IME {
		t.Errorf("expected state to be restored, got %+v", loaded)
	}
}
