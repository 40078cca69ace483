package types

import (
	"testing"

	"github.com/pkg/errors"
)

func TestState_RoundTrip(t *testing.T) {
	s := NewState()
	s.Write8(0x12)
	s.Write16(0x3456)
	s.Write32(0x789ABCDE)
	s.Write64(0x0123456789ABCDEF)
	s.WriteBool(true)
	s.WriteData([]byte{1, 2, 3})

	r := StateFromBytes(s.Bytes())
	if got := r.Read8(); got != 0x12 {
		t.Errorf("expected 0x12, got 0x%02X", got)
	}
	if got := r.Read16(); got != 0x3456 {
		t.Errorf("expected 0x3456, got 0x%04X", got)
	}
	if got := r.Read32(); got != 0x789ABCDE {
		t.Errorf("expected 0x789ABCDE, got 0x%08X", got)
	}
	if got := r.Read64(); got != 0x0123456789ABCDEF {
		t.Errorf("expected 0x0123456789ABCDEF, got 0x%016X", got)
	}
	if !r.ReadBool() {
		t.Error("expected true")
	}
	data := make([]byte, 3)
	r.ReadData(data)
	if data[0] != 1 || data[2] != 3 {
		t.Errorf("expected [1 2 3], got %v", data)
	}
	if r.Err() != nil {
		t.Errorf("expected no error, got %v", r.Err())
	}
}

func TestState_Short(t *testing.T) {
	r := StateFromBytes([]byte{0x01})
	if got := r.Read16(); got != 0 {
		t.Errorf("expected 0 past the end, got 0x%04X", got)
	}
	if got := r.Read8(); got != 0 {
		t.Errorf("expected 0 past the end, got 0x%02X", got)
	}
	if !errors.Is(r.Err(), ErrShortState) {
		t.Errorf("expected ErrShortState, got %v", r.Err())
	}
}
