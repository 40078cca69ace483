package mmu

import (
	"github.com/thelolagemann/gbcore/internal/ram"
	"github.com/thelolagemann/gbcore/internal/types"
)

// WRAM is the 8kB of work RAM at 0xC000 - 0xDFFF, split into two fixed
// 4kB banks. 0xE000 - 0xFDFF echoes it.
type WRAM struct {
	raw ram.RAM
}

func NewWRAM() *WRAM {
	return &WRAM{raw: ram.NewRAM(0x2000)}
}

// Read handles both the work RAM and its echo, as the echo starts
// exactly 0x2000 bytes later.
func (w *WRAM) Read(addr uint16) uint8 {
	return w.raw.Read(addr & 0x1FFF)
}

func (w *WRAM) Write(addr uint16, v uint8) {
	w.raw.Write(addr&0x1FFF, v)
}

var _ types.Stater = (*WRAM)(nil)

func (w *WRAM) Load(s *types.State) {
	w.raw.Load(s)
}

func (w *WRAM) Save(s *types.State) {
	w.raw.Save(s)
}
