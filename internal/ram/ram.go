// Package ram provides a basic RAM implementation.
package ram

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/types"
)

// RAM represents a block of RAM. Addresses are relative to the start
// of the block.
type RAM interface {
	types.Memory
	types.Stater
	Size() int
}

type ram struct {
	data []uint8
}

// NewRAM returns a new RAM of the given size, cleared to zero.
func NewRAM(size uint32) RAM {
	return &ram{
		data: make([]uint8, size),
	}
}

// Read returns the value at the given address.
func (r *ram) Read(address uint16) uint8 {
	if int(address) >= len(r.data) {
		panic(fmt.Sprintf("ram: illegal read from 0x%04X (size 0x%04X)", address, len(r.data)))
	}
	return r.data[address]
}

// Write writes the value to the given address.
func (r *ram) Write(address uint16, value uint8) {
	if int(address) >= len(r.data) {
		panic(fmt.Sprintf("ram: illegal write to 0x%04X (size 0x%04X)", address, len(r.data)))
	}
	r.data[address] = value
}

// Size returns the size of the block in bytes.
func (r *ram) Size() int {
	return len(r.data)
}

func (r *ram) Load(s *types.State) {
	s.ReadData(r.data)
}

func (r *ram) Save(s *types.State) {
	s.WriteData(r.data)
}
