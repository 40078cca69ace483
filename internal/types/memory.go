package types

// Memory is implemented by every addressable block of the Game Boy, from
// the cartridge up to the MMU itself. Addresses are always absolute, the
// implementor is responsible for subtracting its own base.
type Memory interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// Read16 reads a little endian 16-bit value from m, the low byte
// at address and the high byte at address+1.
func Read16(m Memory, address uint16) uint16 {
	return uint16(m.Read(address)) | uint16(m.Read(address+1))<<8
}

// Write16 writes value to m in little endian order.
func Write16(m Memory, address uint16, value uint16) {
	m.Write(address, uint8(value))
	m.Write(address+1, uint8(value>>8))
}
