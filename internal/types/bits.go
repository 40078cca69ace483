package types

// Bit masks for the eight bits of a byte, used throughout the
// hardware registers.
const (
	Bit0 = 1 << iota // 0b0000_0001
	Bit1             // 0b0000_0010
	Bit2             // 0b0000_0100
	Bit3             // 0b0000_1000
	Bit4             // 0b0001_0000
	Bit5             // 0b0010_0000
	Bit6             // 0b0100_0000
	Bit7             // 0b1000_0000
)

// OpenBus is the value driven onto the data bus when a read targets a
// disabled or unused device register.
const OpenBus uint8 = 0xFF
