package types

// HardwareAddress is the address of one of the memory mapped I/O
// registers, which live at 0xFF00 - 0xFF7F and 0xFFFF.
type HardwareAddress = uint16

// Boundaries of the DMG address space. Each constant is the first address
// of its region; a region ends where the next begins.
const (
	ROMBank0     uint16 = 0x0000 // fixed cartridge ROM bank
	ROMBankN     uint16 = 0x4000 // switchable cartridge ROM bank
	VRAMStart    uint16 = 0x8000 // video RAM
	ExtRAMStart  uint16 = 0xA000 // cartridge RAM
	WRAM0Start   uint16 = 0xC000 // work RAM bank 0
	WRAM1Start   uint16 = 0xD000 // work RAM bank 1
	EchoStart    uint16 = 0xE000 // mirror of 0xC000 - 0xDDFF
	OAMStart     uint16 = 0xFE00 // object attribute memory
	UnusableFrom uint16 = 0xFEA0 // prohibited area
	IOStart      uint16 = 0xFF00 // I/O registers
	HRAMStart    uint16 = 0xFF80 // high RAM
)

const (
	// P1 selects which half of the joypad matrix is read back in
	// its low nibble.
	P1 HardwareAddress = 0xFF00
	// SB holds the byte being shifted out over the serial link.
	SB HardwareAddress = 0xFF01
	// SC starts a serial transfer (bit 7) and selects the clock
	// source (bit 0).
	SC HardwareAddress = 0xFF02
	// DIV is the upper byte of the 16-bit system counter. Any write
	// resets the whole counter.
	DIV HardwareAddress = 0xFF04
	// TIMA is incremented at the rate selected by TAC, and reloaded
	// from TMA when it overflows.
	TIMA HardwareAddress = 0xFF05
	// TMA is the value loaded into TIMA on overflow.
	TMA HardwareAddress = 0xFF06
	// TAC enables the timer (bit 2) and selects its clock (bits 0-1).
	TAC HardwareAddress = 0xFF07
	// IF holds the pending interrupt requests.
	//
	//  Bit 0: V-Blank  (INT 40h)
	//  Bit 1: LCD STAT (INT 48h)
	//  Bit 2: Timer    (INT 50h)
	//  Bit 3: Serial   (INT 58h)
	//  Bit 4: Joypad   (INT 60h)
	IF HardwareAddress = 0xFF0F

	NR10 HardwareAddress = 0xFF10
	NR11 HardwareAddress = 0xFF11
	NR12 HardwareAddress = 0xFF12
	NR13 HardwareAddress = 0xFF13
	NR14 HardwareAddress = 0xFF14
	NR21 HardwareAddress = 0xFF16
	NR22 HardwareAddress = 0xFF17
	NR23 HardwareAddress = 0xFF18
	NR24 HardwareAddress = 0xFF19
	NR30 HardwareAddress = 0xFF1A
	NR31 HardwareAddress = 0xFF1B
	NR32 HardwareAddress = 0xFF1C
	NR33 HardwareAddress = 0xFF1D
	NR34 HardwareAddress = 0xFF1E
	NR41 HardwareAddress = 0xFF20
	NR42 HardwareAddress = 0xFF21
	NR43 HardwareAddress = 0xFF22
	NR44 HardwareAddress = 0xFF23
	NR50 HardwareAddress = 0xFF24
	NR51 HardwareAddress = 0xFF25
	// NR52 is the sound master control. Bit 7 powers the APU, bits
	// 0-3 report which channels are active (read only).
	NR52 HardwareAddress = 0xFF26
	// WaveRAM is the first of 16 bytes of wave pattern storage.
	WaveRAM HardwareAddress = 0xFF30

	// LCDC controls the LCD.
	//
	//  Bit 7: LCD Enable                     (0=Off, 1=On)
	//  Bit 6: Window Tile Map Select         (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 5: Window Enable                  (0=Off, 1=On)
	//  Bit 4: BG & Window Tile Data Select   (0=8800-97FF, 1=8000-8FFF)
	//  Bit 3: BG Tile Map Select             (0=9800-9BFF, 1=9C00-9FFF)
	//  Bit 2: OBJ Size                       (0=8x8, 1=8x16)
	//  Bit 1: OBJ Enable                     (0=Off, 1=On)
	//  Bit 0: BG Enable                      (0=Off, 1=On)
	LCDC HardwareAddress = 0xFF40
	// STAT reports the LCD mode and selects the sources of the STAT
	// interrupt.
	//
	//  Bit 6: LYC=LY interrupt source  (Read/Write)
	//  Bit 5: Mode 2 interrupt source  (Read/Write)
	//  Bit 4: Mode 1 interrupt source  (Read/Write)
	//  Bit 3: Mode 0 interrupt source  (Read/Write)
	//  Bit 2: LYC=LY                   (Read Only)
	//  Bit 1-0: Mode                   (Read Only)
	STAT HardwareAddress = 0xFF41
	SCY  HardwareAddress = 0xFF42
	SCX  HardwareAddress = 0xFF43
	// LY is the scanline currently being processed, 0-153. It can't
	// be written; a write restarts the frame instead.
	LY HardwareAddress = 0xFF44
	// LYC is compared against LY on every line.
	LYC HardwareAddress = 0xFF45
	// DMA starts a copy of 160 bytes from (value << 8) into OAM.
	DMA HardwareAddress = 0xFF46
	// BGP, OBP0 and OBP1 map the four colour numbers to shades of grey,
	// two bits per colour, colour 0 in the lowest bits.
	BGP  HardwareAddress = 0xFF47
	OBP0 HardwareAddress = 0xFF48
	OBP1 HardwareAddress = 0xFF49
	WY   HardwareAddress = 0xFF4A
	WX   HardwareAddress = 0xFF4B
	// BDIS unmaps the boot ROM when written with a non-zero value.
	BDIS HardwareAddress = 0xFF50
	// IE holds the interrupt enable mask, using the same layout as IF.
	IE HardwareAddress = 0xFFFF
)
