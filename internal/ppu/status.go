package ppu

import "github.com/thelolagemann/gbcore/internal/types"

// Status holds the writable half of the LCD status register
// (types.STAT), the sources of the STAT interrupt.
//
//	Bit 6 - LYC=LY Coincidence Interrupt (1=Enable) (Read/Write)
//	Bit 5 - Mode 2 OAM Interrupt         (1=Enable) (Read/Write)
//	Bit 4 - Mode 1 V-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 3 - Mode 0 H-Blank Interrupt     (1=Enable) (Read/Write)
//	Bit 2 - Coincidence Flag  (0:LYC<>LY, 1:LYC=LY) (Read Only)
//	Bit 1-0 - Mode Flag                            (Read Only)
type Status struct {
	CoincidenceInterrupt bool
	OAMInterrupt         bool
	VBlankInterrupt      bool
	HBlankInterrupt      bool
}

func (s *Status) write(value uint8) {
	s.CoincidenceInterrupt = value&types.Bit6 != 0
	s.OAMInterrupt = value&types.Bit5 != 0
	s.VBlankInterrupt = value&types.Bit4 != 0
	s.HBlankInterrupt = value&types.Bit3 != 0
}

// read returns bits 3-6 of the register.
func (s *Status) read() uint8 {
	var value uint8
	if s.CoincidenceInterrupt {
		value |= types.Bit6
	}
	if s.OAMInterrupt {
		value |= types.Bit5
	}
	if s.VBlankInterrupt {
		value |= types.Bit4
	}
	if s.HBlankInterrupt {
		value |= types.Bit3
	}
	return value
}

// line returns the level of the STAT interrupt line for the given mode
// and coincidence.
func (s *Status) line(mode Mode, coincidence bool) bool {
	return (mode == HorizontalBlank && s.HBlankInterrupt) ||
		(mode == VerticalBlank && s.VBlankInterrupt) ||
		(mode == OAMScan && s.OAMInterrupt) ||
		(coincidence && s.CoincidenceInterrupt)
}
