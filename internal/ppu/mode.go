package ppu

// Mode is the mode of the PPU, as reported in STAT bits 0-1.
type Mode uint8

const (
	// HorizontalBlank (Mode 0) is the rest of a visible line
	// after the pixels have been drawn.
	HorizontalBlank Mode = iota
	// VerticalBlank (Mode 1) spans lines 144-153.
	VerticalBlank
	// OAMScan (Mode 2) is the first 80 dots of a visible line.
	OAMScan
	// DrawingPixels (Mode 3) follows OAMScan for 172 dots.
	DrawingPixels
)

func (m Mode) String() string {
	switch m {
	case HorizontalBlank:
		return "HBlank"
	case VerticalBlank:
		return "VBlank"
	case OAMScan:
		return "OAM"
	case DrawingPixels:
		return "Drawing"
	}
	return "Mode(?)"
}
