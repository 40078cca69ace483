// Package ppu implements the timing of the Game Boy's (P)ixel (P)rocessing
// (U)nit: the dot counter, the LCD modes it walks through, and the
// interrupts raised along the way. Video RAM and OAM are stored here,
// but no pixels are produced.
package ppu

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

const (
	// ScreenWidth is the width of the screen in pixels.
	ScreenWidth = 160
	// ScreenHeight is the height of the screen in pixels.
	ScreenHeight = 144

	// DotsPerLine is the length of a scanline in dots (T-cycles).
	DotsPerLine = 456
	// Lines is the number of scanlines per frame, 144 visible and
	// 10 of vertical blanking.
	Lines = 154
	// CyclesPerFrame is the length of a frame in dots.
	CyclesPerFrame = DotsPerLine * Lines
	// VBlankStart is the dot at which the vertical blank begins.
	VBlankStart = DotsPerLine * ScreenHeight

	oamScanEnd = 80
	drawingEnd = 80 + 172
)

// PPU implements the Game Boy's (P)ixel (P)rocessing (U)nit.
//
// The mode is never stored, it is derived from the dot counter
// whenever it is needed.
//
// References:
//   - [Pan Docs](https://gbdev.io/pandocs/Graphics.html)
//   - [Hacktix GBEDG](https://hacktix.github.io/GBEDG/ppu/)
type PPU struct {
	dot uint32 // 0 - CyclesPerFrame-1

	lcdc   Controller
	status Status
	scy    uint8
	scx    uint8
	lyc    uint8
	bgp    Palette
	obp0   Palette
	obp1   Palette
	wy     uint8
	wx     uint8

	vram [0x2000]uint8
	oam  [0xA0]uint8

	lastMode Mode // mode seen by the last update
	statInt  bool // current level of the STAT interrupt line
	frames   uint64

	irq interrupts.Requester
}

// New returns a PPU in its post-boot state, with the LCD on and
// at the first dot of a frame.
func New(irq interrupts.Requester) *PPU {
	p := &PPU{
		lcdc: 0x91,
		bgp:  0xFC,
		irq:  irq,
	}
	p.lastMode = p.Mode()
	return p
}

// Mode returns the current mode. With the LCD off the PPU reports
// HorizontalBlank.
func (p *PPU) Mode() Mode {
	if !p.lcdc.Enabled() {
		return HorizontalBlank
	}
	if p.dot >= VBlankStart {
		return VerticalBlank
	}
	switch x := p.dot % DotsPerLine; {
	case x < oamScanEnd:
		return OAMScan
	case x < drawingEnd:
		return DrawingPixels
	default:
		return HorizontalBlank
	}
}

// LY returns the scanline currently being processed, 0 - 153.
func (p *PPU) LY() uint8 {
	return uint8(p.dot / DotsPerLine)
}

// Dot returns the position of the PPU within the frame.
func (p *PPU) Dot() uint32 {
	return p.dot
}

// Frames returns the number of times the PPU has entered VerticalBlank.
func (p *PPU) Frames() uint64 {
	return p.frames
}

// Tick advances the PPU by the given number of dots. Time is consumed
// in steps that stop at every mode and line boundary, so that no
// transition is skipped however large cycles is.
func (p *PPU) Tick(cycles uint8) {
	if !p.lcdc.Enabled() {
		return
	}

	remaining := uint32(cycles)
	for remaining > 0 {
		step := p.untilBoundary()
		if step > remaining {
			step = remaining
		}
		p.dot += step
		if p.dot >= CyclesPerFrame {
			p.dot -= CyclesPerFrame
		}
		remaining -= step

		p.update()
	}
}

// untilBoundary returns the number of dots until the next mode or line
// change.
func (p *PPU) untilBoundary() uint32 {
	x := p.dot % DotsPerLine
	if p.dot < VBlankStart {
		switch {
		case x < oamScanEnd:
			return oamScanEnd - x
		case x < drawingEnd:
			return drawingEnd - x
		}
	}
	return DotsPerLine - x
}

// update raises the interrupts caused by a change of mode or line.
func (p *PPU) update() {
	mode := p.Mode()
	if mode == VerticalBlank && p.lastMode != VerticalBlank {
		p.frames++
		p.irq.Request(interrupts.VBlank)
	}
	p.lastMode = mode

	p.statUpdate()
}

// statUpdate handles the STAT interrupt line. The LCD interrupt is
// only requested on a rising edge of the line, so that a source
// becoming active while another one already holds the line high does
// not raise a second request.
func (p *PPU) statUpdate() {
	if !p.lcdc.Enabled() {
		p.statInt = false
		return
	}

	statINT := p.status.line(p.Mode(), p.LY() == p.lyc)
	if !p.statInt && statINT {
		p.irq.Request(interrupts.LCD)
	}
	p.statInt = statINT
}

// Read returns the value of a PPU register, or a byte of VRAM or OAM.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= types.VRAMStart && address < types.ExtRAMStart:
		return p.vram[address-types.VRAMStart]
	case address >= types.OAMStart && address < types.UnusableFrom:
		return p.oam[address-types.OAMStart]
	}

	switch address {
	case types.LCDC:
		return uint8(p.lcdc)
	case types.STAT:
		value := types.Bit7 | p.status.read() | uint8(p.Mode())
		if p.LY() == p.lyc {
			value |= types.Bit2
		}
		return value
	case types.SCY:
		return p.scy
	case types.SCX:
		return p.scx
	case types.LY:
		return p.LY()
	case types.LYC:
		return p.lyc
	case types.BGP:
		return uint8(p.bgp)
	case types.OBP0:
		return uint8(p.obp0)
	case types.OBP1:
		return uint8(p.obp1)
	case types.WY:
		return p.wy
	case types.WX:
		return p.wx
	}

	panic(fmt.Sprintf("ppu: illegal read from 0x%04X", address))
}

// Write writes to a PPU register, or a byte of VRAM or OAM.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= types.VRAMStart && address < types.ExtRAMStart:
		p.vram[address-types.VRAMStart] = value
		return
	case address >= types.OAMStart && address < types.UnusableFrom:
		p.oam[address-types.OAMStart] = value
		return
	}

	switch address {
	case types.LCDC:
		wasEnabled := p.lcdc.Enabled()
		p.lcdc = Controller(value)
		if wasEnabled != p.lcdc.Enabled() {
			// turning the LCD on or off restarts the frame
			p.dot = 0
			p.lastMode = p.Mode()
			p.statUpdate()
		}
	case types.STAT:
		p.status.write(value)
		p.statUpdate()
	case types.SCY:
		p.scy = value
	case types.SCX:
		p.scx = value
	case types.LY:
		// LY is read only, writing to it resets the counter
		p.dot = 0
		p.lastMode = p.Mode()
		p.statUpdate()
	case types.LYC:
		p.lyc = value
		p.statUpdate()
	case types.BGP:
		p.bgp = Palette(value)
	case types.OBP0:
		p.obp0 = Palette(value)
	case types.OBP1:
		p.obp1 = Palette(value)
	case types.WY:
		p.wy = value
	case types.WX:
		p.wx = value
	default:
		panic(fmt.Sprintf("ppu: illegal write to 0x%04X", address))
	}
}

// Controller returns the current value of LCDC.
func (p *PPU) Controller() Controller {
	return p.lcdc
}

// Palettes returns the background and object palettes.
func (p *PPU) Palettes() (bg, obj0, obj1 Palette) {
	return p.bgp, p.obp0, p.obp1
}

var _ types.Stater = (*PPU)(nil)

// Load implements the types.Stater interface.
//
// The values are loaded in the following order:
//   - dot (uint32)
//   - LCDC, STAT, SCY, SCX, LYC, BGP, OBP0, OBP1, WY, WX (uint8)
//   - statInt (bool)
//   - frames (uint64)
//   - VRAM ([0x2000]uint8)
//   - OAM ([0xA0]uint8)
func (p *PPU) Load(s *types.State) {
	p.dot = s.Read32() % CyclesPerFrame
	p.lcdc = Controller(s.Read8())
	p.status.write(s.Read8())
	p.scy = s.Read8()
	p.scx = s.Read8()
	p.lyc = s.Read8()
	p.bgp = Palette(s.Read8())
	p.obp0 = Palette(s.Read8())
	p.obp1 = Palette(s.Read8())
	p.wy = s.Read8()
	p.wx = s.Read8()
	p.statInt = s.ReadBool()
	p.frames = s.Read64()
	s.ReadData(p.vram[:])
	s.ReadData(p.oam[:])

	p.lastMode = p.Mode()
}

// Save implements the types.Stater interface.
func (p *PPU) Save(s *types.State) {
	s.Write32(p.dot)
	s.Write8(uint8(p.lcdc))
	s.Write8(p.status.read())
	s.Write8(p.scy)
	s.Write8(p.scx)
	s.Write8(p.lyc)
	s.Write8(uint8(p.bgp))
	s.Write8(uint8(p.obp0))
	s.Write8(uint8(p.obp1))
	s.Write8(p.wy)
	s.Write8(p.wx)
	s.WriteBool(p.statInt)
	s.Write64(p.frames)
	s.WriteData(p.vram[:])
	s.WriteData(p.oam[:])
}
