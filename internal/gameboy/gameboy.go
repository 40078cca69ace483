// Package gameboy provides an emulation of a Nintendo Game Boy.
package gameboy

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/thelolagemann/gbcore/internal/apu"
	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/cpu"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/ppu"
	"github.com/thelolagemann/gbcore/internal/serial"
	"github.com/thelolagemann/gbcore/internal/timer"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
)

const (
	// ClockSpeed is the clock speed of the Game Boy.
	ClockSpeed = cpu.ClockSpeed // 4.194304 MHz
	// CyclesPerFrame is the number of clock cycles per frame.
	CyclesPerFrame = ppu.CyclesPerFrame
	// FrameTime is the time a frame takes on real hardware.
	FrameTime = time.Second * 100 / 5973
)

// GameBoy represents a Game Boy. It contains all the components of the Game Boy.
// It is the main entry point for the emulator.
type GameBoy struct {
	CPU    *cpu.CPU
	MMU    *mmu.MMU
	PPU    *ppu.PPU
	APU    *apu.APU
	Joypad *joypad.State
	Timer  *timer.Controller
	Serial *serial.Controller

	log.Logger

	// speed multiplies the pacing of Run, 0 runs unthrottled.
	speed float64
	// debt is the number of cycles the last frame overran its budget.
	debt uint

	bootROM *boot.ROM
	shark   *cheats.GameShark
	state   *types.State
	err     error
}

// NewGameBoy returns a new GameBoy running the given cartridge image.
// Without a boot ROM, the GameBoy starts in the state the boot ROM
// leaves behind.
func NewGameBoy(rom []byte, opts ...Opt) (*GameBoy, error) {
	cart, err := cartridge.NewCartridge(rom)
	if err != nil {
		return nil, errors.Wrap(err, "loading cartridge")
	}

	g := &GameBoy{
		Logger: log.NewNullLogger(),
		speed:  1,
	}
	memBus := mmu.NewMMU(cart, g.Logger)
	irq := memBus.Interrupts()

	g.MMU = memBus
	g.PPU = ppu.New(irq)
	g.APU = apu.NewAPU()
	g.Joypad = joypad.New(irq)
	g.Timer = timer.NewController(irq)
	g.Serial = serial.NewController(irq)
	g.CPU = cpu.NewCPU(memBus, irq, g.Logger)

	memBus.AttachVideo(g.PPU)
	memBus.AttachSound(g.APU)
	memBus.AttachJoypad(g.Joypad)
	memBus.AttachTimer(g.Timer)
	memBus.AttachSerial(g.Serial)

	for _, opt := range opts {
		opt(g)
	}
	if g.err != nil {
		return nil, g.err
	}

	// loggers may have been replaced by an option
	g.MMU.Log = g.Logger
	g.CPU.Log = g.Logger

	header := cart.Header()
	if !header.ChecksumValid {
		g.Warnf("header checksum mismatch for %s", header.Title)
	}
	g.Infof("loaded %s", header.String())

	if g.bootROM != nil {
		g.MMU.SetBootROM(g.bootROM)
		g.CPU.Reset()
		// power on values, the boot ROM sets up the rest
		g.MMU.Write(types.LCDC, 0x00)
		g.MMU.Write(types.BGP, 0x00)
		g.MMU.Write(types.IF, 0x00)
		g.MMU.Write(types.DIV, 0x00)
		g.Infof("running %s boot ROM", g.bootROM.Model())
	}

	if g.state != nil {
		if err := g.Load(g.state); err != nil {
			return nil, errors.Wrap(err, "loading state")
		}
	}

	return g, nil
}

// Cartridge returns the inserted cartridge.
func (g *GameBoy) Cartridge() *cartridge.Cartridge {
	return g.MMU.Cart
}

// Step executes a single CPU step, and advances the rest of the system
// by the number of cycles it took.
func (g *GameBoy) Step() uint8 {
	cycles := g.CPU.Step()
	g.MMU.Tick(cycles)
	return cycles
}

// Frame steps the emulation until a frame's worth of cycles has
// elapsed, and returns the number of cycles executed. Any cycles past
// the budget are taken from the next frame.
func (g *GameBoy) Frame() uint {
	var cycles uint
	budget := uint(CyclesPerFrame) - g.debt
	for cycles < budget {
		cycles += uint(g.Step())
	}
	g.debt = cycles - budget
	if g.shark != nil {
		g.shark.Apply(g.MMU)
	}
	return cycles
}

// Run runs frames until ctx is done, pacing them to the speed of real
// hardware multiplied by the speed option.
func (g *GameBoy) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := time.Now()
		g.Frame()

		if g.speed == 0 {
			continue
		}
		if wait := time.Duration(float64(FrameTime)/g.speed) - time.Since(start); wait > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
}

// Save returns the state of every component of the GameBoy.
func (g *GameBoy) Save() *types.State {
	s := types.NewState()
	for _, c := range g.staters() {
		c.Save(s)
	}
	return s
}

// Load restores the state of every component of the GameBoy from s.
func (g *GameBoy) Load(s *types.State) error {
	snapshot := g.Save()
	for _, c := range g.staters() {
		c.Load(s)
	}
	if err := s.Err(); err != nil {
		// a truncated state leaves the machine as it was
		restore := types.StateFromBytes(snapshot.Bytes())
		for _, c := range g.staters() {
			c.Load(restore)
		}
		return err
	}
	g.debt = 0
	return nil
}

// staters returns the components in the order they are saved.
func (g *GameBoy) staters() []types.Stater {
	return []types.Stater{g.CPU, g.MMU, g.PPU, g.APU, g.Joypad, g.Timer, g.Serial}
}

// addErr records an error raised by an option.
func (g *GameBoy) addErr(err error) {
	g.err = multierror.Append(g.err, err)
}
