package gameboy

import (
	"io"

	"github.com/pkg/errors"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/types"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

// maxSpeed is the fastest pacing Speed accepts.
const maxSpeed = 16

// Opt is a function that modifies a GameBoy
// instance.
type Opt func(gb *GameBoy)

// Debug logs every instruction the CPU executes.
func Debug() Opt {
	return func(gb *GameBoy) {
		gb.CPU.Debug = true
	}
}

// WithLogger sets the logger used by the GameBoy and its components.
func WithLogger(log log.Logger) Opt {
	return func(gb *GameBoy) {
		gb.Logger = log
	}
}

// WithBootROM maps the given boot ROM at 0x0000 and starts execution
// from it, rather than from the state it would leave behind.
func WithBootROM(rom []byte) Opt {
	return func(gb *GameBoy) {
		b, err := boot.LoadBootROM(rom)
		if err != nil {
			gb.addErr(errors.Wrap(err, "loading boot ROM"))
			return
		}
		gb.bootROM = b
	}
}

// Speed sets the pacing of Run, as a multiple of real hardware. It is
// clamped to 0-16, where 0 runs as fast as possible.
func Speed(speed float64) Opt {
	return func(gb *GameBoy) {
		gb.speed = utils.Clamp(0, speed, maxSpeed)
	}
}

// Strict makes accesses to unmapped addresses panic with an
// *mmu.UnmappedAddressError.
func Strict() Opt {
	return func(gb *GameBoy) {
		gb.MMU.Strict = true
	}
}

// SerialOutput writes every byte sent over the serial port to w. Test
// ROMs commonly report their results this way.
func SerialOutput(w io.Writer) Opt {
	return func(gb *GameBoy) {
		gb.Serial.SetOutput(w)
	}
}

// WithState restores the GameBoy from s once it has been created.
func WithState(s *types.State) Opt {
	return func(gb *GameBoy) {
		gb.state = s
	}
}

// WithCheats applies Game Genie codes to cartridge ROM reads, and
// GameShark codes to RAM after every frame. Either may be nil.
func WithCheats(genie *cheats.GameGenie, shark *cheats.GameShark) Opt {
	return func(gb *GameBoy) {
		if genie != nil {
			gb.MMU.SetPatcher(genie)
		}
		gb.shark = shark
	}
}
