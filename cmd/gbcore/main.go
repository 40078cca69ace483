// Command gbcore runs a Game Boy cartridge headlessly.
//
//	gbcore [flags] <rom>
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/gameboy"
	"github.com/thelolagemann/gbcore/pkg/emu"
	"github.com/thelolagemann/gbcore/pkg/log"
	"github.com/thelolagemann/gbcore/pkg/utils"
)

func main() {
	bootROM := flag.String("boot", "", "The boot rom file to load")
	speed := flag.Float64("speed", 1, "The speed to run the emulator at, 0 is unthrottled")
	frames := flag.Uint("frames", 0, "Run this many frames as fast as possible, then exit")
	serialOut := flag.Bool("serial", false, "Write serial output to stdout")
	strict := flag.Bool("strict", false, "Treat accesses to unmapped addresses as fatal (by default they read 0xFF and writes are ignored)")
	debug := flag.Bool("debug", false, "Log every instruction executed")
	state := flag.String("state", "", "The state file to load")
	saveState := flag.String("save-state", "", "Save the state to this file on exit")
	cheatFile := flag.String("cheats", "", "A list of Game Genie and GameShark codes to apply")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] <rom>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.NewWithOutput(os.Stderr, *debug)
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	rom, err := utils.LoadFile(flag.Arg(0))
	if err != nil {
		logger.Fatalf("unable to open rom: %v", err)
	}

	opts := []gameboy.Opt{
		gameboy.WithLogger(logger),
		gameboy.Speed(*speed),
	}
	if *bootROM != "" {
		boot, err := utils.LoadFile(*bootROM)
		if err != nil {
			logger.Fatalf("unable to open boot rom: %v", err)
		}
		opts = append(opts, gameboy.WithBootROM(boot))
	}
	if *serialOut {
		opts = append(opts, gameboy.SerialOutput(os.Stdout))
	}
	if *strict {
		opts = append(opts, gameboy.Strict())
	}
	if *debug {
		opts = append(opts, gameboy.Debug())
	}
	if *cheatFile != "" {
		genie, shark := cheats.NewGameGenie(), cheats.NewGameShark()
		list, err := cheats.ParseFile(*cheatFile, genie, shark)
		if err != nil {
			logger.Fatalf("unable to load cheats: %v", err)
		}
		logger.Infof("loaded %d cheats", len(list))
		opts = append(opts, gameboy.WithCheats(genie, shark))
	}

	gb, err := gameboy.NewGameBoy(rom, opts...)
	if err != nil {
		logger.Fatalf("unable to load cartridge: %v", err)
	}
	cart := gb.Cartridge()
	fmt.Fprintf(os.Stderr, "%s: %s\n", cart.Type(), cart.Title())

	if *state != "" {
		s, err := emu.LoadState(*state, cart.Fingerprint())
		if err != nil {
			logger.Fatalf("unable to load state: %v", err)
		}
		if err := gb.Load(s); err != nil {
			logger.Fatalf("unable to load state: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run(ctx, gb, *frames, logger)

	if *saveState != "" {
		if err := emu.SaveState(*saveState, cart.Fingerprint(), gb.Save()); err != nil {
			logger.Fatalf("unable to save state: %v", err)
		}
		logger.Infof("saved state to %s", *saveState)
	}
}

// run runs gb until ctx is done, or for the given number of frames.
// Emulation faults are reported as fatal.
func run(ctx context.Context, gb *gameboy.GameBoy, frames uint, logger log.Logger) {
	defer func() {
		if r := recover(); r != nil {
			logger.Fatalf("emulation halted at 0x%04X: %v", gb.CPU.PC, r)
		}
	}()

	if frames == 0 {
		_ = gb.Run(ctx)
		return
	}
	for i := uint(0); i < frames && ctx.Err() == nil; i++ {
		gb.Frame()
	}
}
