package gameboy

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/thelolagemann/gbcore/internal/boot"
	"github.com/thelolagemann/gbcore/internal/cartridge"
	"github.com/thelolagemann/gbcore/internal/cheats"
	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/joypad"
	"github.com/thelolagemann/gbcore/internal/mmu"
	"github.com/thelolagemann/gbcore/internal/types"
)

// loop is JR -2, an endless loop of 12 cycle instructions.
var loop = []uint8{0x18, 0xFE}

// newROM returns a 32KiB ROM only image that jumps to 0x0150 and runs
// program from there.
func newROM(program ...uint8) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x0100:], []uint8{0x00, 0xC3, 0x50, 0x01})
	copy(rom[0x0134:], "GBCORE")
	var checksum uint8
	for i := 0x0134; i <= 0x014C; i++ {
		checksum = checksum - rom[i] - 1
	}
	rom[0x014D] = checksum
	copy(rom[0x0150:], program)
	return rom
}

func TestNewGameBoy(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	if g.CPU.PC != 0x0100 {
		t.Errorf("expected PC 0x0100, got 0x%04X", g.CPU.PC)
	}
	if g.Cartridge().Title() != "GBCORE" {
		t.Errorf("expected title GBCORE, got %q", g.Cartridge().Title())
	}
	if g.MMU.Read(types.LCDC) != 0x91 {
		t.Errorf("expected LCDC 0x91, got 0x%02X", g.MMU.Read(types.LCDC))
	}
}

func TestNewGameBoy_Errors(t *testing.T) {
	if _, err := NewGameBoy(make([]byte, 0x100)); !errors.Is(err, cartridge.ErrTruncated) {
		t.Errorf("expected ErrTruncated, got %v", err)
	}
	if _, err := NewGameBoy(newROM(), WithBootROM(make([]byte, 10))); !errors.Is(err, boot.ErrInvalidLength) {
		t.Errorf("expected ErrInvalidLength, got %v", err)
	}
	if _, err := NewGameBoy(newROM(), WithState(types.StateFromBytes([]byte{1, 2, 3}))); !errors.Is(err, types.ErrShortState) {
		t.Errorf("expected ErrShortState, got %v", err)
	}
}

func TestGameBoy_Step(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	dot := g.PPU.Dot()
	if got := g.Step(); got != 4 {
		t.Errorf("expected NOP to take 4 cycles, got %d", got)
	}
	if g.PPU.Dot() != dot+4 {
		t.Errorf("expected the PPU to advance 4 dots, got %d", g.PPU.Dot()-dot)
	}
}

func TestGameBoy_Frame(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}

	var total uint
	for i := 1; i <= 10; i++ {
		cycles := g.Frame()
		if cycles < CyclesPerFrame-24 || cycles > CyclesPerFrame+24 {
			t.Errorf("frame %d: expected about %d cycles, got %d", i, CyclesPerFrame, cycles)
		}
		total += cycles
		if over := total - uint(i*CyclesPerFrame); over >= 24 {
			t.Errorf("frame %d: expected overshoot to carry over, %d cycles ahead", i, over)
		}
	}
	if frames := g.PPU.Frames(); frames != 10 {
		t.Errorf("expected 10 frames drawn, got %d", frames)
	}
}

func TestGameBoy_SerialOutput(t *testing.T) {
	program := []uint8{
		0x3E, 'O', // LD A, 'O'
		0xE0, 0x01, // LDH (SB), A
		0x3E, 0x81, // LD A, 0x81
		0xE0, 0x02, // LDH (SC), A
		0x18, 0xFE, // JR -2
	}
	out := &bytes.Buffer{}
	g, err := NewGameBoy(newROM(program...), SerialOutput(out))
	if err != nil {
		t.Fatal(err)
	}
	g.Frame()
	if out.String() != "O" {
		t.Errorf("expected serial output %q, got %q", "O", out.String())
	}
	if g.MMU.Interrupts().Flag&uint8(interrupts.Serial) == 0 {
		t.Error("expected the serial interrupt to be requested")
	}
}

func TestGameBoy_BootROM(t *testing.T) {
	rom := make([]byte, boot.Size)
	copy(rom, loop)
	g, err := NewGameBoy(newROM(), WithBootROM(rom))
	if err != nil {
		t.Fatal(err)
	}
	if g.CPU.PC != 0 || g.CPU.SP != 0 {
		t.Errorf("expected PC and SP 0, got 0x%04X 0x%04X", g.CPU.PC, g.CPU.SP)
	}
	if !g.MMU.BootROMMapped() {
		t.Fatal("expected the boot ROM to be mapped")
	}
	if g.MMU.Read(0x0000) != 0x18 {
		t.Errorf("expected the boot ROM at 0x0000, got 0x%02X", g.MMU.Read(0x0000))
	}
	g.Step()
	if g.CPU.PC != 0 {
		t.Errorf("expected the boot ROM loop, got PC 0x%04X", g.CPU.PC)
	}
	g.MMU.Write(types.BDIS, 0x01)
	if g.MMU.Read(0x0000) != 0x00 {
		t.Errorf("expected the cartridge at 0x0000, got 0x%02X", g.MMU.Read(0x0000))
	}
}

func TestGameBoy_Speed(t *testing.T) {
	tests := []struct {
		speed, want float64
	}{
		{1, 1}, {0.5, 0.5}, {100, 16}, {-1, 0},
	}
	for _, tt := range tests {
		g, err := NewGameBoy(newROM(), Speed(tt.speed))
		if err != nil {
			t.Fatal(err)
		}
		if g.speed != tt.want {
			t.Errorf("Speed(%v): expected %v, got %v", tt.speed, tt.want, g.speed)
		}
	}
}

func TestGameBoy_Run(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...), Speed(0))
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := g.Run(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if g.PPU.Frames() == 0 {
		t.Error("expected frames to have run")
	}

	// a cancelled context stops Run before any frame
	g, _ = NewGameBoy(newROM(loop...))
	cancel()
	if err := g.Run(ctx); err == nil {
		t.Error("expected an error from a cancelled context")
	}
	if g.PPU.Frames() != 0 {
		t.Errorf("expected no frames, got %d", g.PPU.Frames())
	}
}

func TestFrameTime(t *testing.T) {
	if FrameTime < 16740*time.Microsecond || FrameTime > 16750*time.Microsecond {
		t.Errorf("expected a frame time of about 16.74ms, got %v", FrameTime)
	}
}

func TestGameBoy_Strict(t *testing.T) {
	// LD A, (0xFEA0)
	g, err := NewGameBoy(newROM(0xFA, 0xA0, 0xFE), Strict())
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if _, ok := recover().(*mmu.UnmappedAddressError); !ok {
			t.Error("expected an UnmappedAddressError panic")
		}
	}()
	for i := 0; i < 3; i++ {
		g.Step()
	}
}

func TestGameBoy_Joypad(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	g.MMU.Write(types.IF, 0)
	g.MMU.Write(types.P1, 0x10) // select the action buttons
	g.Joypad.Press(joypad.ButtonStart)
	if g.MMU.Read(types.IF)&uint8(interrupts.Joypad) == 0 {
		t.Error("expected the joypad interrupt to be requested")
	}
	if got := g.MMU.Read(types.P1) & 0x0F; got != 0x07 {
		t.Errorf("expected Start to read as pressed, got %04b", got)
	}
}

func TestGameBoy_SaveLoad(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	g.Frame()
	g.MMU.Write(0xC123, 0x42)
	g.MMU.Write(types.SCX, 0x17)
	state := g.Save()

	restored, err := NewGameBoy(newROM(loop...), WithState(types.StateFromBytes(state.Bytes())))
	if err != nil {
		t.Fatal(err)
	}
	if restored.CPU.PC != g.CPU.PC || restored.CPU.A != g.CPU.A {
		t.Errorf("expected CPU to be restored, got PC 0x%04X", restored.CPU.PC)
	}
	if restored.MMU.Read(0xC123) != 0x42 {
		t.Errorf("expected work RAM to be restored, got 0x%02X", restored.MMU.Read(0xC123))
	}
	if restored.MMU.Read(types.SCX) != 0x17 {
		t.Errorf("expected SCX to be restored, got 0x%02X", restored.MMU.Read(types.SCX))
	}
	if restored.PPU.Dot() != g.PPU.Dot() {
		t.Errorf("expected dot %d, got %d", g.PPU.Dot(), restored.PPU.Dot())
	}
}

func TestGameBoy_LoadShortState(t *testing.T) {
	g, err := NewGameBoy(newROM(loop...))
	if err != nil {
		t.Fatal(err)
	}
	g.Frame()
	truncated := g.Save().Bytes()[:40]

	g.CPU.A = 0x77
	g.MMU.Write(0xC000, 0x99)
	pc := g.CPU.PC
	if err := g.Load(types.StateFromBytes(truncated)); !errors.Is(err, types.ErrShortState) {
		t.Errorf("expected ErrShortState, got %v", err)
	}
	if g.CPU.A != 0x77 {
		t.Errorf("expected A 0x77, got 0x%02X", g.CPU.A)
	}
	if g.MMU.Read(0xC000) != 0x99 {
		t.Errorf("expected work RAM 0x99, got 0x%02X", g.MMU.Read(0xC000))
	}
	if g.CPU.PC != pc {
		t.Errorf("expected PC 0x%04X, got 0x%04X", pc, g.CPU.PC)
	}
}

func TestGameBoy_Cheats(t *testing.T) {
	genie, shark := cheats.NewGameGenie(), cheats.NewGameShark()
	// 0x42 at 0x0150, the first byte of the program
	if err := genie.Load("421-50F", "patch"); err != nil {
		t.Fatal(err)
	}
	if err := shark.Load("017700D0", "money"); err != nil {
		t.Fatal(err)
	}
	g, err := NewGameBoy(newROM(loop...), WithCheats(genie, shark))
	if err != nil {
		t.Fatal(err)
	}
	if got := g.MMU.Read(0x0150); got != 0x42 {
		t.Errorf("expected patched ROM byte 0x42, got 0x%02X", got)
	}
	g.Frame()
	if got := g.MMU.Read(0xD000); got != 0x77 {
		t.Errorf("expected 0x77 written to RAM, got 0x%02X", got)
	}
}
