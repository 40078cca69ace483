package gameboy

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thelolagemann/gbcore/pkg/utils"
)

// Test ROM suites are not distributed with the source. Place them under
// testdata/roms to run these tests.
const (
	blarggROMPath  = "testdata/roms/blargg"
	mooneyeROMPath = "testdata/roms/mooneye"

	framesPerSecond = 60
)

// romsIn returns the .gb files under dir, skipping the test if there
// are none.
func romsIn(t *testing.T, dir string) []string {
	t.Helper()
	var roms []string
	_ = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() && filepath.Ext(path) == ".gb" {
			roms = append(roms, path)
		}
		return nil
	})
	if len(roms) == 0 {
		t.Skipf("no test roms in %s", dir)
	}
	return roms
}

func loadROM(t *testing.T, path string, opts ...Opt) *GameBoy {
	t.Helper()
	rom, err := utils.LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGameBoy(rom, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// Blargg's test roms report their result over the serial port.
func Test_Blargg(t *testing.T) {
	for _, path := range romsIn(t, blarggROMPath) {
		path := path
		t.Run(strings.TrimPrefix(path, blarggROMPath+"/"), func(t *testing.T) {
			output := &bytes.Buffer{}
			g := loadROM(t, path, SerialOutput(output))
			for i := 0; i < 60*framesPerSecond; i++ {
				g.Frame()
				if strings.Contains(output.String(), "Passed") || strings.Contains(output.String(), "Failed") {
					break
				}
			}
			if !strings.Contains(output.String(), "Passed") {
				t.Errorf("expecting output to contain 'Passed', got '%s'", output.String())
			}
		})
	}
}

// The mooneye test suite writes the fibonacci sequence 3/5/8/13/21/34
// to the registers B/C/D/E/H/L when a test passes, and 0x42 to all of
// them when it fails.
func Test_Mooneye(t *testing.T) {
	for _, path := range romsIn(t, mooneyeROMPath) {
		path := path
		t.Run(strings.TrimPrefix(path, mooneyeROMPath+"/"), func(t *testing.T) {
			g := loadROM(t, path)
			for i := 0; i < 10*framesPerSecond; i++ {
				g.Frame()
			}
			c := g.CPU
			got := []uint8{c.B, c.C, c.D, c.E, c.H, c.L}
			if !bytes.Equal(got, []uint8{3, 5, 8, 13, 21, 34}) {
				t.Errorf("expected fibonacci registers, got %v", got)
			}
		})
	}
}
