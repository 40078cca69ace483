// Package cheats implements Game Genie and GameShark codes. Game Genie
// codes patch reads from cartridge ROM, GameShark codes write RAM once
// per frame.
package cheats

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidCode is returned for codes that can't be parsed.
var ErrInvalidCode = errors.New("cheats: invalid code")

// Cheat is a named group of codes.
type Cheat struct {
	Name  string
	Codes []string
}

// Parse reads a cheat list from r, loading its codes into genie and
// shark. The format is as follows:
//
//	# Infinite Lives
//	01FF16D0
//	# Level Select
//	00A-17B-C49
//
// Codes before the first name are grouped under an empty name. Blank
// lines are ignored.
func Parse(r io.Reader, genie *GameGenie, shark *GameShark) ([]Cheat, error) {
	var cheats []Cheat
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			cheats = append(cheats, Cheat{Name: strings.TrimSpace(line[1:])})
			continue
		}
		if len(cheats) == 0 {
			cheats = append(cheats, Cheat{})
		}
		current := &cheats[len(cheats)-1]

		var err error
		if strings.Contains(line, "-") {
			err = genie.Load(line, current.Name)
		} else {
			err = shark.Load(line, current.Name)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		current.Codes = append(current.Codes, line)
	}
	return cheats, errors.Wrap(scanner.Err(), "reading cheats")
}

// ParseFile parses the cheat list in the named file.
func ParseFile(filename string, genie *GameGenie, shark *GameShark) ([]Cheat, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, errors.Wrap(err, "opening cheats")
	}
	defer f.Close()
	return Parse(f, genie, shark)
}
