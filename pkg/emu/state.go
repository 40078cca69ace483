// Package emu provides the save state file format. A save state is the
// serialized types.State of a GameBoy, compressed with brotli and bound
// to the cartridge it was taken from.
package emu

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"github.com/andybalholm/brotli"
	"github.com/pkg/errors"

	"github.com/thelolagemann/gbcore/internal/types"
)

// magic identifies a save state file.
var magic = [4]byte{'G', 'B', 'S', 'S'}

// version is bumped whenever the layout of types.State changes.
const version uint8 = 1

var (
	// ErrNotState is returned when a file is not a save state.
	ErrNotState = errors.New("emu: not a save state")
	// ErrVersion is returned for save states written by an incompatible
	// version.
	ErrVersion = errors.New("emu: unsupported save state version")
	// ErrStateMismatch is returned when a save state was taken from a
	// different cartridge.
	ErrStateMismatch = errors.New("emu: save state belongs to a different cartridge")
)

// header precedes the compressed state.
type header struct {
	Magic       [4]byte
	Version     uint8
	Fingerprint uint64
}

// Encode writes s to w, bound to the cartridge with the given fingerprint.
func Encode(w io.Writer, fingerprint uint64, s *types.State) error {
	h := header{Magic: magic, Version: version, Fingerprint: fingerprint}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return errors.Wrap(err, "writing header")
	}

	bw := brotli.NewWriterLevel(w, brotli.BestCompression)
	if _, err := bw.Write(s.Bytes()); err != nil {
		return errors.Wrap(err, "compressing state")
	}
	return errors.Wrap(bw.Close(), "compressing state")
}

// Decode reads a save state from r, checking that it was taken from the
// cartridge with the given fingerprint.
func Decode(r io.Reader, fingerprint uint64) (*types.State, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrNotState
		}
		return nil, errors.Wrap(err, "reading header")
	}
	if h.Magic != magic {
		return nil, ErrNotState
	}
	if h.Version != version {
		return nil, errors.Wrapf(ErrVersion, "version %d", h.Version)
	}
	if h.Fingerprint != fingerprint {
		return nil, errors.Wrapf(ErrStateMismatch, "expected %016x, got %016x", fingerprint, h.Fingerprint)
	}

	raw, err := io.ReadAll(brotli.NewReader(r))
	if err != nil {
		return nil, errors.Wrap(err, "decompressing state")
	}
	return types.StateFromBytes(raw), nil
}

// SaveState writes s to the file at path. The state is written to a
// temporary file first, which then replaces path, so an interrupted
// save never corrupts an existing one.
func SaveState(path string, fingerprint uint64, s *types.State) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(err, "creating save state")
	}
	defer os.Remove(f.Name())

	w := bufio.NewWriter(f)
	if err := Encode(w, fingerprint, s); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return errors.Wrap(err, "writing save state")
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(err, "writing save state")
	}
	return errors.Wrap(os.Rename(f.Name(), path), "replacing save state")
}

// LoadState reads the save state at path.
func LoadState(path string, fingerprint uint64) (*types.State, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading save state")
	}
	s, err := Decode(bytes.NewReader(b), fingerprint)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return s, nil
}
