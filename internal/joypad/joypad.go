// Package joypad provides an implementation of the Game Boy
// joypad. The joypad is used to read the state of the buttons
// and the direction keys.
package joypad

import (
	"fmt"

	"github.com/thelolagemann/gbcore/internal/interrupts"
	"github.com/thelolagemann/gbcore/internal/types"
)

// Button represents a physical button on the Game Boy.
type Button = uint8

const (
	// ButtonA is the A button.
	ButtonA Button = iota
	// ButtonB is the B button.
	ButtonB
	// ButtonSelect is the Select button.
	ButtonSelect
	// ButtonStart is the Start button.
	ButtonStart
	// ButtonRight is the Right button.
	ButtonRight
	// ButtonLeft is the Left button.
	ButtonLeft
	// ButtonUp is the Up button.
	ButtonUp
	// ButtonDown is the Down button.
	ButtonDown
)

// State represents the state of the joypad. Select either
// action or direction buttons by writing to the register,
// and then read out bits 0-3 to get the state of the buttons.
//
//	Bit 7 - Not used
//	Bit 6 - Not used
//	Bit 5 - P15 Select Button Keys      (0=Select)
//	Bit 4 - P14 Select Direction Keys   (0=Select)
//	Bit 3 - P13 Input Down  or Start    (0=Pressed) (Read Only)
//	Bit 2 - P12 Input Up    or Select   (0=Pressed) (Read Only)
//	Bit 1 - P11 Input Left  or Button B (0=Pressed) (Read Only)
//	Bit 0 - P10 Input Right or Button A (0=Pressed) (Read Only)
type State struct {
	// State is the current state of the joypad. The lower 4 bits
	// hold the action buttons, and the upper 4 bits the direction
	// buttons. A 1 in a bit indicates that the button is pressed.
	State Button
	// selection holds bits 4-5 of P1.
	selection uint8

	irq interrupts.Requester
}

// New returns a new joypad state with every button released.
func New(irq interrupts.Requester) *State {
	return &State{
		selection: 0x30,
		irq:       irq,
	}
}

// Press presses a button.
func (s *State) Press(button Button) {
	if s.State&(types.Bit0<<button) == 0 {
		s.irq.Request(interrupts.Joypad)
	}
	s.State |= types.Bit0 << button
}

// Release releases a button.
func (s *State) Release(button Button) {
	s.State &^= types.Bit0 << button
}

// Read returns the value of P1.
func (s *State) Read(address uint16) uint8 {
	if address != types.P1 {
		panic(fmt.Sprintf("joypad: illegal read from 0x%04X", address))
	}

	d := uint8(0xC0) | s.selection
	var pressed uint8
	if s.selection&types.Bit4 == 0 {
		pressed |= s.State >> 4 & 0xF
	}
	if s.selection&types.Bit5 == 0 {
		pressed |= s.State & 0xF
	}
	return d | (pressed ^ 0xF)
}

// Write selects which half of the buttons is read back.
func (s *State) Write(address uint16, value uint8) {
	if address != types.P1 {
		panic(fmt.Sprintf("joypad: illegal write to 0x%04X", address))
	}
	s.selection = value & 0x30
}

var _ types.Stater = (*State)(nil)

func (s *State) Load(st *types.State) {
	s.State = st.Read8()
	s.selection = st.Read8() & 0x30
}

func (s *State) Save(st *types.State) {
	st.Write8(s.State)
	st.Write8(s.selection)
}
