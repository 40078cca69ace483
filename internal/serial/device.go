package serial

// Device is a device that can be attached to the Controller, the other
// end of the link cable.
type Device interface {
	Receive(bool)
	Send() bool
}

// nullDevice is an implementation of Device that
// simply returns true on Send and does nothing on
// Receive. This is most commonly used for when no
// device is attached to the Controller.
type nullDevice struct{}

// Receive does nothing.
func (n nullDevice) Receive(bool) {}

// Send always returns true, the line is pulled high
// when nothing is plugged in.
func (n nullDevice) Send() bool { return true }
