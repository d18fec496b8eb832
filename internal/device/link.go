// Package device talks to the lock controller over a serial port.
//
// The protocol is one-way: on an access grant the application writes a fixed
// command token and never reads a response. The port is an exclusively owned
// resource, opened when scanning starts and closed when it stops.
package device

import (
	"fmt"
	"io"

	"go.bug.st/serial"
)

// DefaultBaud matches the ESP firmware's serial console speed.
const DefaultBaud = 115200

// unlockCommand is the literal token the firmware acts on.
const unlockCommand = "open\n"

// Link is a connection that can actuate the lock.
type Link interface {
	// Unlock asks the controller to open the lock. No acknowledgement is
	// read back; an error only means the write itself failed.
	Unlock() error

	Close() error
}

// SerialLink is a Link over a serial port.
type SerialLink struct {
	port io.WriteCloser
	name string
}

// Dial opens the named serial port at the given baud rate (8N1).
func Dial(name string, baud int) (*SerialLink, error) {
	if name == "" {
		return nil, fmt.Errorf("no serial port configured")
	}
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	return &SerialLink{port: port, name: name}, nil
}

// NewSerialLink wraps an already-open port. Used by tests to substitute an
// in-memory writer for hardware.
func NewSerialLink(port io.WriteCloser, name string) *SerialLink {
	return &SerialLink{port: port, name: name}
}

// Name returns the port name the link was opened on.
func (l *SerialLink) Name() string {
	return l.name
}

func (l *SerialLink) Unlock() error {
	if _, err := io.WriteString(l.port, unlockCommand); err != nil {
		return fmt.Errorf("write unlock to %s: %w", l.name, err)
	}
	return nil
}

func (l *SerialLink) Close() error {
	return l.port.Close()
}
