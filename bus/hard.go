package bus

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-at24cxx/chip"
)

// HardTransport adapts a message-level Messenger controller to Transport.
// The controller frames start/stop itself; this adapter only assembles the
// word-address prefix.
type HardTransport struct {
	Bus Messenger
}

// NewHardTransport returns a Transport driving the given message-level
// controller.
func NewHardTransport(m Messenger) *HardTransport {
	if m == nil {
		panic("messenger bus cannot be nil")
	}
	return &HardTransport{Bus: m}
}

// WriteMem sends the word-address bytes and the payload as one write
// message.
func (t *HardTransport) WriteMem(addr chip.Addr, data []byte) error {
	msg := make([]byte, 0, int(addr.Width)+len(data))
	msg = append(msg, addr.WordBytes()...)
	msg = append(msg, data...)

	if err := t.Bus.Tx(addr.Device, msg); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	return nil
}

// ReadMem sets the chip's internal pointer with a write message carrying
// only the word-address bytes, then reads the data back. A failed pointer
// set does not skip the read; both errors are reported together.
func (t *HardTransport) ReadMem(addr chip.Addr, buf []byte) error {
	var errs []error

	if err := t.Bus.Tx(addr.Device, addr.WordBytes()); err != nil {
		errs = append(errs, fmt.Errorf("set pointer: %w", err))
	}
	if err := t.Bus.Rx(addr.Device, buf); err != nil {
		errs = append(errs, fmt.Errorf("read message: %w", err))
	}

	return errors.Join(errs...)
}
