package bus

import "github.com/moffa90/go-at24cxx/chip"

// Transport is the capability the eeprom driver needs from an I2C bus: one
// addressed memory read or write per call. The two implementations in this
// package adapt the two common controller shapes to it.
type Transport interface {
	// ReadMem sets the chip's internal pointer to the encoded address and
	// reads len(buf) bytes from it.
	ReadMem(addr chip.Addr, buf []byte) error

	// WriteMem writes data starting at the encoded address. Callers must
	// keep data within a single chip page.
	WriteMem(addr chip.Addr, data []byte) error
}

// Primitive is a bit-level I2C controller, typically a bit-banged pair of
// GPIO lines. Each method performs one bus step and reports whether the
// chip acknowledged it.
type Primitive interface {
	// Start asserts a start (or repeated start) condition.
	Start() error

	// Stop asserts a stop condition.
	Stop() error

	// WriteByte clocks out one byte and samples the chip's ACK.
	WriteByte(b byte) error

	// ReadByte clocks in one byte. ack selects whether the controller
	// acknowledges it; the final byte of a read must not be acknowledged.
	ReadByte(ack bool) (byte, error)
}

// Messenger is a message-level I2C controller, such as a Linux i2c-dev
// handle or a USB bridge chip. Each call is one complete addressed
// transaction with start and stop handled by the controller.
type Messenger interface {
	// Tx writes w to the device at the given 7-bit address.
	Tx(addr byte, w []byte) error

	// Rx reads len(r) bytes from the device at the given 7-bit address.
	Rx(addr byte, r []byte) error
}
