package eeprom

import (
	"errors"
	"fmt"
)

// ErrUnknownModel indicates that New was given a chip model outside the
// supported family. The driver refuses to guess an addressing scheme for an
// unknown part.
var ErrUnknownModel = errors.New("unknown chip model")

// RangeError indicates that an operation would run past the end of the
// memory array.
type RangeError struct {
	Op       string
	Addr     uint32
	Size     int
	Capacity int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s of %d bytes at 0x%05X exceeds %d byte capacity",
		e.Op, e.Size, e.Addr, e.Capacity)
}

// VerifyError indicates that a verified write read back a byte that does
// not match what was written.
type VerifyError struct {
	// Addr is the absolute address of the first mismatched byte.
	Addr uint32

	// Want is the byte that was written, Got the byte read back.
	Want byte
	Got  byte
}

func (e *VerifyError) Error() string {
	return fmt.Sprintf("readback mismatch at 0x%05X: wrote 0x%02X, read 0x%02X",
		e.Addr, e.Want, e.Got)
}

// ChunkError wraps a transport failure for one chunk of a split transfer.
// A single Write or Erase error may join several of these, since the chunk
// loop keeps going after a failure.
type ChunkError struct {
	Op   string
	Addr uint32
	Size int
	Err  error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("%s chunk of %d bytes at 0x%05X: %v", e.Op, e.Size, e.Addr, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}
