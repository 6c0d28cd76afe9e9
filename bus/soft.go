package bus

import (
	"errors"
	"fmt"

	"github.com/moffa90/go-at24cxx/chip"
)

// SoftTransport adapts a bit-level Primitive controller to Transport,
// emitting the AT24Cxx transaction sequences step by step.
//
// A failed step does not abort the transaction: remaining steps still run
// and all step errors are joined into the returned error. The bus therefore
// always ends in a defined state (stop condition asserted), and the caller
// still learns that something failed.
type SoftTransport struct {
	Bus Primitive
}

// NewSoftTransport returns a Transport driving the given bit-level
// controller.
func NewSoftTransport(p Primitive) *SoftTransport {
	if p == nil {
		panic("primitive bus cannot be nil")
	}
	return &SoftTransport{Bus: p}
}

// WriteMem issues a single write transaction:
//
//	START, device byte (W), word-address byte(s), data bytes, STOP
func (t *SoftTransport) WriteMem(addr chip.Addr, data []byte) error {
	var errs []error

	errs = step(errs, "start", t.Bus.Start())
	errs = step(errs, "device address", t.Bus.WriteByte(addr.Device<<1))
	for _, b := range addr.WordBytes() {
		errs = step(errs, "word address", t.Bus.WriteByte(b))
	}
	for i, b := range data {
		if err := t.Bus.WriteByte(b); err != nil {
			errs = append(errs, fmt.Errorf("data byte %d: %w", i, err))
		}
	}
	errs = step(errs, "stop", t.Bus.Stop())

	return errors.Join(errs...)
}

// ReadMem sets the chip's internal pointer with a write-phase transaction,
// then re-addresses the device in read mode and clocks the data out:
//
//	START, device byte (W), word-address byte(s),
//	START, device byte (R), data bytes (ACK all but the last), STOP
func (t *SoftTransport) ReadMem(addr chip.Addr, buf []byte) error {
	var errs []error

	errs = step(errs, "start", t.Bus.Start())
	errs = step(errs, "device address", t.Bus.WriteByte(addr.Device<<1))
	for _, b := range addr.WordBytes() {
		errs = step(errs, "word address", t.Bus.WriteByte(b))
	}

	errs = step(errs, "repeated start", t.Bus.Start())
	errs = step(errs, "device address (read)", t.Bus.WriteByte(addr.Device<<1|1))

	for i := range buf {
		b, err := t.Bus.ReadByte(i != len(buf)-1)
		if err != nil {
			errs = append(errs, fmt.Errorf("data byte %d: %w", i, err))
			continue
		}
		buf[i] = b
	}

	errs = step(errs, "stop", t.Bus.Stop())

	return errors.Join(errs...)
}

func step(errs []error, name string, err error) []error {
	if err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return errs
}
