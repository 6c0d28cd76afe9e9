package bridge

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// Protocol command bytes understood by the adapter firmware.
const (
	cmdEcho  = 'e' // echo one byte back
	cmdStart = 's' // start condition + address byte, replies with ACK status
	cmdStop  = 'p' // stop condition, no reply

	cmdWrite     = 0xC0 // +N-1: write N bytes, replies with ACK status
	cmdReadACK   = 0xA0 // +N-1: read N bytes, acknowledge all
	cmdReadFinal = 0x80 // +N-1: read N bytes, no acknowledge on the last

	// maxTransfer is the largest byte count one command can carry; it
	// keeps the three command ranges from overlapping.
	maxTransfer = 32

	// ackBit is set in a status reply when the chip acknowledged.
	ackBit = 0x01
)

// ErrNack indicates the chip did not acknowledge an address or data byte.
var ErrNack = errors.New("device did not acknowledge")

// I2CDriver talks to an I2CDriver-style USB-to-I2C adapter over its serial
// protocol and exposes the port as a message-level bus.Messenger.
//
// An I2CDriver is not safe for concurrent use.
type I2CDriver struct {
	port io.ReadWriteCloser
}

// Open opens the adapter on the named serial port and pings it.
//
// Example:
//
//	d, err := bridge.Open("/dev/ttyUSB0")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//	dev, err := eeprom.New(bus.NewHardTransport(d), chip.AT24C256)
func Open(portName string) (*I2CDriver, error) {
	p, err := serial.Open(portName, &serial.Mode{BaudRate: 1000000})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}
	if err := p.SetReadTimeout(time.Second); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}

	d := New(p)
	if err := d.Ping(); err != nil {
		_ = p.Close()
		return nil, fmt.Errorf("no adapter on %s: %w", portName, err)
	}
	return d, nil
}

// New wraps an already-open port. Useful for tests and for transports other
// than a local serial device.
func New(rw io.ReadWriteCloser) *I2CDriver {
	if rw == nil {
		panic("port cannot be nil")
	}
	return &I2CDriver{port: rw}
}

// Close releases the serial port.
func (d *I2CDriver) Close() error {
	return d.port.Close()
}

// Ping verifies the adapter responds by echoing a byte through it.
func (d *I2CDriver) Ping() error {
	const probe = 0x5A
	if _, err := d.port.Write([]byte{cmdEcho, probe}); err != nil {
		return fmt.Errorf("echo: %w", err)
	}
	var reply [1]byte
	if _, err := io.ReadFull(d.port, reply[:]); err != nil {
		return fmt.Errorf("echo reply: %w", err)
	}
	if reply[0] != probe {
		return fmt.Errorf("echo reply 0x%02X, want 0x%02X", reply[0], probe)
	}
	return nil
}

// Tx writes w to the device at the given 7-bit address as one transaction.
// A rejected step does not skip the stop condition, so the bus is released
// even on failure.
func (d *I2CDriver) Tx(addr byte, w []byte) error {
	var errs []error

	if err := d.start(addr, false); err != nil {
		errs = append(errs, err)
	} else {
		for len(w) > 0 {
			n := len(w)
			if n > maxTransfer {
				n = maxTransfer
			}
			if err := d.write(w[:n]); err != nil {
				errs = append(errs, err)
				break
			}
			w = w[n:]
		}
	}

	if err := d.stop(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Rx reads len(r) bytes from the device at the given 7-bit address as one
// transaction. The final byte is not acknowledged, per the bus protocol's
// end-of-read signal.
func (d *I2CDriver) Rx(addr byte, r []byte) error {
	if len(r) == 0 {
		return nil
	}

	var errs []error
	if err := d.start(addr, true); err != nil {
		errs = append(errs, err)
	} else {
		for len(r) > 0 {
			n := len(r)
			if n > maxTransfer {
				n = maxTransfer
			}
			final := n == len(r)
			if err := d.read(r[:n], final); err != nil {
				errs = append(errs, err)
				break
			}
			r = r[n:]
		}
	}

	if err := d.stop(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// start asserts a start condition and addresses the device.
func (d *I2CDriver) start(addr byte, read bool) error {
	b := addr << 1
	if read {
		b |= 1
	}
	if _, err := d.port.Write([]byte{cmdStart, b}); err != nil {
		return fmt.Errorf("start: %w", err)
	}

	var status [1]byte
	if _, err := io.ReadFull(d.port, status[:]); err != nil {
		return fmt.Errorf("start status: %w", err)
	}
	if status[0]&ackBit == 0 {
		return fmt.Errorf("address 0x%02X: %w", addr, ErrNack)
	}
	return nil
}

// stop releases the bus.
func (d *I2CDriver) stop() error {
	if _, err := d.port.Write([]byte{cmdStop}); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// write sends up to maxTransfer bytes within an open transaction.
func (d *I2CDriver) write(data []byte) error {
	cmd := make([]byte, 0, 1+len(data))
	cmd = append(cmd, byte(cmdWrite+len(data)-1))
	cmd = append(cmd, data...)
	if _, err := d.port.Write(cmd); err != nil {
		return fmt.Errorf("write %d bytes: %w", len(data), err)
	}

	var status [1]byte
	if _, err := io.ReadFull(d.port, status[:]); err != nil {
		return fmt.Errorf("write status: %w", err)
	}
	if status[0]&ackBit == 0 {
		return fmt.Errorf("write %d bytes: %w", len(data), ErrNack)
	}
	return nil
}

// read clocks in up to maxTransfer bytes within an open transaction.
// final selects the no-acknowledge variant for the last group.
func (d *I2CDriver) read(buf []byte, final bool) error {
	cmd := cmdReadACK
	if final {
		cmd = cmdReadFinal
	}
	if _, err := d.port.Write([]byte{byte(cmd + len(buf) - 1)}); err != nil {
		return fmt.Errorf("read command: %w", err)
	}
	if _, err := io.ReadFull(d.port, buf); err != nil {
		return fmt.Errorf("read %d bytes: %w", len(buf), err)
	}
	return nil
}
