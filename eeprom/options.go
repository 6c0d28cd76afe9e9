package eeprom

import (
	"context"
	"time"

	"github.com/moffa90/go-at24cxx/chip"
)

// Config holds the device configuration.
type Config struct {
	// BaseAddress is the 7-bit device base address.
	BaseAddress byte

	// HardwareAddress is the value of the chip's A2..A0 address pins.
	HardwareAddress byte

	// WriteCycleTime is how long to wait after each write transaction for
	// the chip's self-timed write cycle.
	WriteCycleTime time.Duration

	// Sleep blocks for the given duration. Replaceable so tests can run
	// without real delays.
	Sleep func(ctx context.Context, d time.Duration) error

	// EraseChunkSize caps the fill buffer used by Erase. Erase chunks are
	// additionally capped at the chip's page size.
	EraseChunkSize int

	// VerifyWindowSize is the read-back comparison window used by
	// VerifiedWrite.
	VerifyWindowSize int

	// ProgressCallback is called during chunked operations to report
	// progress (optional).
	ProgressCallback ProgressCallback

	// Logger is used for logging operations (optional).
	Logger Logger
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		BaseAddress:      chip.DefaultBaseAddress,
		WriteCycleTime:   5 * time.Millisecond, // datasheet tWR maximum
		Sleep:            sleep,
		EraseChunkSize:   10,
		VerifyWindowSize: 10,
	}
}

// sleep is the default Sleep implementation. It honors context
// cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Option is a functional option for configuring the Device.
type Option func(*Config)

// WithBaseAddress sets the 7-bit device base address. The default is
// chip.DefaultBaseAddress (0x50). The low three bits belong to the hardware
// address pins and are ignored here; see WithHardwareAddress.
//
// Example:
//
//	dev, err := eeprom.New(t, chip.AT24C256, eeprom.WithBaseAddress(0x48))
func WithBaseAddress(addr byte) Option {
	return func(c *Config) {
		c.BaseAddress = addr & 0x7F
	}
}

// WithHardwareAddress sets the value of the chip's A2..A0 address pins.
// Only the low three bits are used. On models that fold word-address bits
// into the device address, the folded bits win over the corresponding pins.
//
// Example:
//
//	dev, err := eeprom.New(t, chip.AT24C02, eeprom.WithHardwareAddress(0x3))
func WithHardwareAddress(pins byte) Option {
	return func(c *Config) {
		c.HardwareAddress = pins & 0x07
	}
}

// WithWriteCycleTime sets the delay observed after every write transaction
// while the chip commits the page. The default is the datasheet maximum of
// 5 ms.
//
// Example:
//
//	dev, err := eeprom.New(t, chip.AT24C64, eeprom.WithWriteCycleTime(2*time.Millisecond))
func WithWriteCycleTime(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.WriteCycleTime = d
		}
	}
}

// WithSleep replaces the blocking delay used for the write cycle. Tests use
// this to avoid real time delays.
//
// Example:
//
//	dev, err := eeprom.New(t, chip.AT24C64,
//	    eeprom.WithSleep(func(ctx context.Context, d time.Duration) error { return nil }),
//	)
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Config) {
		if fn != nil {
			c.Sleep = fn
		}
	}
}

// WithEraseChunkSize caps the size of the fill buffer Erase writes per
// transaction. Values below 1 are ignored; the chip's page size is always
// an upper bound. The default is 10 bytes.
func WithEraseChunkSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.EraseChunkSize = n
		}
	}
}

// WithVerifyWindowSize sets the comparison window used by VerifiedWrite.
// Values below 1 are ignored. The default is 10 bytes.
func WithVerifyWindowSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.VerifyWindowSize = n
		}
	}
}

// WithProgressCallback sets a callback invoked after each chunk of a
// chunked operation.
//
// Example:
//
//	dev, err := eeprom.New(t, chip.AT24C512,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("%s %.1f%%\n", p.Op, p.Percentage)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets a logger for device operations.
//
// Example:
//
//	dev, err := eeprom.New(t, chip.AT24C512, eeprom.WithLogger(myLogger))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}
