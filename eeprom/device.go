package eeprom

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moffa90/go-at24cxx/bus"
	"github.com/moffa90/go-at24cxx/chip"
)

// Device drives one AT24Cxx chip through a bus.Transport. It translates
// linear byte-addressed operations into the chip's paged protocol: word
// addresses are re-encoded per transaction, writes are split at page
// boundaries, and every write transaction is followed by the chip's
// self-timed write cycle delay.
//
// Device is synchronous and not safe for concurrent use; callers must
// serialize access to a device instance.
type Device struct {
	transport bus.Transport
	model     chip.Model
	config    Config
}

// New creates a Device for the given chip model on the given transport.
//
// Example:
//
//	tr := bus.NewHardTransport(myController)
//	dev, err := eeprom.New(tr, chip.AT24C256,
//	    eeprom.WithHardwareAddress(0x1),
//	    eeprom.WithLogger(myLogger),
//	)
func New(t bus.Transport, model chip.Model, opts ...Option) (*Device, error) {
	if t == nil {
		panic("transport cannot be nil")
	}
	if !model.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, uint8(model))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Device{
		transport: t,
		model:     model,
		config:    cfg,
	}, nil
}

// Model returns the configured chip model.
func (d *Device) Model() chip.Model {
	return d.model
}

// encode computes the bus address for a transfer starting at addr. Folded
// device-address bits change with the address, so this runs before every
// transaction.
func (d *Device) encode(addr uint32) chip.Addr {
	return chip.Encode(d.model, d.config.BaseAddress, d.config.HardwareAddress, addr)
}

func (d *Device) checkRange(op string, addr uint32, size int) error {
	if size < 0 || uint64(addr)+uint64(size) > uint64(d.model.Capacity()) {
		return &RangeError{Op: op, Addr: addr, Size: size, Capacity: d.model.Capacity()}
	}
	return nil
}

// Read reads len(buf) bytes starting at addr. Reads are not paged: the
// chip's read pointer rolls over the whole array, so the request goes out
// as a single transaction.
func (d *Device) Read(ctx context.Context, addr uint32, buf []byte) error {
	if err := d.checkRange("read", addr, len(buf)); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := d.transport.ReadMem(d.encode(addr), buf); err != nil {
		return fmt.Errorf("read %d bytes at 0x%05X: %w", len(buf), addr, err)
	}

	d.logDebug("read", "addr", fmt.Sprintf("0x%05X", addr), "size", len(buf))
	return nil
}

// Write writes data starting at addr, splitting the transfer at page
// boundaries and waiting out the write cycle after each transaction.
//
// A failed chunk does not stop the remaining chunks; the returned error
// joins every chunk failure, so a nil return means every byte was
// transmitted and acknowledged.
func (d *Device) Write(ctx context.Context, addr uint32, data []byte) error {
	if err := d.checkRange("write", addr, len(data)); err != nil {
		return err
	}

	err := d.writeChunks(ctx, "write", addr, len(data), d.model.PageSize(),
		d.model.PageSize(), func(off, n int) []byte { return data[off : off+n] })
	if err != nil {
		return err
	}

	d.logDebug("write", "addr", fmt.Sprintf("0x%05X", addr), "size", len(data))
	return nil
}

// Erase fills size bytes starting at addr with the given fill byte. It uses
// the same splitting and timing discipline as Write, with the configured
// erase chunk size as an additional cap inside each page.
func (d *Device) Erase(ctx context.Context, addr uint32, fill byte, size int) error {
	if err := d.checkRange("erase", addr, size); err != nil {
		return err
	}

	maxChunk := d.config.EraseChunkSize
	if ps := d.model.PageSize(); maxChunk > ps {
		maxChunk = ps
	}
	fbuf := bytes.Repeat([]byte{fill}, maxChunk)

	err := d.writeChunks(ctx, "erase", addr, size, d.model.PageSize(),
		maxChunk, func(off, n int) []byte { return fbuf[:n] })
	if err != nil {
		return err
	}

	d.logDebug("erase",
		"addr", fmt.Sprintf("0x%05X", addr),
		"size", size,
		"fill", fmt.Sprintf("0x%02X", fill))
	return nil
}

// VerifiedWrite writes data and reads it back in fixed-size comparison
// windows. It returns a *VerifyError for the first mismatched byte, or the
// write/read error if the underlying transfer failed.
func (d *Device) VerifiedWrite(ctx context.Context, addr uint32, data []byte) error {
	if err := d.Write(ctx, addr, data); err != nil {
		return err
	}

	win := d.config.VerifyWindowSize
	cmp := make([]byte, win)
	for off := 0; off < len(data); off += win {
		n := win
		if rest := len(data) - off; n > rest {
			n = rest
		}

		if err := d.Read(ctx, addr+uint32(off), cmp[:n]); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if cmp[i] != data[off+i] {
				return &VerifyError{
					Addr: addr + uint32(off+i),
					Want: data[off+i],
					Got:  cmp[i],
				}
			}
		}
	}

	d.logDebug("verified write", "addr", fmt.Sprintf("0x%05X", addr), "size", len(data))
	return nil
}

// writeChunks runs the shared write loop: split, re-encode, transmit, wait
// out the write cycle, report progress. payload returns the bytes for the
// chunk at the given offset into the transfer.
//
// Chunk failures accumulate without aborting the loop. Context cancellation
// is the one early exit.
func (d *Device) writeChunks(ctx context.Context, op string, start uint32, size, pageSize, maxChunk int, payload func(off, n int) []byte) error {
	chunks := splitPages(start, size, pageSize, maxChunk)
	if len(chunks) == 0 {
		return nil
	}

	startTime := time.Now()
	done := 0
	var errs []error
	for i, c := range chunks {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		if err := d.transport.WriteMem(d.encode(c.addr), payload(int(c.addr-start), c.size)); err != nil {
			errs = append(errs, &ChunkError{Op: op, Addr: c.addr, Size: c.size, Err: err})
			d.logError("chunk failed",
				"op", op,
				"addr", fmt.Sprintf("0x%05X", c.addr),
				"size", c.size,
				"error", err)
		}

		// The chip ignores the bus while committing the page.
		if err := d.config.Sleep(ctx, d.config.WriteCycleTime); err != nil {
			errs = append(errs, err)
			break
		}

		done += c.size
		d.reportProgress(Progress{
			Op:           op,
			CurrentChunk: i + 1,
			TotalChunks:  len(chunks),
			BytesDone:    done,
			BytesTotal:   size,
			Percentage:   float64(done) / float64(size) * 100,
			Elapsed:      time.Since(startTime),
		})
	}

	return errors.Join(errs...)
}

// reportProgress calls the progress callback if configured.
func (d *Device) reportProgress(progress Progress) {
	if d.config.ProgressCallback != nil {
		d.config.ProgressCallback(progress)
	}
}

// logDebug logs a debug message if a logger is configured.
func (d *Device) logDebug(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (d *Device) logError(msg string, keysAndValues ...interface{}) {
	if d.config.Logger != nil {
		d.config.Logger.Error(msg, keysAndValues...)
	}
}
