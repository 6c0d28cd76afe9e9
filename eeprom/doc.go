// Package eeprom provides a driver for AT24Cxx family serial EEPROMs.
//
// # Overview
//
// The driver exposes linear byte-addressed operations and handles the
// chip's paged protocol underneath:
//   - Re-encoding the device and word address before every transaction
//   - Splitting writes at page boundaries
//   - Waiting out the chip's self-timed write cycle after each write
//   - Erasing by writing a fill byte
//   - Verifying writes with a chunked read-back comparison
//
// # Basic Usage
//
//	// User provides the bus controller (bus.Primitive or bus.Messenger)
//	tr := bus.NewHardTransport(myController)
//
//	dev, err := eeprom.New(tr, chip.AT24C256)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := dev.Write(context.Background(), 0x100, data); err != nil {
//	    log.Fatal(err)
//	}
//
//	buf := make([]byte, len(data))
//	if err := dev.Read(context.Background(), 0x100, buf); err != nil {
//	    log.Fatal(err)
//	}
//
// # Configuration Options
//
// Customize behavior with functional options:
//
//	dev, err := eeprom.New(tr, chip.AT24C64,
//	    eeprom.WithBaseAddress(0x48),
//	    eeprom.WithHardwareAddress(0x3),
//	    eeprom.WithWriteCycleTime(5*time.Millisecond),
//	    eeprom.WithProgressCallback(progressFunc),
//	    eeprom.WithLogger(myLogger),
//	)
//
// # Error Handling
//
// A nil return means every bus step succeeded. Failed steps do not abort an
// operation: the remaining chunks still run and all failures come back
// joined in one error. Structured error types:
//   - RangeError: operation runs past the end of the array
//   - ChunkError: transport failure for one chunk of a split transfer
//   - VerifyError: read-back mismatch after a verified write
//   - ErrUnknownModel: New was given an unsupported chip model
//
// # Concurrency
//
// A Device is fully synchronous and not safe for concurrent use. The write
// cycle delay blocks the calling goroutine; pass a context to bound or
// cancel long operations.
package eeprom
