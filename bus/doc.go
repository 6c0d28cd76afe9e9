// Package bus defines the transport layer between the eeprom driver and an
// I2C controller.
//
// The driver itself only speaks Transport: addressed whole-buffer memory
// reads and writes. Two adapters map the common controller shapes onto it:
//
//   - SoftTransport drives a Primitive (bit-level start/stop/byte
//     operations, e.g. bit-banged GPIO), emitting the raw AT24Cxx
//     transaction sequences itself.
//   - HardTransport drives a Messenger (message-level controllers like
//     Linux i2c-dev or USB bridge chips) that frame transactions on their
//     own.
//
// Pick whichever matches the hardware at configuration time and hand it to
// eeprom.New; the driver does not care which one it got.
//
// Both adapters accumulate step failures and keep going rather than
// aborting a transaction halfway, so a single error return may wrap several
// failed steps.
package bus
