// Package chip describes the AT24Cxx chip family and encodes bus addresses.
//
// # Chip Family
//
// The AT24Cxx family spans twelve parts from 1 Kbit to 2 Mbit. All parts
// share the 0b1010 device-address prefix and a paged write buffer, but they
// differ in page size, word-address width, and how many high address bits
// spill into the device-address byte:
//
//	Model     Capacity  Page  Word address        Folded bits
//	AT24C01      128 B     8  1 byte (A0-A6)      -
//	AT24C02      256 B     8  1 byte (A0-A7)      -
//	AT24C04      512 B    16  1 byte (A0-A7)      A8
//	AT24C08     1 KiB     16  1 byte (A0-A7)      A8 A9
//	AT24C16     2 KiB     16  1 byte (A0-A7)      A8 A9 A10
//	AT24C32     4 KiB     32  2 bytes (A0-A11)    -
//	AT24C64     8 KiB     32  2 bytes (A0-A12)    -
//	AT24C128   16 KiB     64  2 bytes (A0-A13)    -
//	AT24C256   32 KiB     64  2 bytes (A0-A14)    -
//	AT24C512   64 KiB    128  2 bytes (A0-A15)    -
//	AT24CM01  128 KiB    256  2 bytes (A0-A15)    A16
//	AT24CM02  256 KiB    256  2 bytes (A0-A15)    A16 A17
//
// Folded bits occupy the same device-address positions as the hardware
// address pins, so a folding model gives up one pin per folded bit.
//
// # Address Encoding
//
// Encode turns a linear byte offset into the device-address byte and word-
// address bytes for one transaction:
//
//	a := chip.Encode(chip.AT24C04, chip.DefaultBaseAddress, 0, 0x1A5)
//	// a.Device == 0x51 (A8 folded into bit 0)
//	// a.WordBytes() == []byte{0xA5}
//
// The encoding changes with the address, so callers re-encode before every
// transaction rather than caching the result.
package chip
