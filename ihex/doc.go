// Package ihex reads and writes Intel HEX images.
//
// # Format
//
// An Intel HEX file is a sequence of ASCII records:
//
//	:[ByteCount(2)][Address(4)][Type(2)][Data(2*N)][Checksum(2)]
//
// Example record:
//
//	:10010000214601360121470136007EFE09D2190140
//	  10   = 16 data bytes
//	  0100 = 16-bit offset 0x0100
//	  00   = data record
//	  ...  = data
//	  40   = checksum (record sums to zero)
//
// Data records carry a 16-bit offset; extended segment (type 02) and
// extended linear (type 04) records widen the address space beyond 64 KiB.
// Start-address records (types 03 and 05) are accepted and ignored, since
// an EEPROM image has no entry point.
//
// # Usage
//
// Parse an image from disk:
//
//	img, err := ihex.Parse("dump.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	addr, data, err := img.Flatten(0xFF)
//
// Write one out:
//
//	var buf bytes.Buffer
//	err := ihex.Encode(&buf, 0x100, data)
//
// # Error Handling
//
// Parse returns detailed errors for invalid files: malformed records with
// line numbers, checksum mismatches, invalid hex encoding, and records
// after the end-of-file marker.
package ihex
