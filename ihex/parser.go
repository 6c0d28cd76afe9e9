package ihex

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record types defined by the Intel HEX format.
const (
	// RecordData carries data bytes at a 16-bit offset
	RecordData = 0x00

	// RecordEOF terminates the file
	RecordEOF = 0x01

	// RecordExtSegment sets bits 4-19 of the base address
	RecordExtSegment = 0x02

	// RecordStartSegment holds a CS:IP start address (ignored)
	RecordStartSegment = 0x03

	// RecordExtLinear sets the upper 16 bits of the base address
	RecordExtLinear = 0x04

	// RecordStartLinear holds a 32-bit start address (ignored)
	RecordStartLinear = 0x05
)

// MinRecordLength is the minimum record length in hex characters:
// count(2) + address(4) + type(2) + checksum(2), after the ':'.
const MinRecordLength = 10

// Parse parses an Intel HEX file from the given file path.
//
// Example:
//
//	img, err := ihex.Parse("dump.hex")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range img.Chunks {
//	    fmt.Printf("0x%05X: %d bytes\n", c.Addr, len(c.Data))
//	}
func Parse(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ParseReader(f)
}

// ParseReader parses an Intel HEX image from any io.Reader.
func ParseReader(r io.Reader) (*Image, error) {
	img := &Image{}
	scanner := bufio.NewScanner(r)

	var base uint32
	lineNum := 0
	sawEOF := false
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if sawEOF {
			return nil, fmt.Errorf("line %d: record after end-of-file record", lineNum)
		}

		count, addr, typ, data, err := parseRecord(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		switch typ {
		case RecordData:
			img.add(base+uint32(addr), data)
		case RecordEOF:
			if count != 0 {
				return nil, fmt.Errorf("line %d: end-of-file record with %d data bytes", lineNum, count)
			}
			sawEOF = true
		case RecordExtSegment:
			if count != 2 {
				return nil, fmt.Errorf("line %d: extended segment record with %d data bytes", lineNum, count)
			}
			base = uint32(data[0])<<12 | uint32(data[1])<<4
		case RecordExtLinear:
			if count != 2 {
				return nil, fmt.Errorf("line %d: extended linear record with %d data bytes", lineNum, count)
			}
			base = uint32(data[0])<<24 | uint32(data[1])<<16
		case RecordStartSegment, RecordStartLinear:
			// Start addresses are meaningless for an EEPROM image.
		default:
			return nil, fmt.Errorf("line %d: unknown record type 0x%02X", lineNum, typ)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if !sawEOF {
		return nil, fmt.Errorf("missing end-of-file record")
	}
	if len(img.Chunks) == 0 {
		return nil, fmt.Errorf("no data records found")
	}

	return img, nil
}

// parseRecord parses one record line.
//
// Record format (hex characters after the leading ':'):
//
//	[ByteCount(2)][Address(4)][Type(2)][Data(2*N)][Checksum(2)]
//
// The checksum byte makes the whole record sum to zero modulo 256.
func parseRecord(line string) (count int, addr uint16, typ byte, data []byte, err error) {
	if line[0] != ':' {
		return 0, 0, 0, nil, fmt.Errorf("record must start with ':'")
	}
	line = line[1:]

	if len(line) < MinRecordLength {
		return 0, 0, 0, nil, fmt.Errorf("record too short: got %d characters, minimum is %d",
			len(line), MinRecordLength)
	}

	raw, err := hex.DecodeString(line)
	if err != nil {
		return 0, 0, 0, nil, fmt.Errorf("invalid hex data: %w", err)
	}

	count = int(raw[0])
	addr = uint16(raw[1])<<8 | uint16(raw[2]) // big-endian
	typ = raw[3]

	if len(raw) != 5+count {
		return 0, 0, 0, nil, fmt.Errorf("length mismatch: got %d bytes, expected %d (count=%d)",
			len(raw), 5+count, count)
	}

	var sum byte
	for _, b := range raw {
		sum += b
	}
	if sum != 0 {
		return 0, 0, 0, nil, fmt.Errorf("checksum mismatch: record sums to 0x%02X, want 0x00", sum)
	}

	return count, addr, typ, raw[4 : 4+count], nil
}

// checksum returns the Intel HEX checksum for the given record bytes:
// the two's complement of their sum.
func checksum(raw []byte) byte {
	var sum byte
	for _, b := range raw {
		sum += b
	}
	return ^sum + 1
}
