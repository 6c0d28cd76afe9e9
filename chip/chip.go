package chip

import "fmt"

// Model identifies a specific AT24Cxx part number.
type Model uint8

// Supported AT24Cxx chip models, from 1 Kbit (AT24C01) to 2 Mbit (AT24CM02).
const (
	AT24C01 Model = iota + 1
	AT24C02
	AT24C04
	AT24C08
	AT24C16
	AT24C32
	AT24C64
	AT24C128
	AT24C256
	AT24C512
	AT24CM01
	AT24CM02
)

// DefaultBaseAddress is the 7-bit I2C device address shared by the whole
// family when all hardware address pins are tied low (0b1010000).
const DefaultBaseAddress = 0x50

// spec holds the per-model addressing parameters.
//
//	pageSize:  the chip's internal write buffer size in bytes
//	capacity:  total byte capacity of the array
//	addrBytes: word-address width on the wire (1 or 2 bytes)
//	foldBits:  how many word-address bits beyond the wire width are folded
//	           into the low bits of the device-address byte
type spec struct {
	name      string
	pageSize  int
	capacity  int
	addrBytes uint8
	foldBits  uint8
}

// Per-model parameter table, per the AT24Cxx datasheet family overview.
// Indexed by Model; entry zero is unused.
var specs = [...]spec{
	AT24C01:  {"AT24C01", 8, 128, 1, 0},
	AT24C02:  {"AT24C02", 8, 256, 1, 0},
	AT24C04:  {"AT24C04", 16, 512, 1, 1},
	AT24C08:  {"AT24C08", 16, 1024, 1, 2},
	AT24C16:  {"AT24C16", 16, 2048, 1, 3},
	AT24C32:  {"AT24C32", 32, 4096, 2, 0},
	AT24C64:  {"AT24C64", 32, 8192, 2, 0},
	AT24C128: {"AT24C128", 64, 16384, 2, 0},
	AT24C256: {"AT24C256", 64, 32768, 2, 0},
	AT24C512: {"AT24C512", 128, 65536, 2, 0},
	AT24CM01: {"AT24CM01", 256, 131072, 2, 1},
	AT24CM02: {"AT24CM02", 256, 262144, 2, 2},
}

// Valid reports whether m is a known chip model.
func (m Model) Valid() bool {
	return m >= AT24C01 && m <= AT24CM02
}

func (m Model) spec() spec {
	if !m.Valid() {
		return spec{name: fmt.Sprintf("Model(%d)", uint8(m))}
	}
	return specs[m]
}

// String returns the part number, e.g. "AT24C256".
func (m Model) String() string {
	return m.spec().name
}

// PageSize returns the chip's write page size in bytes.
// A single write transaction must not span two pages.
func (m Model) PageSize() int {
	return m.spec().pageSize
}

// Capacity returns the total byte capacity of the memory array.
func (m Model) Capacity() int {
	return m.spec().capacity
}

// AddrBytes returns the word-address width on the wire: 1 for models below
// AT24C32, 2 for AT24C32 and above.
func (m Model) AddrBytes() int {
	return int(m.spec().addrBytes)
}

// FoldBits returns how many high word-address bits the model folds into the
// device-address byte (0 to 3).
func (m Model) FoldBits() int {
	return int(m.spec().foldBits)
}

// Models returns all supported chip models in ascending capacity order.
func Models() []Model {
	ms := make([]Model, 0, int(AT24CM02))
	for m := AT24C01; m <= AT24CM02; m++ {
		ms = append(ms, m)
	}
	return ms
}

// ModelByName looks up a model by its part number, e.g. "AT24C64".
func ModelByName(name string) (Model, bool) {
	for m := AT24C01; m <= AT24CM02; m++ {
		if specs[m].name == name {
			return m, true
		}
	}
	return 0, false
}

// Addr is the fully encoded address for one bus transaction: the 7-bit
// device address with any folded-in high word-address bits, and the 1 or 2
// word-address bytes to transmit after it.
//
// Transports append the read/write direction bit themselves.
type Addr struct {
	// Device is the 7-bit device address, right aligned.
	Device byte

	// Word holds the word-address bytes, most significant first.
	// Only the trailing Width bytes are transmitted.
	Word [2]byte

	// Width is the word-address byte count (1 or 2).
	Width uint8
}

// WordBytes returns the word-address bytes to transmit, most significant
// byte first.
func (a Addr) WordBytes() []byte {
	return a.Word[2-a.Width:]
}

// Encode computes the bus address for a transfer at the given linear word
// address. base is the 7-bit device base address (normally
// DefaultBaseAddress) and pins the value of the chip's hardware address
// inputs (A2..A0).
//
// The low bits of the device address carry the hardware pin values, except
// where the model folds high word-address bits over them: one-byte-address
// models fold word bits 8 and up, two-byte-address models fold bits 16 and
// up. Bits the model does not fold keep the pin value. The result depends on
// the word address, so it must be recomputed for every transaction.
func Encode(m Model, base, pins byte, word uint32) Addr {
	s := m.spec()

	dev := base&^0x07 | pins&0x07

	foldFrom := uint(8)
	if s.addrBytes == 2 {
		foldFrom = 16
	}
	for i := uint(0); i < uint(s.foldBits); i++ {
		bit := byte(word>>(foldFrom+i)) & 1
		dev = dev&^(1<<i) | bit<<i
	}

	a := Addr{Device: dev & 0x7F, Width: s.addrBytes}
	a.Word[0] = byte(word >> 8)
	a.Word[1] = byte(word)
	return a
}
