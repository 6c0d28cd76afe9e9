package bus

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/moffa90/go-at24cxx/chip"
)

type msg struct {
	Dir  string // "tx" or "rx"
	Addr byte
	Data []byte
	N    int // rx length
}

// scriptMessenger records message-level transactions.
type scriptMessenger struct {
	msgs   []msg
	rxData []byte
	txErr  error
	rxErr  error
}

func (s *scriptMessenger) Tx(addr byte, w []byte) error {
	s.msgs = append(s.msgs, msg{Dir: "tx", Addr: addr, Data: append([]byte(nil), w...)})
	return s.txErr
}

func (s *scriptMessenger) Rx(addr byte, r []byte) error {
	s.msgs = append(s.msgs, msg{Dir: "rx", Addr: addr, N: len(r)})
	copy(r, s.rxData)
	return s.rxErr
}

func TestHardTransportWriteMem(t *testing.T) {
	m := &scriptMessenger{}
	tr := NewHardTransport(m)

	addr := chip.Encode(chip.AT24C256, chip.DefaultBaseAddress, 0x2, 0x0321)
	if err := tr.WriteMem(addr, []byte{0xCA, 0xFE}); err != nil {
		t.Fatalf("WriteMem() error = %v", err)
	}

	want := []msg{
		{Dir: "tx", Addr: 0x52, Data: []byte{0x03, 0x21, 0xCA, 0xFE}},
	}
	if diff := cmp.Diff(want, m.msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestHardTransportReadMem(t *testing.T) {
	m := &scriptMessenger{rxData: []byte{0xAA, 0xBB}}
	tr := NewHardTransport(m)

	addr := chip.Encode(chip.AT24C16, chip.DefaultBaseAddress, 0, 0x4CD)
	buf := make([]byte, 2)
	if err := tr.ReadMem(addr, buf); err != nil {
		t.Fatalf("ReadMem() error = %v", err)
	}

	want := []msg{
		{Dir: "tx", Addr: 0x54, Data: []byte{0xCD}}, // A10 A9 A8 = 100 folded in
		{Dir: "rx", Addr: 0x54, N: 2},
	}
	if diff := cmp.Diff(want, m.msgs); diff != "" {
		t.Errorf("messages mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]byte{0xAA, 0xBB}, buf); diff != "" {
		t.Errorf("buffer mismatch (-want +got):\n%s", diff)
	}
}

// The read still happens when the pointer-set write fails, and both errors
// surface together.
func TestHardTransportReadMemAccumulates(t *testing.T) {
	txErr := errors.New("tx nack")
	m := &scriptMessenger{txErr: txErr, rxData: []byte{0x01}}
	tr := NewHardTransport(m)

	addr := chip.Encode(chip.AT24C02, chip.DefaultBaseAddress, 0, 0)
	err := tr.ReadMem(addr, make([]byte, 1))
	if !errors.Is(err, txErr) {
		t.Fatalf("ReadMem() error = %v, want wrapped %v", err, txErr)
	}
	if len(m.msgs) != 2 {
		t.Errorf("got %d messages, want 2 (rx must still run)", len(m.msgs))
	}
}
