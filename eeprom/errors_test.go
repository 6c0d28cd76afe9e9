package eeprom

import (
	"errors"
	"strings"
	"testing"
)

func TestRangeErrorMessage(t *testing.T) {
	err := &RangeError{Op: "write", Addr: 0x1F0, Size: 32, Capacity: 512}
	msg := err.Error()
	for _, want := range []string{"write", "0x001F0", "32", "512"} {
		if !strings.Contains(msg, want) {
			t.Errorf("RangeError message %q missing %q", msg, want)
		}
	}
}

func TestVerifyErrorMessage(t *testing.T) {
	err := &VerifyError{Addr: 0x42, Want: 0xAB, Got: 0xBA}
	msg := err.Error()
	for _, want := range []string{"0x00042", "0xAB", "0xBA"} {
		if !strings.Contains(msg, want) {
			t.Errorf("VerifyError message %q missing %q", msg, want)
		}
	}
}

func TestChunkErrorUnwrap(t *testing.T) {
	inner := errors.New("bus step failed")
	err := &ChunkError{Op: "erase", Addr: 0x20, Size: 10, Err: inner}

	if !errors.Is(err, inner) {
		t.Error("ChunkError does not unwrap to the transport error")
	}
	if !strings.Contains(err.Error(), "erase") {
		t.Errorf("ChunkError message %q missing operation", err.Error())
	}
}
