package ihex

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseReader(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []*Chunk
		wantErr string
	}{
		{
			name: "single data record",
			input: ":0400100001020304E2\n" +
				":00000001FF\n",
			want: []*Chunk{{Addr: 0x10, Data: []byte{0x01, 0x02, 0x03, 0x04}}},
		},
		{
			name: "contiguous records merge",
			input: ":020000000102FB\n" +
				":020002000304F5\n" +
				":00000001FF\n",
			want: []*Chunk{{Addr: 0, Data: []byte{0x01, 0x02, 0x03, 0x04}}},
		},
		{
			name: "gap starts a new chunk",
			input: ":020000000102FB\n" +
				":020010000304E7\n" +
				":00000001FF\n",
			want: []*Chunk{
				{Addr: 0, Data: []byte{0x01, 0x02}},
				{Addr: 0x10, Data: []byte{0x03, 0x04}},
			},
		},
		{
			name: "extended linear address",
			input: ":020000040001F9\n" +
				":02000000AABB99\n" +
				":00000001FF\n",
			want: []*Chunk{{Addr: 0x10000, Data: []byte{0xAA, 0xBB}}},
		},
		{
			name: "extended segment address",
			input: ":020000021000EC\n" +
				":01000000CC33\n" +
				":00000001FF\n",
			want: []*Chunk{{Addr: 0x10000, Data: []byte{0xCC}}},
		},
		{
			name: "blank lines are skipped",
			input: "\n:0100000055AA\n\n" +
				":00000001FF\n",
			want: []*Chunk{{Addr: 0, Data: []byte{0x55}}},
		},
		{
			name:    "missing colon",
			input:   "0100000055AA\n:00000001FF\n",
			wantErr: "must start with ':'",
		},
		{
			name:    "bad checksum",
			input:   ":0100000055AB\n:00000001FF\n",
			wantErr: "checksum mismatch",
		},
		{
			name:    "truncated record",
			input:   ":0400100001F1\n:00000001FF\n",
			wantErr: "length mismatch",
		},
		{
			name:    "record too short",
			input:   ":0102\n:00000001FF\n",
			wantErr: "record too short",
		},
		{
			name:    "invalid hex",
			input:   ":01000000ZZAA\n:00000001FF\n",
			wantErr: "invalid hex",
		},
		{
			name:    "missing end of file",
			input:   ":0100000055AA\n",
			wantErr: "missing end-of-file",
		},
		{
			name:    "data after end of file",
			input:   ":00000001FF\n:0100000055AA\n",
			wantErr: "after end-of-file",
		},
		{
			name:    "no data records",
			input:   ":00000001FF\n",
			wantErr: "no data records",
		},
		{
			name:    "unknown record type",
			input:   ":01000007AA4E\n:00000001FF\n",
			wantErr: "unknown record type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := ParseReader(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParseReader() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseReader() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, img.Chunks); diff != "" {
				t.Errorf("chunks mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	img := &Image{Chunks: []*Chunk{
		{Addr: 0x10, Data: []byte{0x01, 0x02}},
		{Addr: 0x18, Data: []byte{0x03}},
	}}

	addr, data, err := img.Flatten(0xFF)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if addr != 0x10 {
		t.Errorf("Flatten() addr = 0x%X, want 0x10", addr)
	}
	want := []byte{0x01, 0x02, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x03}
	if diff := cmp.Diff(want, data); diff != "" {
		t.Errorf("Flatten() data mismatch (-want +got):\n%s", diff)
	}
}

func TestFlattenOverlap(t *testing.T) {
	img := &Image{Chunks: []*Chunk{
		{Addr: 0x10, Data: []byte{0x01, 0x02}},
		{Addr: 0x11, Data: []byte{0x03}},
	}}

	if _, _, err := img.Flatten(0xFF); err == nil {
		t.Error("Flatten() with overlapping chunks returned nil error")
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	data := make([]byte, 300)
	for i := range data {
		data[i] = byte(i * 3)
	}

	// An address spanning a 64 KiB boundary forces extended linear
	// address records.
	const start = 0xFFE0

	var buf bytes.Buffer
	if err := Encode(&buf, start, data); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	img, err := ParseReader(&buf)
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}

	addr, flat, err := img.Flatten(0x00)
	if err != nil {
		t.Fatalf("Flatten() error = %v", err)
	}
	if addr != start {
		t.Errorf("round trip addr = 0x%X, want 0x%X", addr, start)
	}
	if diff := cmp.Diff(data, flat); diff != "" {
		t.Errorf("round trip data mismatch (-want +got):\n%s", diff)
	}
}

func TestImageSize(t *testing.T) {
	img := &Image{Chunks: []*Chunk{
		{Addr: 0, Data: make([]byte, 10)},
		{Addr: 100, Data: make([]byte, 5)},
	}}
	if got := img.Size(); got != 15 {
		t.Errorf("Size() = %d, want 15", got)
	}
}
