package ihex

import (
	"fmt"
	"io"
	"sort"
)

// Image is a parsed Intel HEX image: contiguous runs of data at absolute
// addresses, in ascending order.
type Image struct {
	Chunks []*Chunk
}

// Chunk is one contiguous run of data.
type Chunk struct {
	// Addr is the absolute address of the first byte.
	Addr uint32

	// Data is the run's payload.
	Data []byte
}

// add appends data at the given absolute address, merging it into the
// previous chunk when contiguous. Records normally arrive in ascending
// address order; out-of-order records start a new chunk.
func (img *Image) add(addr uint32, data []byte) {
	if n := len(img.Chunks); n > 0 {
		last := img.Chunks[n-1]
		if last.Addr+uint32(len(last.Data)) == addr {
			last.Data = append(last.Data, data...)
			return
		}
	}
	img.Chunks = append(img.Chunks, &Chunk{Addr: addr, Data: append([]byte(nil), data...)})
}

// Size returns the total number of data bytes in the image.
func (img *Image) Size() int {
	n := 0
	for _, c := range img.Chunks {
		n += len(c.Data)
	}
	return n
}

// Flatten returns the image as a single (addr, data) run. Gaps between
// chunks are filled with the given byte. It fails if chunks overlap.
func (img *Image) Flatten(fill byte) (uint32, []byte, error) {
	if len(img.Chunks) == 0 {
		return 0, nil, fmt.Errorf("empty image")
	}

	chunks := append([]*Chunk(nil), img.Chunks...)
	sort.Slice(chunks, func(i, j int) bool { return chunks[i].Addr < chunks[j].Addr })

	start := chunks[0].Addr
	end := start
	for _, c := range chunks {
		if c.Addr < end {
			return 0, nil, fmt.Errorf("overlapping data at 0x%05X", c.Addr)
		}
		end = c.Addr + uint32(len(c.Data))
	}

	data := make([]byte, end-start)
	for i := range data {
		data[i] = fill
	}
	for _, c := range chunks {
		copy(data[c.Addr-start:], c.Data)
	}
	return start, data, nil
}

// BytesPerRecord is the data record payload size Encode emits.
const BytesPerRecord = 16

// Encode writes data starting at the given absolute address as Intel HEX
// records, emitting extended linear address records as the upper address
// bits change, and terminates with an end-of-file record.
func Encode(w io.Writer, addr uint32, data []byte) error {
	upper := uint32(0xFFFFFFFF)
	for off := 0; off < len(data); off += BytesPerRecord {
		n := BytesPerRecord
		if rest := len(data) - off; n > rest {
			n = rest
		}
		a := addr + uint32(off)

		if a>>16 != upper {
			upper = a >> 16
			ela := []byte{2, 0, 0, RecordExtLinear, byte(upper >> 8), byte(upper)}
			if err := writeRecord(w, ela); err != nil {
				return err
			}
		}

		rec := make([]byte, 0, 4+n)
		rec = append(rec, byte(n), byte(a>>8), byte(a), RecordData)
		rec = append(rec, data[off:off+n]...)
		if err := writeRecord(w, rec); err != nil {
			return err
		}
	}

	return writeRecord(w, []byte{0, 0, 0, RecordEOF})
}

func writeRecord(w io.Writer, rec []byte) error {
	if _, err := fmt.Fprintf(w, ":%X%02X\n", rec, checksum(rec)); err != nil {
		return fmt.Errorf("write record: %w", err)
	}
	return nil
}
