package eeprom

// chunk is one piece of a split transfer.
type chunk struct {
	addr uint32
	size int
}

// splitPages decomposes a transfer into chunks that tile
// [start, start+size) exactly, in ascending order. No chunk crosses a
// pageSize boundary (the chip's write pointer wraps inside a page) and no
// chunk exceeds maxChunk. A zero size yields no chunks.
func splitPages(start uint32, size, pageSize, maxChunk int) []chunk {
	if size <= 0 {
		return nil
	}
	if maxChunk <= 0 || maxChunk > pageSize {
		maxChunk = pageSize
	}

	chunks := make([]chunk, 0, size/maxChunk+2)
	addr := start
	for remaining := size; remaining > 0; {
		n := pageSize - int(addr%uint32(pageSize))
		if n > maxChunk {
			n = maxChunk
		}
		if n > remaining {
			n = remaining
		}
		chunks = append(chunks, chunk{addr: addr, size: n})
		addr += uint32(n)
		remaining -= n
	}
	return chunks
}
