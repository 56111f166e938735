package bits

import (
	"fmt"
	"strings"
)

const hexDigits = "0123456789ABCDEF"

// Writer appends big-endian fields to a growing bit stream.
type Writer struct {
	data []byte
	n    int
}

func (w *Writer) Write(v uint64, width int) error {
	if width < 0 || width > MaxRead {
		return fmt.Errorf("%w: %d", ErrBadWidth, width)
	}
	if width < MaxRead && v>>uint(width) != 0 {
		return fmt.Errorf("bits: value %d does not fit in %d bits", v, width)
	}
	for i := width - 1; i >= 0; i-- {
		w.writeBit(byte(v >> uint(i) & 1))
	}
	return nil
}

func (w *Writer) writeBit(b byte) {
	if w.n%8 == 0 {
		w.data = append(w.data, 0)
	}
	if b != 0 {
		w.data[w.n/8] |= 1 << (7 - uint(w.n%8))
	}
	w.n++
}

func (w *Writer) Len() int { return w.n }

// Reader returns a Reader over the bits written so far.
func (w *Writer) Reader() *Reader {
	return NewReader(w.data, w.n)
}

// Hex renders the stream as uppercase hex, zero padding the final nibble.
func (w *Writer) Hex() string {
	nibbles := (w.n + 3) / 4
	var b strings.Builder
	b.Grow(nibbles)
	for i := 0; i < nibbles; i++ {
		v := w.data[i/2]
		if i%2 == 0 {
			v >>= 4
		}
		b.WriteByte(hexDigits[v&0x0F])
	}
	return b.String()
}
