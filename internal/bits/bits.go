// Package bits expands hexadecimal transmissions into a bit stream and
// reads fixed-width big-endian fields from it.
package bits

import (
	"errors"
	"fmt"
	"strings"
)

// MaxRead is the widest field a single Read can return.
const MaxRead = 64

var (
	ErrEmptyInput = errors.New("bits: empty input")
	ErrInvalidHex = errors.New("bits: invalid hex character")
	ErrOutOfRange = errors.New("bits: read past end of stream")
	ErrBadWidth   = errors.New("bits: field width out of range")
)

// Reader is a cursor over a packed bit stream.
type Reader struct {
	data []byte
	n    int
	pos  int
}

// FromHex builds a Reader from hex text. Each character contributes
// exactly four bits, so odd-length input is valid.
func FromHex(s string) (*Reader, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyInput
	}
	data := make([]byte, (len(s)+1)/2)
	for i := 0; i < len(s); i++ {
		v, ok := nibble(s[i])
		if !ok {
			return nil, fmt.Errorf("%w %q at offset %d", ErrInvalidHex, s[i], i)
		}
		if i%2 == 0 {
			data[i/2] = v << 4
		} else {
			data[i/2] |= v
		}
	}
	return &Reader{data: data, n: len(s) * 4}, nil
}

// NewReader wraps already packed bytes holding n bits.
func NewReader(data []byte, n int) *Reader {
	if n < 0 || n > len(data)*8 {
		n = len(data) * 8
	}
	return &Reader{data: data, n: n}
}

func nibble(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// Read consumes width bits and returns them as a big-endian unsigned value.
// On error the cursor does not move.
func (r *Reader) Read(width int) (uint64, error) {
	if width < 0 || width > MaxRead {
		return 0, fmt.Errorf("%w: %d", ErrBadWidth, width)
	}
	if width > r.Remaining() {
		return 0, fmt.Errorf("%w: want %d bits at %d, have %d", ErrOutOfRange, width, r.pos, r.Remaining())
	}
	var v uint64
	for i := 0; i < width; i++ {
		v = v<<1 | uint64(r.bit(r.pos+i))
	}
	r.pos += width
	return v, nil
}

func (r *Reader) bit(i int) byte {
	return r.data[i/8] >> (7 - uint(i%8)) & 1
}

func (r *Reader) Pos() int       { return r.pos }
func (r *Reader) Len() int       { return r.n }
func (r *Reader) Remaining() int { return r.n - r.pos }

// RemainingZero reports whether every unread bit is zero.
func (r *Reader) RemainingZero() bool {
	for i := r.pos; i < r.n; i++ {
		if r.bit(i) != 0 {
			return false
		}
	}
	return true
}

// String renders the full stream as binary digits.
func (r *Reader) String() string {
	var b strings.Builder
	b.Grow(r.n)
	for i := 0; i < r.n; i++ {
		b.WriteByte('0' + r.bit(i))
	}
	return b.String()
}
