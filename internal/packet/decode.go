package packet

import (
	"errors"
	"fmt"

	"github.com/danmuck/bitsctl/internal/bits"
)

// Options constrains decoding.
type Options struct {
	MaxDepth           int
	RequireZeroPadding bool
}

func DefaultOptions() Options {
	return Options{
		MaxDepth:           256,
		RequireZeroPadding: false,
	}
}

// Decode parses a hex transmission into its root packet.
func Decode(hex string) (Packet, error) {
	return DecodeWithOptions(hex, DefaultOptions())
}

func DecodeWithOptions(hex string, opts Options) (Packet, error) {
	r, err := bits.FromHex(hex)
	if err != nil {
		return nil, err
	}
	p, err := DecodeReader(r, opts)
	if err != nil {
		return nil, err
	}
	if opts.RequireZeroPadding && !r.RemainingZero() {
		return nil, fmt.Errorf("%w: %d bits after offset %d", ErrTrailingData, r.Remaining(), r.Pos())
	}
	return p, nil
}

// DecodeReader decodes one packet starting at the reader's cursor and
// leaves the cursor just past it.
func DecodeReader(r *bits.Reader, opts Options) (Packet, error) {
	d := decoder{r: r, opts: opts}
	return d.packet(0)
}

type decoder struct {
	r    *bits.Reader
	opts Options
}

func (d *decoder) read(width int, field string) (uint64, error) {
	v, err := d.r.Read(width)
	if err != nil {
		if errors.Is(err, bits.ErrOutOfRange) {
			return 0, fmt.Errorf("%w: reading %s: %w", ErrTruncated, field, err)
		}
		return 0, err
	}
	return v, nil
}

func (d *decoder) packet(depth int) (Packet, error) {
	if d.opts.MaxDepth > 0 && depth > d.opts.MaxDepth {
		return nil, fmt.Errorf("%w: %d", ErrTooDeep, d.opts.MaxDepth)
	}
	start := d.r.Pos()
	version, err := d.read(VersionBits, "version")
	if err != nil {
		return nil, err
	}
	typeID, err := d.read(TypeBits, "type id")
	if err != nil {
		return nil, err
	}
	h := Header{Version: uint8(version), Type: TypeID(typeID), Offset: start}

	if h.Type == TypeLiteral {
		value, err := d.literal()
		if err != nil {
			return nil, err
		}
		h.Width = d.r.Pos() - start
		return &Literal{Header: h, Value: value}, nil
	}

	op, err := d.operator(depth)
	if err != nil {
		return nil, err
	}
	h.Width = d.r.Pos() - start
	op.Header = h
	return op, nil
}

func (d *decoder) literal() (uint64, error) {
	var value uint64
	for {
		group, err := d.read(GroupBits, "literal group")
		if err != nil {
			return 0, err
		}
		// Leading zero groups are allowed; only set bits shifted out overflow.
		if value>>60 != 0 {
			return 0, ErrLiteralOverflow
		}
		value = value<<4 | group&0x0F
		if group&0x10 == 0 {
			return value, nil
		}
	}
}

func (d *decoder) operator(depth int) (*Operator, error) {
	lt, err := d.read(LengthTypeBits, "length type")
	if err != nil {
		return nil, err
	}
	op := &Operator{LengthType: LengthType(lt)}

	if op.LengthType == LengthBits {
		n, err := d.read(BitLengthBits, "sub-packet bit length")
		if err != nil {
			return nil, err
		}
		op.Length = int(n)
		end := d.r.Pos() + op.Length
		for d.r.Pos() < end {
			child, err := d.packet(depth + 1)
			if err != nil {
				return nil, err
			}
			op.Children = append(op.Children, child)
		}
		if d.r.Pos() != end {
			return nil, fmt.Errorf("%w: declared %d, consumed %d", ErrLengthMismatch, op.Length, d.r.Pos()-end+op.Length)
		}
		return op, nil
	}

	n, err := d.read(PacketCountBits, "sub-packet count")
	if err != nil {
		return nil, err
	}
	op.Length = int(n)
	op.Children = make([]Packet, 0, op.Length)
	for i := 0; i < op.Length; i++ {
		child, err := d.packet(depth + 1)
		if err != nil {
			return nil, err
		}
		op.Children = append(op.Children, child)
	}
	return op, nil
}
