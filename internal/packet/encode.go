package packet

import (
	"fmt"

	"github.com/danmuck/bitsctl/internal/bits"
)

// Encode serializes p to hex. Operators keep their length type; the
// length field itself is recomputed from the encoded children, and
// literals use the fewest groups that hold the value.
func Encode(p Packet) (string, error) {
	var w bits.Writer
	if err := EncodeTo(&w, p); err != nil {
		return "", err
	}
	return w.Hex(), nil
}

// EncodeTo appends p to w.
func EncodeTo(w *bits.Writer, p Packet) error {
	h := p.PacketHeader()
	switch p.(type) {
	case *Literal:
		if h.Type != TypeLiteral {
			return fmt.Errorf("%w: literal packet with %s type id", ErrUnknownType, h.Type)
		}
	case *Operator:
		if h.Type == TypeLiteral {
			return fmt.Errorf("%w: operator packet with literal type id", ErrUnknownType)
		}
	}
	if err := w.Write(uint64(h.Version), VersionBits); err != nil {
		return fmt.Errorf("encode version: %w", err)
	}
	if err := w.Write(uint64(h.Type), TypeBits); err != nil {
		return fmt.Errorf("encode type id: %w", err)
	}

	switch v := p.(type) {
	case *Literal:
		return encodeLiteral(w, v.Value)
	case *Operator:
		return encodeOperator(w, v)
	default:
		return fmt.Errorf("encode: unsupported packet %T", p)
	}
}

func encodeLiteral(w *bits.Writer, value uint64) error {
	groups := 1
	for v := value >> 4; v != 0; v >>= 4 {
		groups++
	}
	for i := groups - 1; i >= 0; i-- {
		group := value >> (uint(i) * 4) & 0x0F
		if i > 0 {
			group |= 0x10
		}
		if err := w.Write(group, GroupBits); err != nil {
			return err
		}
	}
	return nil
}

func encodeOperator(w *bits.Writer, op *Operator) error {
	if err := w.Write(uint64(op.LengthType), LengthTypeBits); err != nil {
		return err
	}
	if op.LengthType == LengthCount {
		if len(op.Children) >= 1<<PacketCountBits {
			return fmt.Errorf("%w: %d children", ErrLengthOverflow, len(op.Children))
		}
		if err := w.Write(uint64(len(op.Children)), PacketCountBits); err != nil {
			return err
		}
		for _, c := range op.Children {
			if err := EncodeTo(w, c); err != nil {
				return err
			}
		}
		return nil
	}

	var body bits.Writer
	for _, c := range op.Children {
		if err := EncodeTo(&body, c); err != nil {
			return err
		}
	}
	if body.Len() >= 1<<BitLengthBits {
		return fmt.Errorf("%w: %d bits", ErrLengthOverflow, body.Len())
	}
	if err := w.Write(uint64(body.Len()), BitLengthBits); err != nil {
		return err
	}
	r := body.Reader()
	for r.Remaining() > 0 {
		n := min(r.Remaining(), bits.MaxRead)
		chunk, err := r.Read(n)
		if err != nil {
			return err
		}
		if err := w.Write(chunk, n); err != nil {
			return err
		}
	}
	return nil
}
