package packet

import "fmt"

func (l *Literal) VersionSum() uint64 { return uint64(l.Version) }

func (o *Operator) VersionSum() uint64 {
	sum := uint64(o.Version)
	for _, c := range o.Children {
		sum += c.VersionSum()
	}
	return sum
}

func (l *Literal) Evaluate() (uint64, error) { return l.Value, nil }

// Evaluate applies the operator's function to its children's values in
// order. Sum and product wrap on overflow.
func (o *Operator) Evaluate() (uint64, error) {
	values := make([]uint64, len(o.Children))
	for i, c := range o.Children {
		v, err := c.Evaluate()
		if err != nil {
			return 0, err
		}
		values[i] = v
	}

	switch o.Type {
	case TypeSum:
		var sum uint64
		for _, v := range values {
			sum += v
		}
		return sum, nil
	case TypeProduct:
		product := uint64(1)
		for _, v := range values {
			product *= v
		}
		return product, nil
	case TypeMinimum, TypeMaximum:
		if len(values) == 0 {
			return 0, fmt.Errorf("%w: %s at offset %d has no operands", ErrOperandCount, o.Type, o.Offset)
		}
		out := values[0]
		for _, v := range values[1:] {
			if (o.Type == TypeMinimum && v < out) || (o.Type == TypeMaximum && v > out) {
				out = v
			}
		}
		return out, nil
	case TypeGreater, TypeLess, TypeEqual:
		if len(values) != 2 {
			return 0, fmt.Errorf("%w: %s at offset %d has %d operands, want 2", ErrOperandCount, o.Type, o.Offset, len(values))
		}
		return compare(o.Type, values[0], values[1]), nil
	default:
		return 0, fmt.Errorf("%w: %s at offset %d", ErrUnknownType, o.Type, o.Offset)
	}
}

func compare(t TypeID, a, b uint64) uint64 {
	var ok bool
	switch t {
	case TypeGreater:
		ok = a > b
	case TypeLess:
		ok = a < b
	case TypeEqual:
		ok = a == b
	}
	if ok {
		return 1
	}
	return 0
}

// Walk visits p and its descendants in pre-order. Returning false from fn
// skips that packet's children.
func Walk(p Packet, fn func(p Packet, depth int) bool) {
	walk(p, 0, fn)
}

func walk(p Packet, depth int, fn func(Packet, int) bool) {
	if !fn(p, depth) {
		return
	}
	if op, ok := p.(*Operator); ok {
		for _, c := range op.Children {
			walk(c, depth+1, fn)
		}
	}
}
