package packet

import "fmt"

// Field widths of the BITS wire format.
const (
	VersionBits     = 3
	TypeBits        = 3
	GroupBits       = 5
	LengthTypeBits  = 1
	BitLengthBits   = 15
	PacketCountBits = 11
)

// TypeID selects a literal payload or an operator function.
type TypeID uint8

const (
	TypeSum     TypeID = 0
	TypeProduct TypeID = 1
	TypeMinimum TypeID = 2
	TypeMaximum TypeID = 3
	TypeLiteral TypeID = 4
	TypeGreater TypeID = 5
	TypeLess    TypeID = 6
	TypeEqual   TypeID = 7
)

func (t TypeID) String() string {
	switch t {
	case TypeSum:
		return "sum"
	case TypeProduct:
		return "product"
	case TypeMinimum:
		return "minimum"
	case TypeMaximum:
		return "maximum"
	case TypeLiteral:
		return "literal"
	case TypeGreater:
		return "greater"
	case TypeLess:
		return "less"
	case TypeEqual:
		return "equal"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// LengthType says how an operator bounds its children.
type LengthType uint8

const (
	LengthBits  LengthType = 0
	LengthCount LengthType = 1
)

func (l LengthType) String() string {
	if l == LengthCount {
		return "count"
	}
	return "bits"
}

// Header is the part every packet shares. Offset and Width locate the
// packet in the stream it was decoded from; both are zero for trees built
// by hand.
type Header struct {
	Version uint8
	Type    TypeID
	Offset  int
	Width   int
}

// Packet is either a *Literal or an *Operator.
type Packet interface {
	PacketHeader() Header
	VersionSum() uint64
	Evaluate() (uint64, error)
	packet()
}

// Literal is a type 4 packet.
type Literal struct {
	Header
	Value uint64
}

// Operator is any non-literal packet. Length holds the declared field:
// a bit count for LengthBits, a child count for LengthCount.
type Operator struct {
	Header
	LengthType LengthType
	Length     int
	Children   []Packet
}

func (l *Literal) PacketHeader() Header  { return l.Header }
func (o *Operator) PacketHeader() Header { return o.Header }

func (*Literal) packet()  {}
func (*Operator) packet() {}
