package packet

import "errors"

var (
	ErrTruncated       = errors.New("packet: truncated transmission")
	ErrLengthMismatch  = errors.New("packet: sub-packets overrun declared bit length")
	ErrLiteralOverflow = errors.New("packet: literal exceeds 64 bits")
	ErrTooDeep         = errors.New("packet: nesting exceeds max depth")
	ErrTrailingData    = errors.New("packet: non-zero bits after root packet")
	ErrUnknownType     = errors.New("packet: unknown operator type")
	ErrOperandCount    = errors.New("packet: wrong operand count")
	ErrLengthOverflow  = errors.New("packet: length field overflow")
)
