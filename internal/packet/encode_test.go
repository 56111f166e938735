package packet

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	inputs := []string{
		"D2FE28",
		"38006F45291200",
		"EE00D40C823060",
		"A0016C880162017C3686B18A3D4780",
		"9C0141080250320F1802104A08",
	}
	ignorePosition := cmpopts.IgnoreFields(Header{}, "Offset", "Width")
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			p, err := Decode(in)
			require.NoError(t, err)

			out, err := Encode(p)
			require.NoError(t, err)

			again, err := Decode(out)
			require.NoError(t, err)
			if diff := cmp.Diff(p, again, ignorePosition); diff != "" {
				t.Fatalf("round-trip mismatch (-first +second):\n%s", diff)
			}
		})
	}
}

func TestEncodeLiteralMatchesWireExample(t *testing.T) {
	out, err := Encode(&Literal{Header: Header{Version: 6, Type: TypeLiteral}, Value: 2021})
	require.NoError(t, err)
	assert.Equal(t, "D2FE28", out)
}

func TestEncodeRecomputesBitLength(t *testing.T) {
	tree := &Operator{
		Header:     Header{Version: 1, Type: TypeSum},
		LengthType: LengthBits,
		Length:     999,
		Children:   []Packet{lit(1), lit(2), lit(40)},
	}
	out, err := Encode(tree)
	require.NoError(t, err)

	p, err := Decode(out)
	require.NoError(t, err)
	decoded, ok := p.(*Operator)
	require.True(t, ok)
	assert.Equal(t, 11+11+16, decoded.Length)

	v, err := p.Evaluate()
	require.NoError(t, err)
	assert.Equal(t, uint64(43), v)
}

func TestEncodeRejectsOversizedCount(t *testing.T) {
	children := make([]Packet, 1<<PacketCountBits)
	for i := range children {
		children[i] = lit(0)
	}
	_, err := Encode(op(TypeSum, children...))
	if !errors.Is(err, ErrLengthOverflow) {
		t.Fatalf("expected ErrLengthOverflow, got %v", err)
	}
}

func TestFormatAndNode(t *testing.T) {
	p, err := Decode("38006F45291200")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Format(&buf, p))
	want := "v1 less bits=27 children=2 [0+49]\n" +
		"  v6 literal 10 [22+11]\n" +
		"  v2 literal 20 [33+16]\n"
	assert.Equal(t, want, buf.String())

	n := ToNode(p)
	assert.Equal(t, "less", n.Type)
	assert.Equal(t, "bits", n.LengthType)
	assert.Nil(t, n.Value)
	require.Len(t, n.Children, 2)
	require.NotNil(t, n.Children[1].Value)
	assert.Equal(t, uint64(20), *n.Children[1].Value)
}

func TestEncodeRejectsTypeVariantMismatch(t *testing.T) {
	cases := map[string]Packet{
		"literal typed as sum":      &Literal{Header: Header{Type: TypeSum}, Value: 1},
		"operator typed as literal": op(TypeLiteral, lit(1)),
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Encode(p)
			if !errors.Is(err, ErrUnknownType) {
				t.Fatalf("expected ErrUnknownType, got %v", err)
			}
		})
	}
}
