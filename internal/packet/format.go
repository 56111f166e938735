package packet

import (
	"fmt"
	"io"
	"strings"
)

// Node is a plain view of a packet tree for json/yaml output.
type Node struct {
	Version    uint8   `json:"version" yaml:"version"`
	Type       string  `json:"type" yaml:"type"`
	Value      *uint64 `json:"value,omitempty" yaml:"value,omitempty"`
	LengthType string  `json:"length_type,omitempty" yaml:"length_type,omitempty"`
	Length     int     `json:"length,omitempty" yaml:"length,omitempty"`
	Offset     int     `json:"offset" yaml:"offset"`
	Width      int     `json:"width" yaml:"width"`
	Children   []Node  `json:"children,omitempty" yaml:"children,omitempty"`
}

func ToNode(p Packet) Node {
	h := p.PacketHeader()
	n := Node{
		Version: h.Version,
		Type:    h.Type.String(),
		Offset:  h.Offset,
		Width:   h.Width,
	}
	switch v := p.(type) {
	case *Literal:
		value := v.Value
		n.Value = &value
	case *Operator:
		n.LengthType = v.LengthType.String()
		n.Length = v.Length
		n.Children = make([]Node, 0, len(v.Children))
		for _, c := range v.Children {
			n.Children = append(n.Children, ToNode(c))
		}
	}
	return n
}

// Format writes one line per packet, indented by depth.
func Format(w io.Writer, p Packet) error {
	var err error
	Walk(p, func(p Packet, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", depth), describe(p))
		return true
	})
	return err
}

func describe(p Packet) string {
	switch v := p.(type) {
	case *Literal:
		return fmt.Sprintf("v%d literal %d [%d+%d]", v.Version, v.Value, v.Offset, v.Width)
	case *Operator:
		return fmt.Sprintf("v%d %s %s=%d children=%d [%d+%d]",
			v.Version, v.Type, v.LengthType, v.Length, len(v.Children), v.Offset, v.Width)
	default:
		return fmt.Sprintf("%T", p)
	}
}

// Stats summarizes a decoded tree.
type Stats struct {
	Packets  int
	MaxDepth int
	ByType   map[TypeID]int
}

func Collect(p Packet) Stats {
	s := Stats{ByType: make(map[TypeID]int)}
	Walk(p, func(p Packet, depth int) bool {
		s.Packets++
		s.ByType[p.PacketHeader().Type]++
		if depth > s.MaxDepth {
			s.MaxDepth = depth
		}
		return true
	})
	return s
}
