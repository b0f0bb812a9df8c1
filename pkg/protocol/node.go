package protocol

import (
	"fmt"
	"sort"
)

// NodeKind discriminates wire nodes.
type NodeKind uint8

const (
	NodeElement NodeKind = 0x01
	NodeText    NodeKind = 0x02
)

// nullNode marks an absent node.
const nullNode = 0xFF

// WireNode is the serializable form of a live node. Listeners never cross
// the wire.
type WireNode struct {
	Kind     NodeKind
	Tag      string            // NodeElement only
	Attrs    map[string]string // NodeElement only; includes the live value
	Children []*WireNode       // NodeElement only
	Text     string            // NodeText only
}

// NewTextWire returns a text wire node.
func NewTextWire(text string) *WireNode {
	return &WireNode{Kind: NodeText, Text: text}
}

// NewElementWire returns an element wire node.
func NewElementWire(tag string, attrs map[string]string, children ...*WireNode) *WireNode {
	return &WireNode{Kind: NodeElement, Tag: tag, Attrs: attrs, Children: children}
}

// EncodeWireNode encodes n. Attributes are written in sorted key order so
// equal trees encode to equal bytes.
func EncodeWireNode(e *Encoder, n *WireNode) {
	if n == nil {
		e.WriteByte(nullNode)
		return
	}

	e.WriteByte(byte(n.Kind))
	switch n.Kind {
	case NodeElement:
		e.WriteString(n.Tag)

		keys := make([]string, 0, len(n.Attrs))
		for k := range n.Attrs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.WriteUvarint(uint64(len(keys)))
		for _, k := range keys {
			e.WriteString(k)
			e.WriteString(n.Attrs[k])
		}

		e.WriteUvarint(uint64(len(n.Children)))
		for _, c := range n.Children {
			EncodeWireNode(e, c)
		}

	case NodeText:
		e.WriteString(n.Text)
	}
}

// DecodeWireNode decodes a node, enforcing MaxNodeDepth.
func DecodeWireNode(d *Decoder) (*WireNode, error) {
	return decodeWireNode(d, 0)
}

func decodeWireNode(d *Decoder, depth int) (*WireNode, error) {
	if err := checkDepth(depth, MaxNodeDepth); err != nil {
		return nil, err
	}

	kind, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	if kind == nullNode {
		return nil, nil
	}

	n := &WireNode{Kind: NodeKind(kind)}
	switch n.Kind {
	case NodeElement:
		if n.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}

		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if count > 0 {
			n.Attrs = make(map[string]string, count)
			for i := 0; i < count; i++ {
				k, err := d.ReadString()
				if err != nil {
					return nil, err
				}
				v, err := d.ReadString()
				if err != nil {
					return nil, err
				}
				n.Attrs[k] = v
			}
		}

		count, err = d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if count > 0 {
			n.Children = make([]*WireNode, 0, count)
			for i := 0; i < count; i++ {
				c, err := decodeWireNode(d, depth+1)
				if err != nil {
					return nil, err
				}
				if c != nil {
					n.Children = append(n.Children, c)
				}
			}
		}

	case NodeText:
		if n.Text, err = d.ReadString(); err != nil {
			return nil, err
		}

	default:
		return nil, fmt.Errorf("protocol: unknown node kind 0x%02x", kind)
	}
	return n, nil
}
