package vdom

import (
	"math"
	"strconv"
	"strings"
)

// Node is a virtual tree node: either *Element or Leaf.
//
// The interface is sealed; no types outside this package implement it.
type Node interface {
	isNode()
}

// Element is a virtual element node.
type Element struct {
	Tag      Tag    // Element kind (e.g., "div")
	Attrs    Attrs  // Attributes and event handlers
	Children []Node // Ordered child nodes; absent entries are skipped
	Key      string // Reconciliation key, taken from the "key" attribute
}

func (*Element) isNode() {}

// LeafKind discriminates the two leaf payloads.
type LeafKind uint8

const (
	LeafString LeafKind = iota // Plain text
	LeafNumber                 // Numeric text
)

// String returns the string representation of the LeafKind.
func (k LeafKind) String() string {
	switch k {
	case LeafString:
		return "String"
	case LeafNumber:
		return "Number"
	default:
		return "Unknown"
	}
}

// Leaf is a terminal text value. Compare leaves with Equal; == treats a NaN
// number leaf as unequal to itself.
type Leaf struct {
	kind LeafKind
	str  string
	num  float64
}

func (Leaf) isNode() {}

// Str creates a string leaf.
func Str(s string) Leaf {
	return Leaf{kind: LeafString, str: s}
}

// Num creates a number leaf.
func Num(n float64) Leaf {
	return Leaf{kind: LeafNumber, num: n}
}

// Equal reports whether l and m hold the same payload. Numbers compare by
// bit pattern, so NaN equals NaN.
func (l Leaf) Equal(m Leaf) bool {
	if l.kind != m.kind {
		return false
	}
	if l.kind == LeafNumber {
		return math.Float64bits(l.num) == math.Float64bits(m.num)
	}
	return l.str == m.str
}

// Kind returns the leaf payload kind.
func (l Leaf) Kind() LeafKind {
	return l.kind
}

// Text returns the text content the leaf renders as.
func (l Leaf) Text() string {
	if l.kind == LeafNumber {
		return strconv.FormatFloat(l.num, 'f', -1, 64)
	}
	return l.str
}

// String implements fmt.Stringer.
func (l Leaf) String() string {
	return l.Text()
}

// Attrs holds attributes and event handlers.
type Attrs map[string]any

// KeyAttr is the reserved attribute that sets Element.Key.
// It is never written to the live tree.
const KeyAttr = "key"

// ValueAttr is the attribute written through the live value property
// instead of as an attribute.
const ValueAttr = "value"

// IsAbsent reports whether n denotes "no node" at a position, which is
// either a nil interface or a nil *Element.
func IsAbsent(n Node) bool {
	if n == nil {
		return true
	}
	if el, ok := n.(*Element); ok && el == nil {
		return true
	}
	return false
}

// ChildAt returns the i-th child of n, or nil when n is not an element or
// has fewer children.
func ChildAt(n Node, i int) Node {
	el, ok := n.(*Element)
	if !ok || el == nil || i < 0 || i >= len(el.Children) {
		return nil
	}
	return el.Children[i]
}

// String renders the tree in a compact debugging form, for example
// div.hoge(p(1) button("count up")).
func (e *Element) String() string {
	var b strings.Builder
	writeDebug(&b, e)
	return b.String()
}

func writeDebug(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Leaf:
		if v.kind == LeafString {
			b.WriteString(strconv.Quote(v.str))
		} else {
			b.WriteString(v.Text())
		}
	case *Element:
		if v == nil {
			b.WriteString("<nil>")
			return
		}
		b.WriteString(string(v.Tag))
		if class, ok := v.Attrs["class"].(string); ok && class != "" {
			b.WriteString(".")
			b.WriteString(strings.ReplaceAll(class, " ", "."))
		}
		if v.Key != "" {
			b.WriteString("#")
			b.WriteString(v.Key)
		}
		if len(v.Children) == 0 {
			return
		}
		b.WriteString("(")
		for i, c := range v.Children {
			if i > 0 {
				b.WriteString(" ")
			}
			writeDebug(b, c)
		}
		b.WriteString(")")
	default:
		b.WriteString("<nil>")
	}
}
