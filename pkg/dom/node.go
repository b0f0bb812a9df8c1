package dom

import (
	"sort"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// NodeType discriminates live nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Node is a live display-tree node.
type Node struct {
	Type NodeType
	Tag  string // ElementNode only
	Text string // TextNode only

	attrs     map[string]string
	value     string
	valueSet  bool
	listeners map[string][]vdom.Handler
	parent    *Node
	children  []*Node
}

func newElement(tag string) *Node {
	return &Node{
		Type:  ElementNode,
		Tag:   tag,
		attrs: make(map[string]string),
	}
}

func newText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// Parent returns the parent node, or nil.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Attr returns an attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// Attrs returns a copy of the attribute set.
func (n *Node) Attrs() map[string]string {
	out := make(map[string]string, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// RenderedAttrs returns the attributes as rendered to HTML: a copy of the
// attribute set with the value property, if written, as "value".
func (n *Node) RenderedAttrs() map[string]string {
	attrs := n.Attrs()
	if n.valueSet {
		attrs[vdom.ValueAttr] = n.value
	}
	return attrs
}

// ListenerCount returns the number of listeners bound for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// Events returns the names of events with listeners, sorted.
func (n *Node) Events() []string {
	names := make([]string, 0, len(n.listeners))
	for name := range n.listeners {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// liveValue is the value property: the written value if any, otherwise
// the value attribute.
func (n *Node) liveValue() string {
	if n.valueSet {
		return n.value
	}
	return n.attrs[vdom.ValueAttr]
}

// TextContent returns the concatenated text of the subtree.
func (n *Node) TextContent() string {
	if n.Type == TextNode {
		return n.Text
	}
	var out []byte
	for _, c := range n.children {
		out = append(out, c.TextContent()...)
	}
	return string(out)
}

// path returns the index path from the topmost ancestor, and that ancestor.
func (n *Node) path() ([]int, *Node) {
	var rev []int
	cur := n
	for cur.parent != nil {
		rev = append(rev, indexOfChild(cur.parent.children, cur))
		cur = cur.parent
	}
	path := make([]int, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path, cur
}

// clone deep-copies the subtree without listeners or parent link.
func (n *Node) clone() *Node {
	c := &Node{
		Type:     n.Type,
		Tag:      n.Tag,
		Text:     n.Text,
		value:    n.value,
		valueSet: n.valueSet,
	}
	if n.attrs != nil {
		c.attrs = n.Attrs()
	}
	for _, child := range n.children {
		cc := child.clone()
		cc.parent = c
		c.children = append(c.children, cc)
	}
	return c
}

func indexOfChild(children []*Node, n *Node) int {
	for i, c := range children {
		if c == n {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := indexOfChild(p.children, n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}
