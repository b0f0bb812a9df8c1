package vdom

// ChangeKind classifies how two nodes at the same position differ.
type ChangeKind uint8

const (
	None              ChangeKind = iota // Nothing to do at this position
	TypeChanged                         // Leaf vs element
	TextChanged                         // Leaf content differs
	NodeReplaced                        // Element tag differs
	ValueChanged                        // Same tag, "value" differs
	AttributesChanged                   // Same tag and value, other attributes differ
)

// String returns the string representation of the ChangeKind.
func (k ChangeKind) String() string {
	switch k {
	case None:
		return "None"
	case TypeChanged:
		return "TypeChanged"
	case TextChanged:
		return "TextChanged"
	case NodeReplaced:
		return "NodeReplaced"
	case ValueChanged:
		return "ValueChanged"
	case AttributesChanged:
		return "AttributesChanged"
	default:
		return "Unknown"
	}
}

// Replaces reports whether the change is applied by replacing the whole
// live subtree.
func (k ChangeKind) Replaces() bool {
	return k == TypeChanged || k == TextChanged || k == NodeReplaced
}

// Classify compares two present nodes at the same tree position.
//
// Rules, in priority order: differing variants are TypeChanged; unequal
// leaves are TextChanged; elements with different tags are NodeReplaced;
// differing "value" entries are ValueChanged; any other difference in the
// non-event attributes is AttributesChanged. Event handlers never take
// part in the comparison.
func Classify(prev, next Node) ChangeKind {
	switch o := prev.(type) {
	case Leaf:
		n, ok := next.(Leaf)
		if !ok {
			return TypeChanged
		}
		if !o.Equal(n) {
			return TextChanged
		}
		return None

	case *Element:
		if o == nil {
			break
		}
		n, ok := next.(*Element)
		if !ok || n == nil {
			return TypeChanged
		}
		if o.Tag != n.Tag {
			return NodeReplaced
		}
		if !valueEqual(o.Attrs, n.Attrs) {
			return ValueChanged
		}
		if !AttrsEqual(o.Attrs, n.Attrs) {
			return AttributesChanged
		}
		return None
	}

	// prev is absent; a present next node still differs in kind
	if IsAbsent(prev) != IsAbsent(next) {
		return TypeChanged
	}
	return None
}
