package reconcile

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Materialize creates the live subtree for n.
//
// Leaves become text nodes. Elements become elements of the same tag with
// their plain attributes set and one listener registered per event
// attribute, in key order, followed by their materialized children.
func Materialize[N any](h Host[N], n vdom.Node) (N, error) {
	var zero N

	switch v := n.(type) {
	case vdom.Leaf:
		return h.CreateTextNode(v.Text()), nil

	case *vdom.Element:
		if v == nil {
			return zero, ErrAbsentNode
		}
		el, err := h.CreateElement(string(v.Tag))
		if err != nil {
			return zero, fmt.Errorf("reconcile: create <%s>: %w", v.Tag, err)
		}
		if err := setAttributes(h, el, v.Attrs); err != nil {
			return zero, fmt.Errorf("reconcile: <%s>: %w", v.Tag, err)
		}
		for _, child := range v.Children {
			if vdom.IsAbsent(child) {
				continue
			}
			live, err := Materialize(h, child)
			if err != nil {
				return zero, err
			}
			if err := h.AppendChild(el, live); err != nil {
				return zero, fmt.Errorf("reconcile: <%s> append child: %w", v.Tag, err)
			}
		}
		return el, nil
	}

	return zero, ErrAbsentNode
}

// setAttributes binds listeners for event attributes and writes every other
// attribute except the key.
func setAttributes[N any](h Host[N], el N, attrs vdom.Attrs) error {
	for _, key := range attrs.SortedKeys() {
		value := attrs[key]
		switch {
		case key == vdom.KeyAttr:
			continue
		case vdom.IsEventAttr(key):
			if value == nil {
				continue
			}
			handler, ok := vdom.AsHandler(value)
			if !ok {
				return fmt.Errorf("%w: %s is %T", ErrNotHandler, key, value)
			}
			if err := h.AddEventListener(el, vdom.EventName(key), handler); err != nil {
				return fmt.Errorf("listen %s: %w", key, err)
			}
		default:
			if err := h.SetAttribute(el, key, vdom.AttrString(value)); err != nil {
				return fmt.Errorf("set %s: %w", key, err)
			}
		}
	}
	return nil
}
