package vdom

import "fmt"

// H builds an element from a tag, an attribute map and children.
//
// Children can be: nil, Node, []Node, *Element, []*Element, string, any Go
// integer or float, or fmt.Stringer. nil children are skipped so that
// conditional children can be written inline. Other values become string
// leaves of their fmt.Sprint form. H never validates the tag.
func H(tag Tag, attrs Attrs, children ...any) *Element {
	el := &Element{
		Tag:      tag,
		Attrs:    attrs,
		Children: make([]Node, 0, len(children)),
	}
	if el.Attrs == nil {
		el.Attrs = Attrs{}
	}
	if key, ok := el.Attrs[KeyAttr]; ok {
		el.Key = AttrString(key)
	}

	for _, child := range children {
		el.Children = appendChild(el.Children, child)
	}
	return el
}

// appendChild converts one builder argument into zero or more nodes.
func appendChild(dst []Node, child any) []Node {
	switch v := child.(type) {
	case nil:
		return dst
	case *Element:
		if v == nil {
			return dst
		}
		return append(dst, v)
	case Leaf:
		return append(dst, v)
	case []Node:
		for _, c := range v {
			if !IsAbsent(c) {
				dst = append(dst, c)
			}
		}
		return dst
	case []*Element:
		for _, c := range v {
			if c != nil {
				dst = append(dst, c)
			}
		}
		return dst
	case string:
		return append(dst, Str(v))
	case int:
		return append(dst, Num(float64(v)))
	case int8:
		return append(dst, Num(float64(v)))
	case int16:
		return append(dst, Num(float64(v)))
	case int32:
		return append(dst, Num(float64(v)))
	case int64:
		return append(dst, Num(float64(v)))
	case uint:
		return append(dst, Num(float64(v)))
	case uint8:
		return append(dst, Num(float64(v)))
	case uint16:
		return append(dst, Num(float64(v)))
	case uint32:
		return append(dst, Num(float64(v)))
	case uint64:
		return append(dst, Num(float64(v)))
	case float32:
		return append(dst, Num(float64(v)))
	case float64:
		return append(dst, Num(v))
	case fmt.Stringer:
		return append(dst, Str(v.String()))
	default:
		return append(dst, Str(fmt.Sprint(v)))
	}
}

// Textf creates a formatted string leaf.
func Textf(format string, args ...any) Leaf {
	return Str(fmt.Sprintf(format, args...))
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node Node) Node {
	if condition {
		return node
	}
	return nil
}

// Map builds one node per item.
func Map[T any](items []T, fn func(T) Node) []Node {
	out := make([]Node, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
