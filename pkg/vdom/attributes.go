package vdom

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
)

// Value returns the "value" attribute and whether it is present.
func (a Attrs) Value() (any, bool) {
	v, ok := a[ValueAttr]
	return v, ok
}

// Plain returns the attributes written to the live tree as literal
// attributes, i.e. everything except event handlers and the key.
func (a Attrs) Plain() map[string]string {
	out := make(map[string]string, len(a))
	for k, v := range a {
		if IsEventAttr(k) || k == KeyAttr {
			continue
		}
		out[k] = AttrString(v)
	}
	return out
}

// SortedKeys returns the attribute keys in lexical order.
func (a Attrs) SortedKeys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AttrsEqual reports whether two attribute maps are structurally equal,
// ignoring event handlers and the key. Order is irrelevant.
func AttrsEqual(a, b Attrs) bool {
	na, nb := 0, 0
	for k, av := range a {
		if IsEventAttr(k) || k == KeyAttr {
			continue
		}
		na++
		bv, ok := b[k]
		if !ok || !propsEqual(av, bv) {
			return false
		}
	}
	for k := range b {
		if IsEventAttr(k) || k == KeyAttr {
			continue
		}
		nb++
	}
	return na == nb
}

// valueEqual compares the "value" entries of two attribute maps. Two
// absent entries are equal.
func valueEqual(a, b Attrs) bool {
	av, aok := a.Value()
	bv, bok := b.Value()
	if aok != bok {
		return false
	}
	return !aok || propsEqual(av, bv)
}

// propsEqual compares two attribute values for equality.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return av == bv
		}
		return false
	case int:
		if bv, ok := b.(int); ok {
			return av == bv
		}
		return false
	case int64:
		if bv, ok := b.(int64); ok {
			return av == bv
		}
		return false
	case float64:
		if bv, ok := b.(float64); ok {
			return math.Float64bits(av) == math.Float64bits(bv)
		}
		return false
	case bool:
		if bv, ok := b.(bool); ok {
			return av == bv
		}
		return false
	case nil:
		return b == nil
	}
	// Fallback to reflect for complex types
	return reflect.DeepEqual(a, b)
}

// AttrString converts an attribute value to the string written to the host.
func AttrString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
