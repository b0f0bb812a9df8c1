package reconcile

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Strategy selects how the children of two matching elements are paired.
type Strategy uint8

const (
	// Positional pairs children by index only. Inserting or removing
	// anywhere but the tail shifts every later sibling, which is then
	// rewritten through replacements.
	Positional Strategy = iota

	// Keyed pairs children by Key first and falls back to position for
	// unkeyed children, moving live nodes into place. It needs a host that
	// implements Reorderer. Lists without any key use Positional.
	Keyed
)

// String returns the string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case Positional:
		return "positional"
	case Keyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// ParseStrategy parses "positional" or "keyed".
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "positional":
		return Positional, nil
	case "keyed":
		return Keyed, nil
	default:
		return Positional, fmt.Errorf("reconcile: unknown strategy %q", s)
	}
}

// positionalChildren patches the index-aligned union of both child lists.
// Shrink positions are visited from the highest index down so that every
// removal index still names the old position.
func (p *Patcher[N]) positionalChildren(live N, prev, next []vdom.Node, path []int) error {
	for i, child := range next {
		var before vdom.Node
		if i < len(prev) {
			before = prev[i]
		}
		if err := p.patch(live, before, child, i, childPath(path, i)); err != nil {
			return err
		}
	}
	for i := len(prev) - 1; i >= len(next); i-- {
		if err := p.patch(live, prev[i], nil, i, childPath(path, i)); err != nil {
			return err
		}
	}
	return nil
}

// keyedChildren pairs children by key, falling back to the next unmatched
// unkeyed old child for unkeyed new children.
//
// Invariant: after new child i is handled, live positions 0..i hold the new
// children in order and every later position holds an unmatched old child.
func (p *Patcher[N]) keyedChildren(live N, prev, next []vdom.Node, path []int) error {
	r, ok := p.host.(Reorderer[N])
	if !ok {
		return ErrReorderUnsupported
	}

	// order[pos] is the old index of the live child at pos, or -1.
	order := make([]int, len(prev))
	byKey := make(map[string]int, len(prev))
	for i, c := range prev {
		order[i] = i
		if k := keyOf(c); k != "" {
			if _, dup := byKey[k]; !dup {
				byKey[k] = i
			}
		}
	}
	used := make([]bool, len(prev))
	nextUnkeyed := 0

	for i, child := range next {
		match := -1
		if k := keyOf(child); k != "" {
			if j, ok := byKey[k]; ok && !used[j] {
				match = j
			}
		} else {
			for ; nextUnkeyed < len(prev); nextUnkeyed++ {
				if !used[nextUnkeyed] && keyOf(prev[nextUnkeyed]) == "" {
					match = nextUnkeyed
					nextUnkeyed++
					break
				}
			}
		}

		cp := childPath(path, i)
		if match < 0 {
			created, err := Materialize(p.host, child)
			if err != nil {
				return err
			}
			if err := r.InsertChild(live, created, i); err != nil {
				return fmt.Errorf("reconcile: insert %v: %w", cp, err)
			}
			order = insertAt(order, i, -1)
			p.emit(cp, vdom.None, OpInsert)
			continue
		}

		used[match] = true
		if pos := indexOf(order, match); pos != i {
			if err := r.MoveChild(live, pos, i); err != nil {
				return fmt.Errorf("reconcile: move %v: %w", cp, err)
			}
			order = moveTo(order, pos, i)
			p.emit(cp, vdom.None, OpMove)
		}
		if err := p.patch(live, prev[match], child, i, cp); err != nil {
			return err
		}
	}

	for pos := len(order) - 1; pos >= len(next); pos-- {
		if err := p.patch(live, prev[order[pos]], nil, pos, childPath(path, pos)); err != nil {
			return err
		}
	}
	return nil
}

// present returns children without absent entries, matching the live
// children Materialize creates. The slice is shared when nothing is absent.
func present(children []vdom.Node) []vdom.Node {
	for i, c := range children {
		if !vdom.IsAbsent(c) {
			continue
		}
		out := append(make([]vdom.Node, 0, len(children)-1), children[:i]...)
		for _, c := range children[i+1:] {
			if !vdom.IsAbsent(c) {
				out = append(out, c)
			}
		}
		return out
	}
	return children
}

func keyOf(n vdom.Node) string {
	if el, ok := n.(*vdom.Element); ok && el != nil {
		return el.Key
	}
	return ""
}

func hasKeys(children []vdom.Node) bool {
	for _, c := range children {
		if keyOf(c) != "" {
			return true
		}
	}
	return false
}

func indexOf(s []int, v int) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func insertAt(s []int, i, v int) []int {
	s = append(s, 0)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

func moveTo(s []int, from, to int) []int {
	v := s[from]
	s = append(s[:from], s[from+1:]...)
	return insertAt(s, to, v)
}

// childPath returns a fresh path with i appended.
func childPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}
