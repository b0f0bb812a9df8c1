package reconcile

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Op is the live mutation the patcher applied at a position.
type Op uint8

const (
	OpNone        Op = iota // No mutation
	OpAppend                // New child appended (growth)
	OpRemove                // Child removed (shrink)
	OpReplace               // Whole subtree replaced
	OpSetValue              // Live value property written
	OpUpdateAttrs           // Attributes removed and set
	OpInsert                // New child inserted (keyed)
	OpMove                  // Existing child moved (keyed)
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpNone:
		return "None"
	case OpAppend:
		return "Append"
	case OpRemove:
		return "Remove"
	case OpReplace:
		return "Replace"
	case OpSetValue:
		return "SetValue"
	case OpUpdateAttrs:
		return "UpdateAttrs"
	case OpInsert:
		return "Insert"
	case OpMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Change describes what happened at one visited tree position.
type Change struct {
	// Path is the index path from the patch root; the first element is the
	// index passed to Patch.
	Path []int

	// Kind is the classification of the old/new pair. Growth, shrink,
	// insert and move positions report None.
	Kind vdom.ChangeKind

	// Op is the mutation applied.
	Op Op
}

// String implements fmt.Stringer.
func (c Change) String() string {
	return fmt.Sprintf("%v %s/%s", c.Path, c.Kind, c.Op)
}

// Observer receives one Change per visited position, in walk order.
type Observer func(Change)

// Mutates reports whether the change touched the live tree.
func (c Change) Mutates() bool {
	return c.Op != OpNone
}

// Recorder collects changes. Its Observe method can be passed to
// WithObserver.
type Recorder struct {
	Changes []Change
}

// Observe appends c.
func (r *Recorder) Observe(c Change) {
	r.Changes = append(r.Changes, c)
}

// Mutations returns the recorded changes that touched the live tree.
func (r *Recorder) Mutations() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Mutates() {
			out = append(out, c)
		}
	}
	return out
}

// Counts tallies recorded changes by kind.
func (r *Recorder) Counts() map[vdom.ChangeKind]int {
	counts := make(map[vdom.ChangeKind]int)
	for _, c := range r.Changes {
		counts[c.Kind]++
	}
	return counts
}

// Reset drops all recorded changes.
func (r *Recorder) Reset() {
	r.Changes = r.Changes[:0]
}
