package reconcile

import (
	"errors"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Host is the display-tree capability set used by the materializer and the
// patcher. N is the host's live node handle.
type Host[N any] interface {
	// CreateElement creates an element of the given kind. Unknown kinds
	// fail here.
	CreateElement(tag string) (N, error)

	// CreateTextNode creates a text node.
	CreateTextNode(text string) N

	SetAttribute(n N, name, value string) error
	RemoveAttribute(n N, name string) error

	// AppendChild appends child as the last child of parent.
	AppendChild(parent, child N) error

	// ReplaceChild replaces the child at index with child.
	ReplaceChild(parent, child N, index int) error

	// RemoveChild removes the child at index.
	RemoveChild(parent N, index int) error

	// ChildAt returns the child at index.
	ChildAt(parent N, index int) (N, error)

	// AddEventListener subscribes h to the named event ("click").
	AddEventListener(n N, event string, h vdom.Handler) error

	// SetValue writes the live value property of a form control.
	SetValue(n N, value string) error

	// Value reads the live value property of a form control.
	Value(n N) (string, error)
}

// Reorderer is the optional capability set needed by the keyed strategy.
type Reorderer[N any] interface {
	// InsertChild inserts child so that it ends up at index.
	InsertChild(parent, child N, index int) error

	// MoveChild moves the child at from so that it ends up at to.
	MoveChild(parent N, from, to int) error
}

// Common reconciliation errors.
var (
	ErrAbsentNode         = errors.New("reconcile: cannot materialize an absent node")
	ErrNotHandler         = errors.New("reconcile: event attribute is not a handler")
	ErrReorderUnsupported = errors.New("reconcile: host does not support reordering")
)
