package dom

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Common document errors.
var (
	ErrUnknownTag      = errors.New("dom: unknown element tag")
	ErrNotElement      = errors.New("dom: node is not an element")
	ErrNilNode         = errors.New("dom: nil node")
	ErrIndexOutOfRange = errors.New("dom: child index out of range")
	ErrCycle           = errors.New("dom: node cannot contain itself")
)

// Option configures a Document.
type Option func(*Document)

// WithJournal enables the mutation journal.
func WithJournal() Option {
	return func(d *Document) {
		d.journaling = true
	}
}

// WithRootTag sets the tag of the root container (default "body").
func WithRootTag(tag string) Option {
	return func(d *Document) {
		d.root.Tag = tag
	}
}

// Document is an in-memory live display tree.
// All methods are safe for concurrent use; listeners run without the lock
// held so they may patch the document.
type Document struct {
	mu         sync.RWMutex
	root       *Node
	journaling bool
	journal    []Mutation
	stats      Stats
}

// New creates a Document with an empty root container.
func New(opts ...Option) *Document {
	d := &Document{root: newElement(string(vdom.TagBody))}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Root returns the root container.
func (d *Document) Root() *Node {
	return d.root
}

// CreateElement creates an element. Only known element kinds are accepted.
func (d *Document) CreateElement(tag string) (*Node, error) {
	if !vdom.Tag(tag).Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, tag)
	}
	d.mu.Lock()
	d.stats.Created++
	d.mu.Unlock()
	return newElement(tag), nil
}

// CreateTextNode creates a text node.
func (d *Document) CreateTextNode(text string) *Node {
	d.mu.Lock()
	d.stats.Created++
	d.mu.Unlock()
	return newText(text)
}

// SetAttribute sets an attribute on an element.
func (d *Document) SetAttribute(n *Node, name, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkElement(n); err != nil {
		return err
	}
	n.attrs[name] = value
	d.stats.Mutations++
	d.record(n, Mutation{Op: MutSetAttr, Name: name, Value: value})
	return nil
}

// RemoveAttribute removes an attribute from an element.
func (d *Document) RemoveAttribute(n *Node, name string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkElement(n); err != nil {
		return err
	}
	delete(n.attrs, name)
	d.stats.Mutations++
	d.record(n, Mutation{Op: MutRemoveAttr, Name: name})
	return nil
}

// AppendChild appends child to parent, detaching it from any previous parent.
func (d *Document) AppendChild(parent, child *Node) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkAdopt(parent, child); err != nil {
		return err
	}
	child.detach()
	child.parent = parent
	parent.children = append(parent.children, child)
	d.stats.Mutations++
	d.record(parent, Mutation{Op: MutAppend, Index: len(parent.children) - 1, Node: child})
	return nil
}

// InsertChild inserts child so that it ends up at index.
func (d *Document) InsertChild(parent, child *Node, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkAdopt(parent, child); err != nil {
		return err
	}
	if index < 0 || index > len(parent.children) {
		return fmt.Errorf("%w: insert at %d of %d", ErrIndexOutOfRange, index, len(parent.children))
	}
	child.detach()
	parent.children = append(parent.children, nil)
	copy(parent.children[index+1:], parent.children[index:])
	parent.children[index] = child
	child.parent = parent
	d.stats.Mutations++
	d.record(parent, Mutation{Op: MutInsert, Index: index, Node: child})
	return nil
}

// ReplaceChild replaces the child at index with child.
func (d *Document) ReplaceChild(parent, child *Node, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkAdopt(parent, child); err != nil {
		return err
	}
	if index < 0 || index >= len(parent.children) {
		return fmt.Errorf("%w: replace %d of %d", ErrIndexOutOfRange, index, len(parent.children))
	}
	child.detach()
	parent.children[index].parent = nil
	parent.children[index] = child
	child.parent = parent
	d.stats.Mutations++
	d.record(parent, Mutation{Op: MutReplace, Index: index, Node: child})
	return nil
}

// RemoveChild removes the child at index.
func (d *Document) RemoveChild(parent *Node, index int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkElement(parent); err != nil {
		return err
	}
	if index < 0 || index >= len(parent.children) {
		return fmt.Errorf("%w: remove %d of %d", ErrIndexOutOfRange, index, len(parent.children))
	}
	parent.children[index].detach()
	d.stats.Mutations++
	d.record(parent, Mutation{Op: MutRemove, Index: index})
	return nil
}

// MoveChild moves the child at from so that it ends up at to.
func (d *Document) MoveChild(parent *Node, from, to int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkElement(parent); err != nil {
		return err
	}
	n := len(parent.children)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d->%d of %d", ErrIndexOutOfRange, from, to, n)
	}
	child := parent.children[from]
	parent.children = append(parent.children[:from], parent.children[from+1:]...)
	parent.children = append(parent.children, nil)
	copy(parent.children[to+1:], parent.children[to:])
	parent.children[to] = child
	d.stats.Mutations++
	d.record(parent, Mutation{Op: MutMove, Index: from, To: to})
	return nil
}

// ChildAt returns the child at index.
func (d *Document) ChildAt(parent *Node, index int) (*Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if parent == nil {
		return nil, ErrNilNode
	}
	if index < 0 || index >= len(parent.children) {
		return nil, fmt.Errorf("%w: child %d of %d", ErrIndexOutOfRange, index, len(parent.children))
	}
	return parent.children[index], nil
}

// AddEventListener binds h to the named event.
func (d *Document) AddEventListener(n *Node, event string, h vdom.Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkElement(n); err != nil {
		return err
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]vdom.Handler)
	}
	n.listeners[event] = append(n.listeners[event], h)
	d.stats.Mutations++
	d.stats.Listeners++
	return nil
}

// SetValue writes the live value property.
func (d *Document) SetValue(n *Node, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := checkElement(n); err != nil {
		return err
	}
	n.value = value
	n.valueSet = true
	d.stats.Mutations++
	d.record(n, Mutation{Op: MutSetValue, Value: value})
	return nil
}

// Value reads the live value property.
func (d *Document) Value(n *Node) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := checkElement(n); err != nil {
		return "", err
	}
	return n.liveValue(), nil
}

// NodeAt resolves an index path from the root.
func (d *Document) NodeAt(path []int) (*Node, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cur := d.root
	for depth, i := range path {
		if i < 0 || i >= len(cur.children) {
			return nil, fmt.Errorf("%w: path %v at depth %d", ErrIndexOutOfRange, path, depth)
		}
		cur = cur.children[i]
	}
	return cur, nil
}

// Snapshot returns detached deep copies of the root's children.
func (d *Document) Snapshot() []*Node {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*Node, len(d.root.children))
	for i, c := range d.root.children {
		out[i] = c.clone()
	}
	return out
}

// Path returns the index path of n from the root, and whether n is attached.
func (d *Document) Path(n *Node) ([]int, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	path, top := n.path()
	return path, top == d.root
}

func checkElement(n *Node) error {
	if n == nil {
		return ErrNilNode
	}
	if n.Type != ElementNode {
		return ErrNotElement
	}
	return nil
}

func checkAdopt(parent, child *Node) error {
	if err := checkElement(parent); err != nil {
		return err
	}
	if child == nil {
		return ErrNilNode
	}
	for p := parent; p != nil; p = p.parent {
		if p == child {
			return ErrCycle
		}
	}
	return nil
}
