package dom

import "fmt"

// MutationOp is the kind of a journaled mutation.
type MutationOp uint8

const (
	MutSetAttr MutationOp = iota + 1
	MutRemoveAttr
	MutSetValue
	MutAppend
	MutInsert
	MutReplace
	MutRemove
	MutMove
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case MutSetAttr:
		return "SetAttr"
	case MutRemoveAttr:
		return "RemoveAttr"
	case MutSetValue:
		return "SetValue"
	case MutAppend:
		return "Append"
	case MutInsert:
		return "Insert"
	case MutReplace:
		return "Replace"
	case MutRemove:
		return "Remove"
	case MutMove:
		return "Move"
	default:
		return "Unknown"
	}
}

// Mutation is one change to the attached tree.
type Mutation struct {
	Op MutationOp

	// Path addresses the target element for attribute and value
	// mutations, and the parent element for child mutations. The root is
	// the empty path.
	Path []int

	Index int    // Child index (Insert, Replace, Remove) or move source
	To    int    // Move destination
	Name  string // Attribute name
	Value string // Attribute or live value

	// Node is a detached snapshot of the attached subtree (Append, Insert,
	// Replace).
	Node *Node
}

// String implements fmt.Stringer.
func (m Mutation) String() string {
	switch m.Op {
	case MutSetAttr:
		return fmt.Sprintf("%s %v %s=%q", m.Op, m.Path, m.Name, m.Value)
	case MutRemoveAttr:
		return fmt.Sprintf("%s %v %s", m.Op, m.Path, m.Name)
	case MutSetValue:
		return fmt.Sprintf("%s %v %q", m.Op, m.Path, m.Value)
	case MutMove:
		return fmt.Sprintf("%s %v %d->%d", m.Op, m.Path, m.Index, m.To)
	case MutAppend:
		return fmt.Sprintf("%s %v", m.Op, m.Path)
	default:
		return fmt.Sprintf("%s %v @%d", m.Op, m.Path, m.Index)
	}
}

// Stats counts host calls made against a Document.
type Stats struct {
	Created   int // CreateElement and CreateTextNode calls
	Mutations int // Calls that changed any node, attached or not
	Listeners int // AddEventListener calls
}

// record journals m when n is attached to the root and journaling is on.
// Callers hold d.mu.
func (d *Document) record(n *Node, m Mutation) {
	if !d.journaling {
		return
	}
	path, top := n.path()
	if top != d.root {
		return
	}
	m.Path = path
	if m.Node != nil {
		m.Node = m.Node.clone()
	}
	d.journal = append(d.journal, m)
}

// Drain returns the journal collected since the last call and clears it.
func (d *Document) Drain() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.journal
	d.journal = nil
	return out
}

// Stats returns the host call counters.
func (d *Document) Stats() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.stats
}

// ResetStats zeroes the host call counters.
func (d *Document) ResetStats() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = Stats{}
}
