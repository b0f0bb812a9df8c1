package app

import (
	"context"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Cycle describes one render and patch pass. Middleware sees it before and
// after the pass runs.
type Cycle struct {
	// Seq numbers committed cycles starting at 1 for the mount.
	Seq uint64

	// Action is the name of the dispatched action, or "mount".
	Action string

	// Mount is true for the first cycle.
	Mount bool

	// Prev is the last committed tree (nil when mounting).
	Prev vdom.Node

	// Tree is the freshly rendered tree, set once the view has run.
	Tree vdom.Node

	// Changes tallies visited positions by kind.
	Changes map[vdom.ChangeKind]int

	// Mutations counts positions that touched the live tree.
	Mutations int
}

func (c *Cycle) observe(ch reconcile.Change) {
	if c.Changes == nil {
		c.Changes = make(map[vdom.ChangeKind]int)
	}
	c.Changes[ch.Kind]++
	if ch.Mutates() {
		c.Mutations++
	}
}

// Middleware wraps a cycle. It must call next to render and patch, and
// may act before and after it.
type Middleware func(ctx context.Context, c *Cycle, next func(context.Context) error) error

// chain builds the handler that runs middleware in registration order
// around final.
func chain(mw []Middleware, c *Cycle, final func(context.Context) error) func(context.Context) error {
	h := final
	for i := len(mw) - 1; i >= 0; i-- {
		m, next := mw[i], h
		h = func(ctx context.Context) error {
			return m(ctx, c, next)
		}
	}
	return h
}
