package reconcile

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// config holds Patcher options.
type config struct {
	strategy Strategy
	observer Observer
}

// Option configures a Patcher.
type Option func(*config)

// WithStrategy sets the child reconciliation strategy (default Positional).
func WithStrategy(s Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithObserver registers an observer that receives every visited position.
func WithObserver(o Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// Patcher brings a live tree in sync with a new virtual tree.
//
// A Patcher holds no per-cycle state and may be reused. It is not safe for
// concurrent use on the same live tree; callers serialize patch cycles.
type Patcher[N any] struct {
	host     Host[N]
	strategy Strategy
	observer Observer
}

// New creates a Patcher for host.
func New[N any](host Host[N], opts ...Option) *Patcher[N] {
	cfg := config{strategy: Positional}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Patcher[N]{
		host:     host,
		strategy: cfg.strategy,
		observer: cfg.observer,
	}
}

// Strategy returns the configured child strategy.
func (p *Patcher[N]) Strategy() Strategy {
	return p.strategy
}

// Mount materializes tree and appends it to container.
func (p *Patcher[N]) Mount(container N, tree vdom.Node) error {
	return p.patch(container, nil, tree, 0, []int{0})
}

// Patch updates the live child at index of parent from prev to next.
//
// An absent prev node appends the materialized next node; an absent next node
// removes the live child at index. Otherwise the pair is classified and
// the matching mutation is applied, then children are patched unless the
// whole subtree was replaced. The walk stops at the first host error,
// leaving the live tree partially updated.
func (p *Patcher[N]) Patch(parent N, prev, next vdom.Node, index int) error {
	return p.patch(parent, prev, next, index, []int{index})
}

func (p *Patcher[N]) patch(parent N, prev, next vdom.Node, index int, path []int) error {
	prevAbsent, nextAbsent := vdom.IsAbsent(prev), vdom.IsAbsent(next)

	switch {
	case prevAbsent && nextAbsent:
		return nil

	case prevAbsent:
		live, err := Materialize(p.host, next)
		if err != nil {
			return err
		}
		if err := p.host.AppendChild(parent, live); err != nil {
			return fmt.Errorf("reconcile: append %v: %w", path, err)
		}
		p.emit(path, vdom.None, OpAppend)
		return nil

	case nextAbsent:
		if err := p.host.RemoveChild(parent, index); err != nil {
			return fmt.Errorf("reconcile: remove %v: %w", path, err)
		}
		p.emit(path, vdom.None, OpRemove)
		return nil
	}

	kind := vdom.Classify(prev, next)
	if kind.Replaces() {
		live, err := Materialize(p.host, next)
		if err != nil {
			return err
		}
		if err := p.host.ReplaceChild(parent, live, index); err != nil {
			return fmt.Errorf("reconcile: replace %v: %w", path, err)
		}
		p.emit(path, kind, OpReplace)
		return nil
	}

	prevEl, isElement := prev.(*vdom.Element)
	if !isElement {
		// Equal leaves
		p.emit(path, kind, OpNone)
		return nil
	}
	nextEl := next.(*vdom.Element)

	target, err := p.host.ChildAt(parent, index)
	if err != nil {
		return fmt.Errorf("reconcile: child %v: %w", path, err)
	}

	op := OpNone
	switch kind {
	case vdom.ValueChanged:
		value, _ := nextEl.Attrs.Value()
		if err := p.host.SetValue(target, vdom.AttrString(value)); err != nil {
			return fmt.Errorf("reconcile: set value %v: %w", path, err)
		}
		op = OpSetValue
	case vdom.AttributesChanged:
		if err := updateAttributes(p.host, target, prevEl.Attrs, nextEl.Attrs); err != nil {
			return fmt.Errorf("reconcile: attributes %v: %w", path, err)
		}
		op = OpUpdateAttrs
	}
	p.emit(path, kind, op)

	before, after := present(prevEl.Children), present(nextEl.Children)
	if p.strategy == Keyed && (hasKeys(before) || hasKeys(after)) {
		return p.keyedChildren(target, before, after, path)
	}
	return p.positionalChildren(target, before, after, path)
}

// updateAttributes removes the previous plain attributes missing from the
// next map, then sets every next plain attribute. Event attributes are left alone.
func updateAttributes[N any](h Host[N], target N, prev, next vdom.Attrs) error {
	for _, key := range prev.SortedKeys() {
		if vdom.IsEventAttr(key) || key == vdom.KeyAttr {
			continue
		}
		if _, kept := next[key]; kept {
			continue
		}
		if err := h.RemoveAttribute(target, key); err != nil {
			return err
		}
	}
	for _, key := range next.SortedKeys() {
		if vdom.IsEventAttr(key) || key == vdom.KeyAttr {
			continue
		}
		if err := h.SetAttribute(target, key, vdom.AttrString(next[key])); err != nil {
			return err
		}
	}
	return nil
}

func (p *Patcher[N]) emit(path []int, kind vdom.ChangeKind, op Op) {
	if p.observer != nil {
		p.observer(Change{Path: path, Kind: kind, Op: op})
	}
}
