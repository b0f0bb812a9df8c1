package dom

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Dispatch fires the listeners bound to n for event, in registration order,
// and returns how many ran. Listeners run without the document lock held.
func (d *Document) Dispatch(n *Node, event string) (int, error) {
	d.mu.RLock()
	if err := checkElement(n); err != nil {
		d.mu.RUnlock()
		return 0, err
	}
	handlers := append([]vdom.Handler(nil), n.listeners[event]...)
	ev := vdom.Event{Type: event, Value: n.liveValue()}
	d.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
	return len(handlers), nil
}

// DispatchPath resolves path and fires event there without touching the
// live value.
func (d *Document) DispatchPath(path []int, event string) (int, error) {
	n, err := d.NodeAt(path)
	if err != nil {
		return 0, err
	}
	return d.Dispatch(n, event)
}

// DispatchInput is DispatchPath for an edit: value, which may be empty, is
// written to the live value property first, as a user edit would. Such
// edits are not journaled.
func (d *Document) DispatchInput(path []int, event, value string) (int, error) {
	n, err := d.NodeAt(path)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	if n.Type != ElementNode {
		d.mu.Unlock()
		return 0, fmt.Errorf("%w: path %v", ErrNotElement, path)
	}
	n.value = value
	n.valueSet = true
	d.mu.Unlock()
	return d.Dispatch(n, event)
}
