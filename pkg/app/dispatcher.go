package app

import (
	"context"

	"github.com/vango-dev/vtree/pkg/vdom"
)

// Dispatcher binds actions to listeners inside a view.
type Dispatcher[S any] struct {
	submit func(job[S]) error
	ctx    func() context.Context
	state  func() S
}

// On returns a listener that dispatches action with payload.
func (d *Dispatcher[S]) On(action Action[S], payload ...any) vdom.Handler {
	name := actionName(action)
	return func(vdom.Event) {
		_ = d.submit(job[S]{
			ctx:  d.ctx(),
			name: name,
			apply: func(s S) (S, error) {
				return action(s, payload...), nil
			},
		})
	}
}

// OnValue returns a listener that dispatches action with the event's live
// value as the only payload.
func (d *Dispatcher[S]) OnValue(action Action[S]) vdom.Handler {
	name := actionName(action)
	return func(ev vdom.Event) {
		_ = d.submit(job[S]{
			ctx:  d.ctx(),
			name: name,
			apply: func(s S) (S, error) {
				return action(s, ev.Value), nil
			},
		})
	}
}

// Go returns a listener that runs action asynchronously and applies its
// result as a cycle. Failures are logged by the App.
func (d *Dispatcher[S]) Go(action AsyncAction[S], payload ...any) vdom.Handler {
	name := actionName(action)
	return func(vdom.Event) {
		ctx := d.ctx()
		from := d.state()
		go func() {
			update, err := action(ctx, from, payload...)
			_ = d.submit(job[S]{
				ctx:  ctx,
				name: name,
				apply: func(s S) (S, error) {
					if err != nil {
						return s, err
					}
					return update.apply(s)
				},
			})
		}()
	}
}
