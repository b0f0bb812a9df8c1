// Package app drives render cycles for a state-driven view.
//
// An App owns the current state, the last committed virtual tree and a
// reconcile.Patcher bound to a host. Every Dispatch applies an action to
// the state, renders the view and patches the live tree, one cycle at a
// time:
//
//	counter := app.New(doc, doc.Root(), view, 0)
//	if err := counter.Mount(ctx); err != nil {
//	    return err
//	}
//	err := counter.Dispatch(ctx, func(n int, _ ...any) int { return n + 1 })
//
// Dispatches issued while a cycle is running, including those fired
// synchronously by listeners, are queued and run after the running cycle
// commits. Views bind listeners through the Dispatcher they receive.
package app
