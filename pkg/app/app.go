package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

var (
	// ErrNotMounted is returned by Dispatch before Mount.
	ErrNotMounted = errors.New("app: not mounted")

	// ErrMounted is returned by a second Mount.
	ErrMounted = errors.New("app: already mounted")
)

// View renders state into a tree. Listeners are bound through d.
type View[S any] func(state S, d *Dispatcher[S]) vdom.Node

// Action returns the next state.
type Action[S any] func(state S, payload ...any) S

// Update turns the state current when it is applied into the next state.
type Update[S any] func(state S) S

// AsyncAction runs off the cycle goroutine against a snapshot of the state.
// The Update it returns is applied through the same queue as synchronous
// actions, to the state committed at that point, so cycles that committed
// while it ran are preserved. A nil Update leaves the state unchanged.
type AsyncAction[S any] func(ctx context.Context, state S, payload ...any) (Update[S], error)

func (u Update[S]) apply(s S) (S, error) {
	if u == nil {
		return s, nil
	}
	return u(s), nil
}

// job is one queued state transition.
type job[S any] struct {
	ctx   context.Context
	name  string
	mount bool
	apply func(S) (S, error)
	done  chan<- error
}

// App owns state, the committed tree and the patcher for one live container.
type App[S any, N any] struct {
	container  N
	view       View[S]
	patcher    *reconcile.Patcher[N]
	observer   reconcile.Observer
	middleware []Middleware
	logger     *slog.Logger
	dispatcher *Dispatcher[S]

	// Queue state.
	mu      sync.Mutex
	queue   []job[S]
	running bool
	mounted bool
	baseCtx context.Context

	// Committed state, written only by the goroutine running the queue.
	stateMu sync.RWMutex
	state   S
	tree    vdom.Node
	seq     uint64

	current *Cycle
}

// New creates an App that renders view into container through host.
func New[S any, N any](host reconcile.Host[N], container N, view View[S], initial S, opts ...Option) *App[S, N] {
	cfg := config{strategy: reconcile.Positional}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	a := &App[S, N]{
		container:  container,
		view:       view,
		observer:   cfg.observer,
		middleware: cfg.middleware,
		logger:     cfg.logger,
		state:      initial,
		baseCtx:    context.Background(),
	}
	a.patcher = reconcile.New(host,
		reconcile.WithStrategy(cfg.strategy),
		reconcile.WithObserver(a.observe),
	)
	a.dispatcher = &Dispatcher[S]{submit: a.submit, ctx: a.context, state: a.State}
	return a
}

// Use appends cycle middleware. It applies from the next cycle on.
func (a *App[S, N]) Use(mw ...Middleware) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.middleware = append(a.middleware, mw...)
}

// Mount renders the initial state and appends the tree to the container.
// ctx is also the base context for actions dispatched by listeners.
func (a *App[S, N]) Mount(ctx context.Context) error {
	a.mu.Lock()
	if a.mounted {
		a.mu.Unlock()
		return ErrMounted
	}
	a.mounted = true
	a.baseCtx = ctx
	a.mu.Unlock()

	return a.submit(job[S]{
		ctx:   ctx,
		name:  "mount",
		mount: true,
		apply: func(s S) (S, error) { return s, nil },
	})
}

// Dispatch applies action to the current state and runs one cycle.
//
// When no cycle is running the cycle runs on the calling goroutine and its
// error is returned. Otherwise the action is queued behind the running
// cycle and Dispatch returns nil; a queued cycle that fails is logged.
func (a *App[S, N]) Dispatch(ctx context.Context, action Action[S], payload ...any) error {
	return a.submit(job[S]{
		ctx:  ctx,
		name: actionName(action),
		apply: func(s S) (S, error) {
			return action(s, payload...), nil
		},
	})
}

// Go runs action on a new goroutine and applies its result as a cycle.
// The returned channel receives the cycle error (nil when queued or
// committed) and is then closed.
func (a *App[S, N]) Go(ctx context.Context, action AsyncAction[S], payload ...any) <-chan error {
	done := make(chan error, 1)
	from := a.State()
	name := actionName(action)
	go func() {
		update, err := action(ctx, from, payload...)
		if err != nil {
			a.logger.Error("async action failed", "action", name, "error", err)
			done <- err
			close(done)
			return
		}
		err = a.submit(job[S]{
			ctx:   ctx,
			name:  name,
			apply: update.apply,
		})
		done <- err
		close(done)
	}()
	return done
}

// State returns the committed state.
func (a *App[S, N]) State() S {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.state
}

// Tree returns the last committed tree.
func (a *App[S, N]) Tree() vdom.Node {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.tree
}

// Seq returns the number of committed cycles.
func (a *App[S, N]) Seq() uint64 {
	a.stateMu.RLock()
	defer a.stateMu.RUnlock()
	return a.seq
}

// Patcher returns the patcher used for every cycle.
func (a *App[S, N]) Patcher() *reconcile.Patcher[N] {
	return a.patcher
}

func (a *App[S, N]) context() context.Context {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.baseCtx
}

// submit runs j now, or queues it when a cycle is already running. The
// goroutine that finds the queue idle drains it.
func (a *App[S, N]) submit(j job[S]) error {
	a.mu.Lock()
	if !a.mounted {
		a.mu.Unlock()
		return ErrNotMounted
	}
	if a.running {
		a.queue = append(a.queue, j)
		a.mu.Unlock()
		return nil
	}
	a.running = true
	a.mu.Unlock()

	err := a.run(j)
	for {
		a.mu.Lock()
		if len(a.queue) == 0 {
			a.running = false
			a.mu.Unlock()
			return err
		}
		queued := a.queue[0]
		a.queue = a.queue[1:]
		a.mu.Unlock()

		_ = a.run(queued)
	}
}

// run performs one cycle and commits it when the patcher succeeds.
func (a *App[S, N]) run(j job[S]) (err error) {
	a.stateMu.RLock()
	prevState, prevTree, seq := a.state, a.tree, a.seq+1
	a.stateMu.RUnlock()

	cycle := &Cycle{Seq: seq, Action: j.name, Mount: j.mount, Prev: prevTree}

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("cycle panic",
				"seq", seq,
				"action", j.name,
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("app: cycle %d (%s): panic: %v", seq, j.name, r)
		}
		a.current = nil
	}()

	next, err := j.apply(prevState)
	if err != nil {
		a.logger.Error("action failed", "seq", seq, "action", j.name, "error", err)
		return fmt.Errorf("app: cycle %d (%s): %w", seq, j.name, err)
	}

	render := func(ctx context.Context) error {
		tree := a.view(next, a.dispatcher)
		cycle.Tree = tree
		a.current = cycle
		if j.mount {
			return a.patcher.Mount(a.container, tree)
		}
		return a.patcher.Patch(a.container, prevTree, tree, 0)
	}

	a.mu.Lock()
	mw := a.middleware
	a.mu.Unlock()

	if err := chain(mw, cycle, render)(j.ctx); err != nil {
		a.logger.Error("cycle failed", "seq", seq, "action", j.name, "error", err)
		return fmt.Errorf("app: cycle %d (%s): %w", seq, j.name, err)
	}

	a.stateMu.Lock()
	a.state = next
	a.tree = cycle.Tree
	a.seq = seq
	a.stateMu.Unlock()

	a.logger.Debug("cycle committed",
		"seq", seq,
		"action", j.name,
		"mutations", cycle.Mutations)
	return nil
}

func (a *App[S, N]) observe(c reconcile.Change) {
	if a.current != nil {
		a.current.observe(c)
	}
	if a.observer != nil {
		a.observer(c)
	}
}

// actionName derives a label from a function value.
func actionName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return "action"
	}
	name := runtime.FuncForPC(v.Pointer()).Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
