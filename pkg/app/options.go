package app

import (
	"log/slog"

	"github.com/vango-dev/vtree/pkg/reconcile"
)

type config struct {
	logger     *slog.Logger
	strategy   reconcile.Strategy
	observer   reconcile.Observer
	middleware []Middleware
}

// Option configures an App.
type Option func(*config)

// WithLogger sets the logger (default slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithStrategy sets the child reconciliation strategy.
func WithStrategy(s reconcile.Strategy) Option {
	return func(c *config) {
		c.strategy = s
	}
}

// WithObserver receives every change of every cycle.
func WithObserver(o reconcile.Observer) Option {
	return func(c *config) {
		c.observer = o
	}
}

// WithMiddleware appends cycle middleware.
func WithMiddleware(mw ...Middleware) Option {
	return func(c *config) {
		c.middleware = append(c.middleware, mw...)
	}
}
