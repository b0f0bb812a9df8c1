package main

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/middleware"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/snapshot"
)

// stack holds the cross-cutting pieces configured for an app.
type stack struct {
	cfg      *config.Config
	logger   *slog.Logger
	strategy reconcile.Strategy

	registry *prometheus.Registry
	metrics  *middleware.Metrics

	store      snapshot.Store
	closeStore func() error
}

func newStack(cfg *config.Config, logger *slog.Logger) (*stack, error) {
	strategy, err := cfg.Strategy()
	if err != nil {
		return nil, errors.New("VT020").Wrap(err)
	}
	s := &stack{cfg: cfg, logger: logger, strategy: strategy, closeStore: func() error { return nil }}

	if cfg.Metrics.Enabled {
		s.registry = prometheus.NewRegistry()
		s.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		s.metrics = middleware.NewMetrics(
			middleware.WithRegistry(s.registry),
			middleware.WithNamespace(cfg.Metrics.Namespace),
		)
	}

	store, closeStore, err := snapshot.Open(cfg.SnapshotOptions())
	if err != nil {
		return nil, errors.FromError(err, "VT030")
	}
	s.store, s.closeStore = store, closeStore
	return s, nil
}

// middleware returns the configured cycle middleware for an app rendering
// into doc, outermost first.
func (s *stack) middleware(doc *dom.Document) []app.Middleware {
	var mw []app.Middleware
	if s.cfg.Tracing.Enabled {
		mw = append(mw, middleware.OpenTelemetry(middleware.WithTracerName(s.cfg.Tracing.TracerName)))
	}
	if s.metrics != nil {
		mw = append(mw, middleware.Prometheus(s.metrics))
	}
	if s.store != nil {
		mw = append(mw, snapshot.Middleware(s.store, doc, s.logger))
	}
	return mw
}

func (s *stack) appOptions(doc *dom.Document) []app.Option {
	return []app.Option{
		app.WithLogger(s.logger),
		app.WithStrategy(s.strategy),
		app.WithMiddleware(s.middleware(doc)...),
	}
}

func (s *stack) Close() error {
	return s.closeStore()
}
