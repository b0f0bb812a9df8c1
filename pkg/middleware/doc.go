// Package middleware provides render cycle middleware for vtree apps.
//
// # Prometheus Metrics
//
// Prometheus records cycle counts, durations, mutation counts and change
// kinds. The same Metrics value records WebSocket frames for the server.
//
//	m := middleware.NewMetrics(middleware.WithNamespace("myapp"))
//	a := app.New(doc, doc.Root(), view, state,
//	    app.WithMiddleware(middleware.Prometheus(m)),
//	)
//
// # OpenTelemetry
//
// OpenTelemetry wraps every cycle in a span named "vtree.cycle <action>"
// carrying the cycle sequence, the action, and the mutation count.
//
//	middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-app"),
//	    middleware.WithCycleFilter(func(c *app.Cycle) bool {
//	        return !c.Mount
//	    }),
//	)
package middleware
