// Package server serves a live dom.Document over HTTP.
//
// GET / returns the current HTML of the tree inside a minimal page. GET /ws
// upgrades to a WebSocket: the client first receives a Reset patches frame
// rebuilding the whole tree, then one patches frame per committed cycle.
// Event frames sent by the client are dispatched to the listeners bound on
// the live tree, which in turn dispatch actions to the app.
//
// Wiring:
//
//	doc := dom.New(dom.WithJournal())
//	streamer := remote.NewStreamer(doc)
//	srv := server.New(doc, streamer, server.WithLogger(logger))
//	a := app.New[State, *dom.Node](doc, doc.Root(), view, initial,
//	    app.WithMiddleware(streamer.Middleware(srv.Broadcast)),
//	)
//	a.Mount(ctx)
//	srv.Run(ctx)
//
// GET /healthz reports liveness and GET /metrics exposes Prometheus metrics
// when WithMetrics is given.
package server
