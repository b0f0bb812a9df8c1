package server

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/middleware"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/remote"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Title}}</title></head>
<body><div id="root">{{.Body}}</div></body>
</html>
`))

// Server serves one live document to any number of clients.
type Server struct {
	config   *Config
	doc      *dom.Document
	streamer *remote.Streamer
	logger   *slog.Logger

	metrics  *middleware.Metrics
	gatherer prometheus.Gatherer

	upgrader websocket.Upgrader
	handler  http.Handler

	mu         sync.Mutex
	clients    map[*client]struct{}
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithConfig replaces the default configuration.
func WithConfig(c *Config) Option {
	return func(s *Server) {
		s.config = c
	}
}

// WithLogger sets the logger (default slog.Default()).
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics records connection and frame metrics in m and serves
// gatherer at GET /metrics. A nil gatherer serves the default registry.
func WithMetrics(m *middleware.Metrics, gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		if gatherer == nil {
			gatherer = prometheus.DefaultGatherer
		}
		s.gatherer = gatherer
	}
}

// New creates a Server for doc. streamer must stream doc.
func New(doc *dom.Document, streamer *remote.Streamer, opts ...Option) *Server {
	s := &Server{
		config:   DefaultConfig(),
		doc:      doc,
		streamer: streamer,
		clients:  make(map[*client]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "server")
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     s.config.CheckOrigin,
	}
	s.handler = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(s.logRequests)
	r.Use(chimw.Recoverer)

	r.Get("/", s.handlePage)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// logRequests logs each request at debug level once it completes.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := page.Execute(w, struct {
		Title string
		Body  template.HTML
	}{s.config.Title, template.HTML(s.doc.HTML())})
	if err != nil {
		s.logger.Error("page render failed", "error", err)
	}
}

// Broadcast queues pf for every connected client. It is the send function
// for remote.Streamer.Middleware and never blocks: a client whose queue is
// full is disconnected.
func (s *Server) Broadcast(pf *protocol.PatchesFrame) {
	frames, err := protocol.PatchFrames(pf)
	if err != nil {
		s.logger.Error("encode patches failed", "seq", pf.Seq, "error", err)
		return
	}
	msgs := make([][]byte, len(frames))
	for i, f := range frames {
		msgs[i] = f.Encode()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		for _, msg := range msgs {
			if !c.offer(msg) {
				s.logger.Warn("dropping slow client", "client", c.id, "seq", pf.Seq)
				s.recordError("slow_client")
				delete(s.clients, c)
				c.close()
				break
			}
		}
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// Run listens on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.config.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	srv := s.httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown disconnects every client and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	for c := range s.clients {
		delete(s.clients, c)
		c.close()
	}
	srv := s.httpServer
	s.mu.Unlock()

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}

func (s *Server) recordError(kind string) {
	if s.metrics != nil {
		s.metrics.RecordWebSocketError(kind)
	}
}
