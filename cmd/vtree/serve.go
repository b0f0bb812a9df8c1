package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/remote"
	"github.com/vango-dev/vtree/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		view string
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an example view over HTTP and WebSocket",
		Long: `Serve an example view.

GET /         current HTML of the live tree
GET /ws       patch stream and event intake
GET /metrics  Prometheus metrics (metrics.enabled)
GET /healthz  liveness

Examples:
  vtree serve
  vtree serve --view counter --port 9000
  VTREE_STRATEGY=keyed vtree serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configDir)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := newLogger(cfg.Log, cmd.ErrOrStderr(), cfg.LogLevel())
			st, err := newStack(cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := newServer(ctx, st, view)
			if err != nil {
				return err
			}
			p := newPrinter(cmd.OutOrStdout())
			p.success("serving %s on http://%s", view, cfg.Address())
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&view, "view", "todo", "View to serve: todo or counter")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from config)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from config)")

	return cmd
}

// newServer mounts view into a journaling document and returns a server
// streaming it.
func newServer(ctx context.Context, st *stack, view string) (*server.Server, error) {
	doc := dom.New(dom.WithJournal())
	streamer := remote.NewStreamer(doc)

	srvCfg := server.DefaultConfig()
	srvCfg.Address = st.cfg.Address()
	srvCfg.Title = st.cfg.Server.Title

	opts := []server.Option{server.WithConfig(srvCfg), server.WithLogger(st.logger)}
	if st.metrics != nil {
		opts = append(opts, server.WithMetrics(st.metrics, st.registry))
	}
	srv := server.New(doc, streamer, opts...)

	appOpts := append(st.appOptions(doc), app.WithMiddleware(streamer.Middleware(srv.Broadcast)))

	var mount func(context.Context) error
	switch view {
	case "todo":
		mount = app.New[demo.Todo, *dom.Node](doc, doc.Root(), demo.TodoView, demo.Todo{}, appOpts...).Mount
	case "counter":
		mount = app.New[demo.Counter, *dom.Node](doc, doc.Root(), demo.CounterView, demo.Counter{}, appOpts...).Mount
	default:
		return nil, fmt.Errorf("unknown view %q (want todo or counter)", view)
	}
	if err := mount(ctx); err != nil {
		return nil, err
	}
	return srv, nil
}
