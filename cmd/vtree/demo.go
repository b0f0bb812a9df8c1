package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/protocol"
	"github.com/vango-dev/vtree/pkg/remote"
)

func demoCmd(flags *globalFlags) *cobra.Command {
	var (
		view     string
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Play a scripted session and print every cycle",
		Long: `Play a scripted sequence of actions against an example view.

For every cycle the command prints the patches streamed to clients and
the resulting HTML, and checks that a mirror rebuilt from the patch
stream matches the live tree.

Examples:
  vtree demo
  vtree demo --view counter
  vtree demo --strategy keyed`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags.configDir)
			if err != nil {
				return err
			}
			if strategy != "" {
				cfg.Render.Strategy = strategy
			}
			logger := newLogger(cfg.Log, cmd.ErrOrStderr(), cfg.LogLevel())
			st, err := newStack(cfg, logger)
			if err != nil {
				return err
			}
			defer st.Close()

			return runDemo(cmd.Context(), newPrinter(cmd.OutOrStdout()), st, view)
		},
	}

	cmd.Flags().StringVar(&view, "view", "todo", "View to play: todo or counter")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Override render.strategy: positional or keyed")

	return cmd
}

func runDemo(ctx context.Context, p *printer, st *stack, view string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	switch view {
	case "todo":
		return play(ctx, p, st, demo.TodoView, demo.Todo{}, []step[demo.Todo]{
			{demo.SetDraft, []any{"milk"}},
			{demo.AddItem, nil},
			{demo.SetDraft, []any{"eggs"}},
			{demo.AddItem, nil},
			{demo.SetDraft, []any{"bread"}},
			{demo.AddItem, nil},
			{demo.ToggleItem, []any{2}},
			{demo.RemoveItem, []any{1}},
			{demo.ClearDone, nil},
		})
	case "counter":
		return play(ctx, p, st, demo.CounterView, demo.Counter{}, []step[demo.Counter]{
			{demo.Increment, nil},
			{demo.Increment, nil},
			{demo.Decrement, nil},
			{demo.ResetCount, nil},
		})
	default:
		return fmt.Errorf("unknown view %q (want todo or counter)", view)
	}
}

type step[S any] struct {
	action  app.Action[S]
	payload []any
}

// play mounts view, runs steps and reports each cycle. A mirror fed only
// with encoded patch frames must match the live tree after every cycle.
func play[S any](ctx context.Context, p *printer, st *stack, view app.View[S], initial S, steps []step[S]) error {
	doc := dom.New(dom.WithJournal())
	streamer := remote.NewStreamer(doc)
	mirror := remote.NewMirror()
	if err := mirror.Apply(streamer.Snapshot()); err != nil {
		return err
	}

	var (
		last     *protocol.PatchesFrame
		diverged error
	)
	report := func(ctx context.Context, c *app.Cycle, next func(context.Context) error) error {
		last = nil
		if err := next(ctx); err != nil {
			return err
		}
		p.heading("cycle %d  %s", c.Seq, c.Action)
		if last == nil {
			p.info("no changes")
			return nil
		}
		for _, patch := range last.Patches {
			p.info("%s", patch)
		}
		if err := replay(mirror, last); err != nil && diverged == nil {
			diverged = fmt.Errorf("cycle %d: %w", c.Seq, err)
		}
		if diverged == nil && mirror.HTML() != doc.HTML() {
			diverged = fmt.Errorf("cycle %d: mirror diverged: %s", c.Seq, mirror.HTML())
		}
		p.info("html  %s", doc.HTML())
		return nil
	}

	opts := append(st.appOptions(doc),
		app.WithMiddleware(report, streamer.Middleware(func(pf *protocol.PatchesFrame) { last = pf })),
	)
	a := app.New[S, *dom.Node](doc, doc.Root(), view, initial, opts...)

	if err := a.Mount(ctx); err != nil {
		return err
	}
	for _, s := range steps {
		if err := a.Dispatch(ctx, s.action, s.payload...); err != nil {
			return err
		}
	}
	if diverged != nil {
		return diverged
	}

	stats := doc.Stats()
	p.success("%d cycles, mirror in sync (seq %d)", a.Seq(), mirror.Seq())
	p.info("host calls: %d created, %d mutations, %d listeners", stats.Created, stats.Mutations, stats.Listeners)
	return nil
}

// replay sends pf through the wire encoding into m.
func replay(m *remote.Mirror, pf *protocol.PatchesFrame) error {
	frames, err := protocol.PatchFrames(pf)
	if err != nil {
		return err
	}
	for _, f := range frames {
		decoded, err := protocol.DecodeFrame(f.Encode())
		if err != nil {
			return err
		}
		if err := m.ApplyFrame(decoded); err != nil {
			return err
		}
	}
	return nil
}
