package middleware

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func increment(n int, _ ...any) int { return n + 1 }

func view(n int, _ *app.Dispatcher[int]) vdom.Node {
	if n < 0 {
		return vdom.H(vdom.TagDiv, nil, vdom.H("blink", nil))
	}
	return vdom.H(vdom.TagDiv, nil, vdom.H(vdom.TagP, nil, n))
}

func negate(n int, _ ...any) int { return -n - 1 }

// mountCounter mounts a counter app with mw and returns it.
func mountCounter(t *testing.T, mw ...app.Middleware) *app.App[int, *dom.Node] {
	t.Helper()
	doc := dom.New()
	a := app.New[int, *dom.Node](doc, doc.Root(), view, 0,
		app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		app.WithMiddleware(mw...),
	)
	if err := a.Mount(context.Background()); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return a
}
