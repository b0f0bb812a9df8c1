package demo

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
)

func quiet() app.Option {
	return app.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCounterView(t *testing.T) {
	doc := dom.New()
	a := app.New[Counter, *dom.Node](doc, doc.Root(), CounterView, Counter{}, quiet())
	if err := a.Mount(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got, want := doc.HTML(), `<div class="counter"><h1>Counter</h1><p class="count">0</p><button type="button">-</button><button type="button">+</button></div>`; got != want {
		t.Fatalf("HTML() = %s\nwant %s", got, want)
	}

	// "+" is the fourth child.
	if _, err := doc.DispatchPath([]int{0, 3}, "click"); err != nil {
		t.Fatal(err)
	}
	if got, want := doc.HTML(), `<div class="counter"><h1>Counter</h1><p class="count">1</p><button type="button">-</button><button type="button">+</button><button type="button">reset</button></div>`; got != want {
		t.Fatalf("HTML() = %s\nwant %s", got, want)
	}

	if _, err := doc.DispatchPath([]int{0, 4}, "click"); err != nil {
		t.Fatal(err)
	}
	if a.State().Count != 0 {
		t.Errorf("Count = %d after reset", a.State().Count)
	}
}

func TestTodoActions(t *testing.T) {
	s := Todo{}
	s = SetDraft(s, "  milk ")
	s = AddItem(s)
	s = SetDraft(s, "eggs")
	s = AddItem(s)
	s = AddItem(s) // blank draft is ignored
	before := s

	s = ToggleItem(s, 1)
	if before.Items[0].Done {
		t.Fatal("ToggleItem modified the previous state")
	}
	want := []Item{{ID: 1, Title: "milk", Done: true}, {ID: 2, Title: "eggs"}}
	if diff := cmp.Diff(want, s.Items); diff != "" {
		t.Errorf("Items mismatch (-want +got):\n%s", diff)
	}

	s = ClearDone(s)
	s = RemoveItem(s, 2)
	if len(s.Items) != 0 || s.NextID != 2 {
		t.Errorf("state = %+v", s)
	}
	if got := RemoveItem(s); len(got.Items) != 0 {
		t.Errorf("RemoveItem without payload = %+v", got)
	}
}

func TestTodoViewThroughListeners(t *testing.T) {
	for _, strategy := range []reconcile.Strategy{reconcile.Positional, reconcile.Keyed} {
		t.Run(strategy.String(), func(t *testing.T) {
			doc := dom.New()
			a := app.New[Todo, *dom.Node](doc, doc.Root(), TodoView, Todo{}, quiet(), app.WithStrategy(strategy))
			if err := a.Mount(context.Background()); err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(doc.HTML(), `<p class="left">nothing to do</p>`) {
				t.Errorf("empty list HTML() = %s", doc.HTML())
			}
			fire := func(path []int, event, value string) {
				t.Helper()
				dispatch := func() (int, error) { return doc.DispatchPath(path, event) }
				if event == "input" {
					dispatch = func() (int, error) { return doc.DispatchInput(path, event, value) }
				}
				if n, err := dispatch(); err != nil || n != 1 {
					t.Fatalf("DispatchPath(%v, %s) = %d, %v", path, event, n, err)
				}
			}

			for _, title := range []string{"a", "b", "c"} {
				fire([]int{0, 1}, "input", title)
				fire([]int{0, 2}, "click", "")
			}
			// Toggle "b", then remove "a".
			fire([]int{0, 3, 1, 1}, "click", "")
			fire([]int{0, 3, 0, 2}, "click", "")

			want := `<div class="todo"><h1>Todo</h1><input type="text" value=""><button type="button">add</button>` +
				`<ul><li class="done"><span>b</span><button type="button">toggle</button><button type="button">x</button></li>` +
				`<li><span>c</span><button type="button">toggle</button><button type="button">x</button></li></ul>` +
				`<p class="left">1 left</p></div>`
			if got := doc.HTML(); got != want {
				t.Errorf("HTML() =\n%s\nwant\n%s", got, want)
			}
		})
	}
}
