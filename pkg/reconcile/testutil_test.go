package reconcile

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// fixture mounts a tree into a fresh journaling document.
type fixture struct {
	t       *testing.T
	doc     *dom.Document
	rec     *Recorder
	patcher *Patcher[*dom.Node]
	tree    vdom.Node
}

func newFixture(t *testing.T, tree vdom.Node, opts ...Option) *fixture {
	t.Helper()
	f := &fixture{t: t, doc: dom.New(dom.WithJournal()), rec: &Recorder{}}
	opts = append(opts, WithObserver(f.rec.Observe))
	f.patcher = New[*dom.Node](f.doc, opts...)
	if err := f.patcher.Mount(f.doc.Root(), tree); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	f.tree = tree
	f.reset()
	return f
}

// update patches the mounted tree to next and commits it.
func (f *fixture) update(next vdom.Node) {
	f.t.Helper()
	if err := f.patcher.Patch(f.doc.Root(), f.tree, next, 0); err != nil {
		f.t.Fatalf("Patch: %v", err)
	}
	f.tree = next
}

func (f *fixture) reset() {
	f.rec.Reset()
	f.doc.Drain()
	f.doc.ResetStats()
}

// freshHTML materializes tree into a new document.
func freshHTML(t *testing.T, tree vdom.Node) string {
	t.Helper()
	d := dom.New()
	if err := New[*dom.Node](d).Mount(d.Root(), tree); err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return d.HTML()
}

// hostOnly hides the Reorderer methods of the wrapped host.
type hostOnly struct {
	Host[*dom.Node]
}

func list(items ...string) *vdom.Element {
	children := make([]vdom.Node, 0, len(items))
	for _, it := range items {
		children = append(children, vdom.H(vdom.TagLi, nil, it))
	}
	return vdom.H(vdom.TagUl, nil, children)
}

func keyedList(items ...string) *vdom.Element {
	children := make([]vdom.Node, 0, len(items))
	for _, it := range items {
		children = append(children, vdom.H(vdom.TagLi, vdom.Attrs{"key": it}, it))
	}
	return vdom.H(vdom.TagUl, nil, children)
}
