package reconcile

import (
	"errors"
	"testing"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestMaterialize(t *testing.T) {
	d := dom.New()
	tree := vdom.H(vdom.TagDiv, vdom.Attrs{"class": "hoge"},
		vdom.H(vdom.TagP, vdom.Attrs{"class": "foo"}, 1),
		vdom.H(vdom.TagButton, vdom.Attrs{
			"type":    "button",
			"onclick": vdom.Handler(func(vdom.Event) {}),
			"key":     "btn",
		}, "count up"),
	)

	live, err := Materialize[*dom.Node](d, tree)
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	want := `<div class="hoge"><p class="foo">1</p><button type="button">count up</button></div>`
	if got := live.OuterHTML(); got != want {
		t.Errorf("OuterHTML() = %s, want %s", got, want)
	}

	stats := d.Stats()
	if stats.Created != 5 {
		t.Errorf("Created = %d, want one per virtual node (5)", stats.Created)
	}
	if stats.Listeners != 1 {
		t.Errorf("Listeners = %d, want 1", stats.Listeners)
	}
	btn := live.Children()[1]
	if btn.ListenerCount("click") != 1 {
		t.Error("button should listen for click")
	}
	if _, ok := btn.Attr("onclick"); ok {
		t.Error("event attribute must not be written as an attribute")
	}
	if _, ok := btn.Attr("key"); ok {
		t.Error("key must not be written as an attribute")
	}
}

func TestMaterializeLeaf(t *testing.T) {
	d := dom.New()
	live, err := Materialize[*dom.Node](d, vdom.Num(2.5))
	if err != nil {
		t.Fatal(err)
	}
	if live.Type != dom.TextNode || live.Text != "2.5" {
		t.Errorf("live = %+v", live)
	}
}

func TestMaterializeErrors(t *testing.T) {
	var nilEl *vdom.Element
	tests := []struct {
		name string
		node vdom.Node
		want error
	}{
		{"unknown tag", vdom.H(vdom.TagDiv, nil, vdom.H("marquee", nil)), dom.ErrUnknownTag},
		{"string handler", vdom.H(vdom.TagButton, vdom.Attrs{"onclick": "alert(1)"}), ErrNotHandler},
		{"nil element", nilEl, ErrAbsentNode},
		{"nil node", nil, ErrAbsentNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Materialize[*dom.Node](dom.New(), tt.node)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestMaterializeSkipsNilHandler(t *testing.T) {
	d := dom.New()
	live, err := Materialize[*dom.Node](d, vdom.H(vdom.TagButton, vdom.Attrs{"onclick": nil}))
	if err != nil {
		t.Fatal(err)
	}
	if live.ListenerCount("click") != 0 {
		t.Error("nil handler should not be bound")
	}
}
