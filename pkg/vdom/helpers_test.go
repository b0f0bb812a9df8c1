package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestConditionals(t *testing.T) {
	a, b := H(TagP, nil, "a"), H(TagP, nil, "b")

	if IfElse(true, a, b) != Node(a) || IfElse(false, a, b) != Node(b) {
		t.Error("IfElse picked the wrong branch")
	}
	if Unless(true, a) != nil || Unless(false, a) != Node(a) {
		t.Error("Unless")
	}

	called := false
	if When(false, func() Node { called = true; return a }) != nil || called {
		t.Error("When(false) evaluated its function")
	}
	if When(true, func() Node { return a }) != Node(a) {
		t.Error("When(true)")
	}

	var missing *Element
	if Either(missing, b) != Node(b) {
		t.Error("Either should skip a nil *Element")
	}
	if Either(a, b) != Node(a) {
		t.Error("Either(a, b)")
	}
}

func TestSwitch(t *testing.T) {
	idle, busy, other := Str("idle"), Str("busy"), Str("?")
	tests := []struct {
		value string
		want  Node
	}{
		{"idle", idle},
		{"busy", busy},
		{"stopped", other},
	}
	for _, tt := range tests {
		got := Switch(tt.value,
			Default[string](other),
			Case_("idle", Node(idle)),
			Case_("busy", Node(busy)),
		)
		if got != tt.want {
			t.Errorf("Switch(%q) = %v, want %v", tt.value, got, tt.want)
		}
	}
	if Switch(1, Case_(2, Node(idle))) != nil {
		t.Error("Switch without match or default should be nil")
	}
}

func TestRangeAndRepeat(t *testing.T) {
	got := Range([]string{"a", "", "c"}, func(s string, i int) Node {
		if s == "" {
			return nil
		}
		return Textf("%d:%s", i, s)
	})
	want := []Node{Str("0:a"), Str("2:c")}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(Leaf{})); diff != "" {
		t.Errorf("Range mismatch (-want +got):\n%s", diff)
	}

	if Repeat(0, func(int) Node { return Str("x") }) != nil {
		t.Error("Repeat(0) should be nil")
	}
	el := H(TagUl, nil, Repeat(3, func(i int) Node {
		var n *Element
		if i != 1 {
			n = H(TagLi, nil, i)
		}
		return n
	}))
	if len(el.Children) != 2 {
		t.Errorf("Repeat kept %d children, want 2", len(el.Children))
	}
}
