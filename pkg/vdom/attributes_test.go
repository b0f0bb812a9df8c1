package vdom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttrsPlain(t *testing.T) {
	a := Attrs{
		"class":    "btn",
		"disabled": true,
		"tabindex": 2,
		"onclick":  Handler(func(Event) {}),
		"OnInput":  func(Event) {},
		"key":      "k",
	}
	want := map[string]string{"class": "btn", "disabled": "true", "tabindex": "2"}
	if diff := cmp.Diff(want, a.Plain()); diff != "" {
		t.Errorf("Plain() mismatch (-want +got):\n%s", diff)
	}
}

func TestAttrsEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Attrs
		want bool
	}{
		{"both nil", nil, nil, true},
		{"nil and empty", nil, Attrs{}, true},
		{"same", Attrs{"id": "x"}, Attrs{"id": "x"}, true},
		{"different value", Attrs{"id": "x"}, Attrs{"id": "y"}, false},
		{"extra key", Attrs{"id": "x"}, Attrs{"id": "x", "class": "c"}, false},
		{"missing key", Attrs{"id": "x", "class": "c"}, Attrs{"id": "x"}, false},
		{"only handlers differ", Attrs{"onclick": func() {}}, Attrs{}, true},
		{"slices", Attrs{"data": []string{"a"}}, Attrs{"data": []string{"a"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttrsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("AttrsEqual() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttrString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"s", "s"},
		{true, "true"},
		{false, "false"},
		{42, "42"},
		{int64(-1), "-1"},
		{1.5, "1.5"},
		{nil, ""},
		{uint(7), "7"},
	}
	for _, tt := range tests {
		if got := AttrString(tt.in); got != tt.want {
			t.Errorf("AttrString(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEventAttrs(t *testing.T) {
	tests := []struct {
		key   string
		event bool
		name  string
	}{
		{"onclick", true, "click"},
		{"onClick", true, "click"},
		{"ONINPUT", true, "input"},
		{"on", false, ""},
		{"one", true, "e"},
		{"class", false, ""},
	}
	for _, tt := range tests {
		if got := IsEventAttr(tt.key); got != tt.event {
			t.Errorf("IsEventAttr(%q) = %v, want %v", tt.key, got, tt.event)
		}
		if got := EventName(tt.key); got != tt.name {
			t.Errorf("EventName(%q) = %q, want %q", tt.key, got, tt.name)
		}
	}
	if EventAttr("click") != "onclick" {
		t.Error("EventAttr(click) != onclick")
	}
}

func TestAsHandler(t *testing.T) {
	calls := 0
	for _, v := range []any{
		Handler(func(Event) { calls++ }),
		func(Event) { calls++ },
		func() { calls++ },
	} {
		h, ok := AsHandler(v)
		if !ok {
			t.Fatalf("AsHandler(%T) not ok", v)
		}
		h(Event{Type: "click"})
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}

	if _, ok := AsHandler("alert(1)"); ok {
		t.Error("string should not be a handler")
	}
	var nilHandler Handler
	if _, ok := AsHandler(nilHandler); ok {
		t.Error("nil handler should not be ok")
	}
}
