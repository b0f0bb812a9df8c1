// Package demo holds the example views served and scripted by the vtree
// command.
package demo

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vtree/pkg/app"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Counter is the state of the counter view.
type Counter struct {
	Count int
}

func Increment(s Counter, _ ...any) Counter { return Counter{s.Count + 1} }
func Decrement(s Counter, _ ...any) Counter { return Counter{s.Count - 1} }
func ResetCount(Counter, ...any) Counter    { return Counter{} }

// CounterView renders a count with buttons to change it.
func CounterView(s Counter, d *app.Dispatcher[Counter]) vdom.Node {
	return vdom.H(vdom.TagDiv, vdom.Attrs{"class": "counter"},
		vdom.H(vdom.TagH1, nil, "Counter"),
		vdom.H(vdom.TagP, vdom.Attrs{"class": "count"}, s.Count),
		vdom.H(vdom.TagButton, vdom.Attrs{"type": "button", "onclick": d.On(Decrement)}, "-"),
		vdom.H(vdom.TagButton, vdom.Attrs{"type": "button", "onclick": d.On(Increment)}, "+"),
		vdom.If(s.Count != 0,
			vdom.H(vdom.TagButton, vdom.Attrs{"type": "button", "onclick": d.On(ResetCount)}, "reset"),
		),
	)
}

// Item is one todo entry. ID is stable across edits and keys the list item.
type Item struct {
	ID    int
	Title string
	Done  bool
}

// Todo is the state of the todo view. Actions never modify Items in place.
type Todo struct {
	Draft  string
	Items  []Item
	NextID int
}

// SetDraft stores the input's value, passed as the first payload.
func SetDraft(s Todo, payload ...any) Todo {
	if len(payload) > 0 {
		if v, ok := payload[0].(string); ok {
			s.Draft = v
		}
	}
	return s
}

// AddItem appends the draft as a new item and clears it. A blank draft is
// ignored.
func AddItem(s Todo, _ ...any) Todo {
	title := strings.TrimSpace(s.Draft)
	if title == "" {
		return s
	}
	s.NextID++
	items := make([]Item, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	s.Items = append(items, Item{ID: s.NextID, Title: title})
	s.Draft = ""
	return s
}

// ToggleItem flips Done on the item whose ID is the first payload.
func ToggleItem(s Todo, payload ...any) Todo {
	id := itemID(payload)
	items := make([]Item, len(s.Items))
	for i, it := range s.Items {
		if it.ID == id {
			it.Done = !it.Done
		}
		items[i] = it
	}
	s.Items = items
	return s
}

// RemoveItem drops the item whose ID is the first payload.
func RemoveItem(s Todo, payload ...any) Todo {
	id := itemID(payload)
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	s.Items = items
	return s
}

// ClearDone drops every finished item.
func ClearDone(s Todo, _ ...any) Todo {
	items := make([]Item, 0, len(s.Items))
	for _, it := range s.Items {
		if !it.Done {
			items = append(items, it)
		}
	}
	s.Items = items
	return s
}

func itemID(payload []any) int {
	if len(payload) == 0 {
		return 0
	}
	id, _ := payload[0].(int)
	return id
}

// TodoView renders the todo list. List items carry their ID as key.
func TodoView(s Todo, d *app.Dispatcher[Todo]) vdom.Node {
	left := 0
	for _, it := range s.Items {
		if !it.Done {
			left++
		}
	}

	return vdom.H(vdom.TagDiv, vdom.Attrs{"class": "todo"},
		vdom.H(vdom.TagH1, nil, "Todo"),
		vdom.H(vdom.TagInput, vdom.Attrs{"type": "text", "value": s.Draft, "oninput": d.OnValue(SetDraft)}),
		vdom.H(vdom.TagButton, vdom.Attrs{"type": "button", "onclick": d.On(AddItem)}, "add"),
		vdom.H(vdom.TagUl, nil, vdom.Map(s.Items, func(it Item) vdom.Node {
			attrs := vdom.Attrs{"key": it.ID}
			if it.Done {
				attrs["class"] = "done"
			}
			return vdom.H(vdom.TagLi, attrs,
				vdom.H(vdom.TagSpan, nil, it.Title),
				vdom.H(vdom.TagButton, vdom.Attrs{"type": "button", "onclick": d.On(ToggleItem, it.ID)}, "toggle"),
				vdom.H(vdom.TagButton, vdom.Attrs{"type": "button", "onclick": d.On(RemoveItem, it.ID)}, "x"),
			)
		})),
		vdom.IfElse(len(s.Items) == 0,
			vdom.H(vdom.TagP, vdom.Attrs{"class": "left"}, "nothing to do"),
			vdom.H(vdom.TagP, vdom.Attrs{"class": "left"}, fmt.Sprintf("%d left", left)),
		),
	)
}
