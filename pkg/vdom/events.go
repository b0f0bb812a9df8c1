package vdom

import "strings"

// Event is delivered to a Handler when a live listener fires.
type Event struct {
	Type  string // Event name without the "on" prefix, e.g. "click"
	Value string // Live value of the target control, if any
}

// Handler is an event callback bound through an "on*" attribute.
type Handler func(Event)

// IsEventAttr returns true if the key is an event attribute (starts with "on").
// Case-insensitive to catch onclick, ONCLICK, onClick, OnLoad, etc.
func IsEventAttr(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// EventName strips the "on" prefix from an event attribute key.
func EventName(key string) string {
	if !IsEventAttr(key) {
		return ""
	}
	return strings.ToLower(key[2:])
}

// EventAttr returns the attribute key for an event name ("click" → "onclick").
func EventAttr(name string) string {
	return "on" + name
}

// AsHandler converts the supported callback shapes to a Handler.
func AsHandler(v any) (Handler, bool) {
	switch h := v.(type) {
	case Handler:
		return h, h != nil
	case func(Event):
		return Handler(h), h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(Event) { h() }, true
	default:
		return nil, false
	}
}
