// Package vdom provides the virtual node model for vtree.
//
// A virtual tree is an immutable description of a UI. Trees are built with
// H and compared position by position with Classify; the reconcile package
// turns those classifications into mutations on a live display tree.
//
// # Core Types
//
// Node is a closed sum type with two variants: *Element (a tag, an
// attribute map and an ordered child list) and Leaf (a string or number
// rendered as text). Attrs holds plain attributes and event handlers; keys
// beginning with "on" denote event bindings.
//
// # Building Trees
//
//	H(TagDiv, Attrs{"class": "hoge"},
//	    H(TagP, Attrs{"class": "foo"}, count),
//	    H(TagButton, Attrs{"type": "button", "onclick": Handler(inc)}, "count up"),
//	)
//
// # Classification
//
// Classify reports how two nodes at the same tree position differ, as one
// of the ChangeKind values. Classification only reads the trees.
package vdom
