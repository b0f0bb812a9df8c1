package vdom

// IfElse returns ifTrue if condition is true, ifFalse otherwise.
func IfElse(condition bool, ifTrue, ifFalse Node) Node {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If but with lazy evaluation.
// The function is only called if condition is true.
func When(condition bool, fn func() Node) Node {
	if condition {
		return fn()
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, node Node) Node {
	if !condition {
		return node
	}
	return nil
}

// Case represents a case in a Switch statement.
type Case[T comparable] struct {
	Value     T
	Node      Node
	IsDefault bool
}

// Case_ creates a case for Switch.
func Case_[T comparable](value T, node Node) Case[T] {
	return Case[T]{Value: value, Node: node}
}

// Default creates a default case for Switch.
func Default[T comparable](node Node) Case[T] {
	return Case[T]{Node: node, IsDefault: true}
}

// Switch returns the node of the first case matching value, else the
// default case's node, else nil.
func Switch[T comparable](value T, cases ...Case[T]) Node {
	for _, c := range cases {
		if !c.IsDefault && c.Value == value {
			return c.Node
		}
	}
	for _, c := range cases {
		if c.IsDefault {
			return c.Node
		}
	}
	return nil
}

// Range maps a slice to nodes, passing the index. Absent results are
// dropped.
func Range[T any](items []T, fn func(item T, index int) Node) []Node {
	result := make([]Node, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); !IsAbsent(node) {
			result = append(result, node)
		}
	}
	return result
}

// Repeat creates n nodes using the given function.
func Repeat(n int, fn func(i int) Node) []Node {
	if n <= 0 {
		return nil
	}
	result := make([]Node, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); !IsAbsent(node) {
			result = append(result, node)
		}
	}
	return result
}

// Either returns first unless it is absent, otherwise second.
func Either(first, second Node) Node {
	if !IsAbsent(first) {
		return first
	}
	return second
}
