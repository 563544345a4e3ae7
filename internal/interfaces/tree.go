package interfaces

// Node is one element of an already parsed, read-only document tree.
// Implementations must not be mutated while the analyzer reads them.
type Node interface {
	// Tag returns the lower-case element name ("table", "tr", "td", ...).
	Tag() string

	// Children returns the element children in document order.
	Children() []Node

	// Text returns the concatenated text of the node and all descendants,
	// whitespace preserved.
	Text() string
}
