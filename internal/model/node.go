// Package model defines the data structures for shortcode-aware link formatting.
package model

// RootScopeName is the reserved name of the synthetic document root.
// Shortcode names are matched against an identifier character class that
// cannot produce it ambiguously in practice; the root is the only node
// without a parent either way.
const RootScopeName = "root"

// Node represents one delimiter-bounded region of a document, or the whole
// document for the root. StartLine and EndLine are indices into the parent's
// Lines slice; when they are equal the scope opens and closes on a single
// line and Start/End carry the column bounds of the region on that line.
type Node struct {
	Name     string
	Children []*Node
	Parent   *Node

	// Lines is the raw capture of the scope, including its own opening and
	// closing delimiter lines. ModifiedLines is written exactly once by the
	// rewrite stage.
	Lines         []string
	ModifiedLines []string

	StartLine int
	EndLine   int
	Start     int
	End       int

	// Closed reports whether a matching close marker was seen. Scopes left
	// open at end of document keep Closed false and have no finalized
	// EndLine.
	Closed bool
}

// NewNode creates a detached scope node with the given region name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// Add attaches child to n, setting the parent back-reference. Children keep
// their order of first appearance in the source.
func (n *Node) Add(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// PushLine appends a raw line to the scope's capture.
func (n *Node) PushLine(line string) {
	n.Lines = append(n.Lines, line)
}

// IsRoot reports whether n is the synthetic document root.
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Inline reports whether the scope opens and closes on the same source line.
func (n *Node) Inline() bool {
	return n.Closed && n.StartLine == n.EndLine
}

// Walk visits n and every descendant in pre-order, stopping at the first
// error.
func (n *Node) Walk(fn func(*Node) error) error {
	if err := fn(n); err != nil {
		return err
	}

	for _, child := range n.Children {
		if err := child.Walk(fn); err != nil {
			return err
		}
	}

	return nil
}
