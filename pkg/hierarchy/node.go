// Package hierarchy parses raw uiautomator accessibility dumps into an
// in-memory node tree with normalized attributes.
package hierarchy

import "github.com/qe-first/qedriver/pkg/core"

// RawNode is one node of the parsed accessibility tree. It is owned by
// the parser for the duration of one dump and is immutable once built.
type RawNode struct {
	Class         string
	ResourceID    string
	Text          string
	ContentDesc   string
	Bounds        core.Bounds
	Clickable     bool
	Enabled       bool
	Focusable     bool
	Scrollable    bool
	LongClickable bool
	Password      bool
	Selected      bool
	Visible       bool
	Children      []*RawNode
}

// Size returns the number of nodes in the subtree rooted at n,
// including n itself.
func (n *RawNode) Size() int {
	count := 1
	for _, child := range n.Children {
		count += child.Size()
	}
	return count
}

// HasIdentity reports whether the node carries any identifying signal
// (text, content description, or resource id).
func (n *RawNode) HasIdentity() bool {
	return n.Text != "" || n.ContentDesc != "" || n.ResourceID != ""
}

// Interactive reports whether the node carries any actionable flag.
func (n *RawNode) Interactive() bool {
	return n.Clickable || n.Focusable || n.Scrollable
}
