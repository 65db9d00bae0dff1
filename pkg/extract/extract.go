package extract

import (
	"github.com/qe-first/qedriver/pkg/hierarchy"
)

// Options holds the extraction heuristics. The thresholds are not tuned
// constants; keep them overridable.
type Options struct {
	// MinWidth/MinHeight define the decorative-element cutoff: nodes
	// whose bounding-box area is below MinWidth*MinHeight are dropped.
	MinWidth  int
	MinHeight int
}

// DefaultOptions returns the stock thresholds (20x20 px minimum).
func DefaultOptions() Options {
	return Options{MinWidth: 20, MinHeight: 20}
}

func (o Options) minArea() int {
	if o.MinWidth <= 0 || o.MinHeight <= 0 {
		d := DefaultOptions()
		return d.MinWidth * d.MinHeight
	}
	return o.MinWidth * o.MinHeight
}

// Extract walks the tree depth-first in pre-order and produces the
// ordered element list. Stable indices are assigned in document order
// and are unique within this pass. The source tree is not mutated.
//
// A node is excluded when any of these apply:
//   - not visible or not enabled
//   - pure layout container: no identifying signal and no actionable flag
//   - bounding-box area below the decorative cutoff
//   - exact duplicate of an element already kept in this pass
//   - no label and not clickable (nothing a model could act on)
func Extract(root *hierarchy.RawNode, opts Options) []Element {
	var elements []Element
	seen := make(map[Identity]bool)

	var walk func(node *hierarchy.RawNode)
	walk = func(node *hierarchy.RawNode) {
		if elem, ok := candidate(node, opts); ok {
			id := elem.Identity()
			if !seen[id] {
				seen[id] = true
				elem.Index = len(elements)
				elements = append(elements, elem)
			}
		}
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(root)

	return elements
}

// candidate applies the per-node filters and builds the element.
// Duplicate detection happens in the caller, which owns the pass state.
func candidate(node *hierarchy.RawNode, opts Options) (Element, bool) {
	if !node.Visible || !node.Enabled {
		return Element{}, false
	}
	if !node.HasIdentity() && !node.Interactive() {
		return Element{}, false
	}
	if node.Bounds.Area() < opts.minArea() {
		return Element{}, false
	}

	label := InferLabel(node.Text, node.ContentDesc, node.ResourceID)
	if label == "" && !node.Clickable {
		return Element{}, false
	}

	role := InferRole(node.Class, node.Clickable, node.Password, node.Scrollable, similarChildren(node))

	return Element{
		Role:          role,
		Label:         label,
		Clickable:     node.Clickable,
		Bounds:        node.Bounds,
		ResourceID:    node.ResourceID,
		Text:          node.Text,
		ContentDesc:   node.ContentDesc,
		Class:         node.Class,
		Enabled:       node.Enabled,
		Focusable:     node.Focusable,
		Scrollable:    node.Scrollable,
		LongClickable: node.LongClickable,
		Password:      node.Password,
		Selected:      node.Selected,
	}, true
}

// similarChildren returns the size of the largest group of direct
// children sharing a class name.
func similarChildren(node *hierarchy.RawNode) int {
	if len(node.Children) < 2 {
		return len(node.Children)
	}
	counts := make(map[string]int, len(node.Children))
	max := 0
	for _, child := range node.Children {
		counts[child.Class]++
		if counts[child.Class] > max {
			max = counts[child.Class]
		}
	}
	return max
}
