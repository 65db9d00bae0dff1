// Package extract flattens a parsed accessibility tree into the ordered
// list of interactive elements the decision function gets to see.
package extract

import "github.com/qe-first/qedriver/pkg/core"

// Element is a filtered, flattened view of one interactive node. It is
// created once per extraction pass and never mutated afterwards.
type Element struct {
	// Index is the element's position in the filtered list, assigned in
	// document order. It is stable within one pass only; across passes
	// correspondence must be re-derived from identity keys.
	Index int

	Role      Role
	Label     string
	Clickable bool
	Bounds    core.Bounds

	// Identity keys, used to relocate the element across passes.
	ResourceID  string
	Text        string
	ContentDesc string
	Class       string

	// Remaining state flags, carried for the full wire form.
	Enabled       bool
	Focusable     bool
	Scrollable    bool
	LongClickable bool
	Password      bool
	Selected      bool
}

// Identity is the comparable attribute tuple used for duplicate
// detection within a pass and relocation across passes.
type Identity struct {
	ResourceID  string
	Text        string
	ContentDesc string
	Class       string
	Bounds      core.Bounds
}

// Identity returns the element's identity-key tuple.
func (e Element) Identity() Identity {
	return Identity{
		ResourceID:  e.ResourceID,
		Text:        e.Text,
		ContentDesc: e.ContentDesc,
		Class:       e.Class,
		Bounds:      e.Bounds,
	}
}
