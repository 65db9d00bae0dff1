// Package resolve relocates a plan-time Selection inside a fresh
// extraction and turns it into a concrete tap target. Matching runs on
// identity keys, never on the stable index alone: intervening UI changes
// shift the filtered list, so indices from two passes are not
// comparable.
package resolve

import (
	"github.com/qe-first/qedriver/pkg/core"
	"github.com/qe-first/qedriver/pkg/extract"
	"github.com/qe-first/qedriver/pkg/planner"
)

// Confidence grades how the target was located.
type Confidence int

const (
	ConfidenceExact    Confidence = iota // full identity-key tuple matched
	ConfidenceRelaxed                    // resource-id/text matched, geometry shifted
	ConfidenceFallback                   // no identity match, original bounds reused
)

// String returns the string representation of Confidence.
func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidenceRelaxed:
		return "relaxed"
	case ConfidenceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// ResolvedTarget is the final replay target: a tap point, the live
// element when identity matching found one, and the confidence grade.
type ResolvedTarget struct {
	X          int
	Y          int
	Element    *extract.Element // nil for positional fallback
	Confidence Confidence
}

// Resolve relocates sel inside a fresh extraction. Priority order,
// first success wins:
//
//  1. exact: an element whose full identity-key tuple equals the
//     selection's
//  2. relaxed: an element whose (resource-id, text) pair matches, so the
//     target survives scroll or minor layout reflow
//  3. positional fallback: the original bounds center, if it still falls
//     inside the current screen
//
// Otherwise core.ErrTargetNotFound: the caller must not tap blind.
func Resolve(sel planner.Selection, elements []extract.Element, screen core.Bounds) (*ResolvedTarget, error) {
	want := sel.Identity()

	for i := range elements {
		if elements[i].Identity() == want {
			x, y := elements[i].Bounds.Center()
			return &ResolvedTarget{X: x, Y: y, Element: &elements[i], Confidence: ConfidenceExact}, nil
		}
	}

	// An all-empty (resource-id, text) pair would match every unlabeled
	// node, which is exactly the blind guessing this stage exists to
	// prevent.
	if sel.ResourceID != "" || sel.Text != "" {
		for i := range elements {
			if elements[i].ResourceID == sel.ResourceID && elements[i].Text == sel.Text {
				x, y := elements[i].Bounds.Center()
				return &ResolvedTarget{X: x, Y: y, Element: &elements[i], Confidence: ConfidenceRelaxed}, nil
			}
		}
	}

	if !sel.Bounds.IsZero() {
		x, y := sel.Bounds.Center()
		if screen.Contains(x, y) {
			return &ResolvedTarget{X: x, Y: y, Confidence: ConfidenceFallback}, nil
		}
	}

	return nil, core.ErrTargetNotFound.WithDetails(map[string]interface{}{
		"resource_id": sel.ResourceID,
		"text":        sel.Text,
	})
}
