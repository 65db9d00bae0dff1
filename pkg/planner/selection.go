// Package planner is the boundary to the decision function: it sends a
// screen payload out, validates the index that comes back, and persists
// the resulting Selection for a later run step.
package planner

import (
	"encoding/json"
	"os"

	"github.com/qe-first/qedriver/pkg/core"
	"github.com/qe-first/qedriver/pkg/extract"
)

// Selection is the durable output of the plan step: a chosen stable
// index plus the identity keys of the element it referred to, captured
// at plan time. plan and run are separate processes, so this is a
// message on disk, not an in-memory reference.
type Selection struct {
	Index       int         `json:"index"`
	ResourceID  string      `json:"resource_id"`
	Text        string      `json:"text"`
	ContentDesc string      `json:"content_desc"`
	Class       string      `json:"class"`
	Bounds      core.Bounds `json:"bounds"`
	Label       string      `json:"label"`
	Role        string      `json:"role"`
}

// NewSelection captures an element's identity keys.
func NewSelection(e extract.Element) Selection {
	return Selection{
		Index:       e.Index,
		ResourceID:  e.ResourceID,
		Text:        e.Text,
		ContentDesc: e.ContentDesc,
		Class:       e.Class,
		Bounds:      e.Bounds,
		Label:       e.Label,
		Role:        e.Role.String(),
	}
}

// Identity returns the identity-key tuple the resolver matches on.
func (s Selection) Identity() extract.Identity {
	return extract.Identity{
		ResourceID:  s.ResourceID,
		Text:        s.Text,
		ContentDesc: s.ContentDesc,
		Class:       s.Class,
		Bounds:      s.Bounds,
	}
}

// Save writes the selection as JSON. The format is stable across
// process restarts.
func (s Selection) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a selection previously written by the plan step.
func Load(path string) (Selection, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided selection file
	if err != nil {
		return Selection{}, err
	}
	var s Selection
	if err := json.Unmarshal(data, &s); err != nil {
		return Selection{}, core.ErrInvalidConfig.WithMessage("selection file is not valid JSON").WithCause(err)
	}
	return s, nil
}
