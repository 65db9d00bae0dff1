// Package encode maps extracted elements into the wire forms consumed by
// the decision function: a compact short-keyed payload for model calls
// and a verbose JSON form for humans and debugging.
package encode

import (
	"encoding/json"

	"github.com/qe-first/qedriver/pkg/extract"
)

// MinimalElement is the compressed wire form of one element. Fields
// equal to their defaults are omitted; `c` is written as 1 rather than
// true to keep the payload terse.
type MinimalElement struct {
	I int    `json:"i"`           // stable index of the source element
	T string `json:"t"`           // role code: B, T, I, L
	L string `json:"l,omitempty"` // label
	C int    `json:"c,omitempty"` // 1 when clickable
	H string `json:"h,omitempty"` // afforded action: click, type, select
	N int    `json:"n,omitempty"` // run length when this entry stands for a collapsed list
}

// Payload is the minimal JSON object sent to the decision function.
type Payload struct {
	E []MinimalElement `json:"e"` // elements, document order
	N int              `json:"n"` // total extracted elements (before list collapsing)
	M map[string][]int `json:"m"` // pattern group name -> stable indices
}

// Options holds the encoder heuristics.
type Options struct {
	// MinRun is the shortest run of consecutive same-role, ordinal-
	// labeled elements that collapses into one representative entry.
	MinRun int

	// Groups are the keyword buckets used for pattern grouping. Nil
	// means DefaultGroups.
	Groups []PatternGroup
}

// DefaultOptions returns the stock encoder heuristics.
func DefaultOptions() Options {
	return Options{MinRun: 3, Groups: DefaultGroups()}
}

func (o Options) minRun() int {
	if o.MinRun < 2 {
		return DefaultOptions().MinRun
	}
	return o.MinRun
}

func (o Options) groups() []PatternGroup {
	if o.Groups == nil {
		return DefaultGroups()
	}
	return o.Groups
}

// Encode produces the minimal payload for an element sequence. Encoding
// is deterministic: identical inputs yield identical payloads (no
// randomized ordering, no clock-derived fields).
func Encode(elements []extract.Element, opts Options) Payload {
	return Payload{
		E: collapseRuns(elements, opts.minRun()),
		N: len(elements),
		M: groupIndices(elements, opts.groups()),
	}
}

// Marshal renders the payload as compact JSON. Struct field order and
// Go's sorted map keys make the output byte-stable.
func (p Payload) Marshal() ([]byte, error) {
	return json.Marshal(p)
}

// hintFor maps a role to the action it affords. Non-clickable text has
// no affordance and gets no hint.
func hintFor(role extract.Role, clickable bool) string {
	switch role {
	case extract.RoleInput:
		return "type"
	case extract.RoleButton:
		return "click"
	case extract.RoleList:
		return "select"
	default:
		if clickable {
			return "click"
		}
		return ""
	}
}

// minimalOf converts one element without collapsing.
func minimalOf(e extract.Element) MinimalElement {
	m := MinimalElement{
		I: e.Index,
		T: e.Role.Code(),
		L: e.Label,
		H: hintFor(e.Role, e.Clickable),
	}
	if e.Clickable {
		m.C = 1
	}
	return m
}
