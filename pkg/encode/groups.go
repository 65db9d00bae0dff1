package encode

import (
	"strings"

	"github.com/qe-first/qedriver/pkg/extract"
)

// PatternGroup names a semantic bucket and the keywords that put an
// element in it. Matching is case-insensitive substring search over the
// label and the resource id. Groups are advisory metadata only; they
// are never authoritative for identity.
type PatternGroup struct {
	Name     string
	Keywords []string
}

// DefaultGroups returns the stock keyword buckets.
func DefaultGroups() []PatternGroup {
	return []PatternGroup{
		{Name: "auth", Keywords: []string{"user", "pass", "login", "email", "sign in"}},
		{Name: "action", Keywords: []string{"submit", "save", "ok", "login", "next", "continue", "done", "confirm"}},
		{Name: "nav", Keywords: []string{"back", "home", "menu", "settings", "close", "cancel"}},
	}
}

// groupIndices buckets stable indices by pattern group. An element may
// land in several groups. Empty groups are left out of the map.
func groupIndices(elements []extract.Element, groups []PatternGroup) map[string][]int {
	out := make(map[string][]int)
	for _, g := range groups {
		var indices []int
		for _, e := range elements {
			if matchesGroup(e, g) {
				indices = append(indices, e.Index)
			}
		}
		if len(indices) > 0 {
			out[g.Name] = indices
		}
	}
	return out
}

func matchesGroup(e extract.Element, g PatternGroup) bool {
	label := strings.ToLower(e.Label)
	resID := strings.ToLower(e.ResourceID)
	for _, kw := range g.Keywords {
		if strings.Contains(label, kw) || strings.Contains(resID, kw) {
			return true
		}
	}
	return false
}
