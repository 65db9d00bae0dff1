package encode

import (
	"regexp"

	"github.com/qe-first/qedriver/pkg/extract"
)

// ordinalLabel matches labels that differ only by a trailing ordinal,
// e.g. "Item 1" / "Item 2" / "Item #3".
var ordinalLabel = regexp.MustCompile(`^(.*?)[\s#.]*(\d+)$`)

// collapseRuns replaces runs of at least minRun consecutive elements
// sharing a role and an ordinal-suffixed label with a single
// representative entry. The representative keeps the FIRST member's
// stable index (so it stays resolvable) and records the run length.
func collapseRuns(elements []extract.Element, minRun int) []MinimalElement {
	out := make([]MinimalElement, 0, len(elements))

	for i := 0; i < len(elements); {
		run := runLength(elements[i:])
		if run >= minRun {
			rep := minimalOf(elements[i])
			rep.N = run
			out = append(out, rep)
			i += run
			continue
		}
		out = append(out, minimalOf(elements[i]))
		i++
	}

	return out
}

// runLength counts how many elements at the head of the slice share a
// role and an ordinal-labeled base with the first element.
func runLength(elements []extract.Element) int {
	base, ok := ordinalBase(elements[0].Label)
	if !ok {
		return 1
	}
	n := 1
	for _, e := range elements[1:] {
		if e.Role != elements[0].Role {
			break
		}
		b, ok := ordinalBase(e.Label)
		if !ok || b != base {
			break
		}
		n++
	}
	return n
}

// ordinalBase strips a trailing ordinal off a label. Reports false when
// the label has no numeric tail to strip.
func ordinalBase(label string) (string, bool) {
	m := ordinalLabel.FindStringSubmatch(label)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}
