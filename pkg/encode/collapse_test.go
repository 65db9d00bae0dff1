package encode

import (
	"testing"

	"github.com/qe-first/qedriver/pkg/extract"
)

func items(labels ...string) []extract.Element {
	out := make([]extract.Element, len(labels))
	for i, l := range labels {
		out[i] = extract.Element{Index: i, Role: extract.RoleText, Label: l, Clickable: true, Enabled: true}
	}
	return out
}

func TestCollapseListRun(t *testing.T) {
	payload := Encode(items("Item 1", "Item 2", "Item 3"), DefaultOptions())

	if len(payload.E) != 1 {
		t.Fatalf("expected 1 collapsed entry, got %d", len(payload.E))
	}
	rep := payload.E[0]
	if rep.I != 0 {
		t.Errorf("representative must keep the first stable index, got %d", rep.I)
	}
	if rep.N != 3 {
		t.Errorf("expected run count 3, got %d", rep.N)
	}
	if payload.N != 3 {
		t.Errorf("total count must reflect the uncollapsed list, got %d", payload.N)
	}
}

func TestCollapseBelowThreshold(t *testing.T) {
	payload := Encode(items("Item 1", "Item 2"), DefaultOptions())
	if len(payload.E) != 2 {
		t.Errorf("a run of 2 must not collapse, got %d entries", len(payload.E))
	}
}

func TestCollapseThresholdConfigurable(t *testing.T) {
	opts := DefaultOptions()
	opts.MinRun = 2

	payload := Encode(items("Item 1", "Item 2"), opts)
	if len(payload.E) != 1 {
		t.Errorf("expected collapse at minRun=2, got %d entries", len(payload.E))
	}
}

func TestCollapseRoleMismatchBreaksRun(t *testing.T) {
	elements := items("Item 1", "Item 2", "Item 3")
	elements[2].Role = extract.RoleButton

	payload := Encode(elements, DefaultOptions())
	if len(payload.E) != 3 {
		t.Errorf("role change must break the run, got %d entries", len(payload.E))
	}
}

func TestCollapseDifferentBasesStaySeparate(t *testing.T) {
	payload := Encode(items("Item 1", "Row 2", "Item 3"), DefaultOptions())
	if len(payload.E) != 3 {
		t.Errorf("different label bases must not collapse, got %d entries", len(payload.E))
	}
}

func TestOrdinalBase(t *testing.T) {
	tests := []struct {
		label string
		base  string
		ok    bool
	}{
		{"Item 1", "Item", true},
		{"Item #12", "Item", true},
		{"Row2", "Row", true},
		{"Login", "", false},
		{"42", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		base, ok := ordinalBase(tt.label)
		if base != tt.base || ok != tt.ok {
			t.Errorf("ordinalBase(%q) = (%q, %v), want (%q, %v)", tt.label, base, ok, tt.base, tt.ok)
		}
	}
}
