package planner

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qe-first/qedriver/pkg/core"
	"github.com/qe-first/qedriver/pkg/encode"
	"github.com/qe-first/qedriver/pkg/extract"
)

func loginElements() []extract.Element {
	return []extract.Element{
		{Index: 0, Role: extract.RoleText, Label: "Welcome back", Enabled: true},
		{Index: 1, Role: extract.RoleButton, Label: "", ResourceID: "com.app:id/icon", Clickable: true, Enabled: true},
		{Index: 2, Role: extract.RoleButton, Label: "Login", ResourceID: "com.app:id/btn_login", Text: "Login",
			Class: "android.widget.Button", Bounds: core.Bounds{X: 100, Y: 100, Width: 100, Height: 40},
			Clickable: true, Enabled: true},
	}
}

func minimalPayload(t *testing.T, elements []extract.Element) []byte {
	t.Helper()
	data, err := encode.Encode(elements, encode.DefaultOptions()).Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return data
}

func TestStubDeciderPrefersLabeledClickable(t *testing.T) {
	elements := loginElements()
	idx, err := StubDecider{}.Decide(context.Background(), minimalPayload(t, elements), "log in")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if idx != 2 {
		t.Errorf("expected the labeled clickable element at index 2, got %d", idx)
	}
}

func TestStubDeciderFallsBackToAnyClickable(t *testing.T) {
	elements := []extract.Element{
		{Index: 0, Role: extract.RoleText, Label: "Header", Enabled: true},
		{Index: 1, Role: extract.RoleButton, ResourceID: "com.app:id/fab", Clickable: true, Enabled: true},
	}
	idx, err := StubDecider{}.Decide(context.Background(), minimalPayload(t, elements), "")
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}
	if idx != 1 {
		t.Errorf("expected index 1, got %d", idx)
	}
}

func TestStubDeciderNothingClickable(t *testing.T) {
	elements := []extract.Element{
		{Index: 0, Role: extract.RoleText, Label: "Static screen", Enabled: true},
	}
	_, err := StubDecider{}.Decide(context.Background(), minimalPayload(t, elements), "")
	if !errors.Is(err, core.ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestAdapterPlanCapturesIdentity(t *testing.T) {
	elements := loginElements()
	a := NewAdapter(StubDecider{}, 0)

	sel, err := a.Plan(context.Background(), elements, minimalPayload(t, elements), "log in")
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if sel.Index != 2 {
		t.Errorf("expected index 2, got %d", sel.Index)
	}
	if sel.ResourceID != "com.app:id/btn_login" || sel.Text != "Login" {
		t.Errorf("identity keys not captured: %+v", sel)
	}
	if sel.Role != "Button" {
		t.Errorf("expected role Button, got %q", sel.Role)
	}
}

type fixedDecider struct{ idx int }

func (d fixedDecider) Decide(context.Context, []byte, string) (int, error) {
	return d.idx, nil
}

func TestAdapterRejectsOutOfRangeIndex(t *testing.T) {
	elements := loginElements()
	for _, idx := range []int{-1, len(elements), 99} {
		a := NewAdapter(fixedDecider{idx: idx}, 0)
		_, err := a.Plan(context.Background(), elements, nil, "")
		if !errors.Is(err, core.ErrNoSelection) {
			t.Errorf("index %d: expected ErrNoSelection, got %v", idx, err)
		}
	}
}

type blockingDecider struct{}

func (blockingDecider) Decide(ctx context.Context, _ []byte, _ string) (int, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestAdapterTimeout(t *testing.T) {
	a := NewAdapter(blockingDecider{}, 10*time.Millisecond)
	_, err := a.Plan(context.Background(), loginElements(), nil, "")
	if !errors.Is(err, core.ErrDecisionTimeout) {
		t.Errorf("expected ErrDecisionTimeout, got %v", err)
	}
}

func TestSelectionSaveLoad(t *testing.T) {
	sel := NewSelection(loginElements()[2])
	path := filepath.Join(t.TempDir(), "selection.json")

	if err := sel.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded != sel {
		t.Errorf("round trip mismatch:\n%+v\n%+v", loaded, sel)
	}
	if loaded.Identity() != sel.Identity() {
		t.Error("identity tuple changed across save/load")
	}
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selection.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, core.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
