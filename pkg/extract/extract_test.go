package extract

import (
	"testing"

	"github.com/qe-first/qedriver/pkg/hierarchy"
)

const loginDump = `<?xml version="1.0" encoding="UTF-8"?>
<hierarchy rotation="0">
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" clickable="false" enabled="true">
    <node text="Login" resource-id="com.app:id/btn_login" class="android.widget.Button" bounds="[100,100][200,140]" clickable="true" enabled="true"/>
    <node text="" resource-id="com.app:id/decor" class="android.widget.ImageView" bounds="[0,0][10,10]" clickable="false" enabled="true"/>
  </node>
</hierarchy>`

func TestExtractLoginScenario(t *testing.T) {
	root := mustParse(t, loginDump)

	elements := Extract(root, DefaultOptions())
	if len(elements) != 1 {
		t.Fatalf("expected exactly 1 element, got %d", len(elements))
	}

	e := elements[0]
	if e.Index != 0 {
		t.Errorf("expected index 0, got %d", e.Index)
	}
	if e.Role != RoleButton {
		t.Errorf("expected Button role, got %s", e.Role)
	}
	if e.Label != "Login" {
		t.Errorf("expected label Login, got %q", e.Label)
	}
	if !e.Clickable {
		t.Error("expected clickable")
	}
}

func TestExtractFiltersInvisibleAndDisabled(t *testing.T) {
	dump := `<hierarchy>
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" enabled="true">
    <node text="Hidden" class="android.widget.TextView" bounds="[0,0][300,100]" enabled="true" displayed="false"/>
    <node text="Disabled" class="android.widget.Button" bounds="[0,100][300,200]" clickable="true" enabled="false"/>
    <node text="Visible" class="android.widget.TextView" bounds="[0,200][300,300]" enabled="true"/>
  </node>
</hierarchy>`

	elements := Extract(mustParse(t, dump), DefaultOptions())
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if elements[0].Label != "Visible" {
		t.Errorf("expected the visible element, got %q", elements[0].Label)
	}
	for _, e := range elements {
		if !e.Enabled {
			t.Errorf("emitted element %d is not enabled", e.Index)
		}
	}
}

func TestExtractDropsLayoutContainers(t *testing.T) {
	dump := `<hierarchy>
  <node class="android.widget.LinearLayout" bounds="[0,0][1080,1920]" enabled="true">
    <node class="android.widget.FrameLayout" bounds="[0,0][1080,500]" enabled="true">
      <node text="Content" class="android.widget.TextView" bounds="[0,0][300,100]" enabled="true"/>
    </node>
  </node>
</hierarchy>`

	elements := Extract(mustParse(t, dump), DefaultOptions())
	if len(elements) != 1 {
		t.Fatalf("expected only the text element, got %d", len(elements))
	}
}

func TestExtractDropsUnlabeledNonClickable(t *testing.T) {
	dump := `<hierarchy>
  <node class="android.widget.ScrollView" bounds="[0,0][1080,1920]" enabled="true" scrollable="true">
    <node text="" class="android.widget.ImageView" bounds="[0,0][200,200]" enabled="true" focusable="true"/>
    <node text="" class="android.widget.ImageView" bounds="[0,200][200,400]" enabled="true" clickable="true"/>
  </node>
</hierarchy>`

	elements := Extract(mustParse(t, dump), DefaultOptions())
	// Scrollable parent and focusable image have no label and are not
	// clickable; only the clickable image survives.
	if len(elements) != 1 {
		t.Fatalf("expected 1 element, got %d", len(elements))
	}
	if !elements[0].Clickable {
		t.Error("expected the surviving element to be clickable")
	}
	if elements[0].Label != "" {
		t.Errorf("expected empty label, got %q", elements[0].Label)
	}
}

func TestExtractDeduplicates(t *testing.T) {
	dump := `<hierarchy>
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" enabled="true">
    <node text="Twice" class="android.widget.TextView" bounds="[0,0][300,100]" enabled="true"/>
    <node text="Twice" class="android.widget.TextView" bounds="[0,0][300,100]" enabled="true"/>
    <node text="Twice" class="android.widget.TextView" bounds="[0,200][300,300]" enabled="true"/>
  </node>
</hierarchy>`

	elements := Extract(mustParse(t, dump), DefaultOptions())
	// The exact duplicate collapses; the one with different bounds stays.
	if len(elements) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(elements))
	}
}

func TestExtractStableIndices(t *testing.T) {
	root := mustParse(t, `<hierarchy>
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" enabled="true">
    <node text="A" class="android.widget.TextView" bounds="[0,0][300,100]" enabled="true"/>
    <node text="B" class="android.widget.TextView" bounds="[0,100][300,200]" enabled="true"/>
    <node text="C" class="android.widget.TextView" bounds="[0,200][300,300]" enabled="true"/>
  </node>
</hierarchy>`)

	elements := Extract(root, DefaultOptions())
	if len(elements) > root.Size() {
		t.Errorf("filtering grew the list: %d elements from %d nodes", len(elements), root.Size())
	}

	labels := []string{"A", "B", "C"}
	for i, e := range elements {
		if e.Index != i {
			t.Errorf("element %d has index %d", i, e.Index)
		}
		if e.Label != labels[i] {
			t.Errorf("document order broken: position %d has label %q", i, e.Label)
		}
	}
}

func TestExtractMinSizeConfigurable(t *testing.T) {
	dump := `<hierarchy>
  <node class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" enabled="true">
    <node text="Small" class="android.widget.TextView" bounds="[0,0][15,15]" enabled="true"/>
  </node>
</hierarchy>`

	root := mustParse(t, dump)

	if got := Extract(root, DefaultOptions()); len(got) != 0 {
		t.Errorf("expected the 15x15 element dropped at default threshold, got %d", len(got))
	}
	if got := Extract(root, Options{MinWidth: 10, MinHeight: 10}); len(got) != 1 {
		t.Errorf("expected the element kept at a 10x10 threshold, got %d", len(got))
	}
}

func mustParse(t *testing.T, dump string) *hierarchy.RawNode {
	t.Helper()
	root, err := hierarchy.ParseString(dump)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return root
}
