package hierarchy

import (
	"errors"
	"testing"

	"github.com/qe-first/qedriver/pkg/core"
)

const sampleDump = `<?xml version="1.0" encoding="UTF-8"?>
<hierarchy rotation="0">
  <node index="0" text="" resource-id="" class="android.widget.FrameLayout" bounds="[0,0][1080,1920]" clickable="false" enabled="true">
    <node index="0" text="Login" resource-id="com.app:id/login_btn" class="android.widget.Button" bounds="[100,200][300,280]" clickable="true" enabled="true"/>
    <node index="1" text="Sign Up" resource-id="com.app:id/signup_btn" class="android.widget.Button" bounds="[100,300][300,380]" clickable="true" enabled="true"/>
    <node index="2" text="" resource-id="com.app:id/container" class="android.widget.LinearLayout" bounds="[0,400][1080,800]" clickable="false" enabled="true">
      <node index="0" text="Username" resource-id="com.app:id/label" class="android.widget.TextView" bounds="[50,420][200,460]" clickable="false" enabled="true"/>
      <node index="1" text="" resource-id="com.app:id/input" class="android.widget.EditText" bounds="[50,470][500,530]" clickable="true" enabled="true" password="true"/>
    </node>
  </node>
</hierarchy>`

func TestParse(t *testing.T) {
	root, err := ParseString(sampleDump)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Synthetic root + 6 real nodes
	if got := root.Size(); got != 7 {
		t.Errorf("expected tree size 7, got %d", got)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level window, got %d", len(root.Children))
	}

	frame := root.Children[0]
	if frame.Class != "android.widget.FrameLayout" {
		t.Errorf("unexpected root window class %q", frame.Class)
	}
	if len(frame.Children) != 3 {
		t.Fatalf("expected 3 children, got %d", len(frame.Children))
	}

	login := frame.Children[0]
	if login.Text != "Login" {
		t.Errorf("expected text Login, got %q", login.Text)
	}
	if login.ResourceID != "com.app:id/login_btn" {
		t.Errorf("unexpected resource-id %q", login.ResourceID)
	}
	if !login.Clickable || !login.Enabled {
		t.Error("expected Login to be clickable and enabled")
	}
	want := core.Bounds{X: 100, Y: 200, Width: 200, Height: 80}
	if login.Bounds != want {
		t.Errorf("bounds = %+v, want %+v", login.Bounds, want)
	}

	input := frame.Children[2].Children[1]
	if !input.Password {
		t.Error("expected password flag on the input node")
	}
}

func TestParseClassTaggedFormat(t *testing.T) {
	dump := `<hierarchy>
  <android.widget.Button text="OK" bounds="[0,0][100,50]" clickable="true" enabled="true"/>
</hierarchy>`

	root, err := ParseString(dump)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 node, got %d", len(root.Children))
	}
	if root.Children[0].Class != "android.widget.Button" {
		t.Errorf("expected class from tag name, got %q", root.Children[0].Class)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, dump := range []string{
		"not xml",
		"<hierarchy><node></hierarchy>",
		"",
	} {
		_, err := ParseString(dump)
		if !errors.Is(err, core.ErrMalformedDump) {
			t.Errorf("ParseString(%q): expected ErrMalformedDump, got %v", dump, err)
		}
	}
}

func TestParseEmptyTree(t *testing.T) {
	_, err := ParseString(`<hierarchy rotation="0"></hierarchy>`)
	if !errors.Is(err, core.ErrEmptyTree) {
		t.Errorf("expected ErrEmptyTree, got %v", err)
	}
}

func TestParseBounds(t *testing.T) {
	tests := []struct {
		input    string
		expected core.Bounds
	}{
		{"[0,0][100,200]", core.Bounds{X: 0, Y: 0, Width: 100, Height: 200}},
		{"[50,100][150,300]", core.Bounds{X: 50, Y: 100, Width: 100, Height: 200}},
		// Inverted boxes clamp to zero-area instead of failing
		{"[200,100][100,300]", core.Bounds{X: 200, Y: 100, Width: 0, Height: 200}},
		{"[50,300][150,100]", core.Bounds{X: 50, Y: 300, Width: 100, Height: 0}},
		// Negative origins clamp to the screen edge
		{"[-10,-20][100,200]", core.Bounds{X: 0, Y: 0, Width: 100, Height: 200}},
		{"invalid", core.Bounds{}},
		{"[0,0]", core.Bounds{}},
		{"[a,b][c,d]", core.Bounds{}},
	}

	for _, tt := range tests {
		got := parseBounds(tt.input)
		if got != tt.expected {
			t.Errorf("parseBounds(%q) = %+v, want %+v", tt.input, got, tt.expected)
		}
	}
}

func TestScreenBounds(t *testing.T) {
	root, err := ParseString(sampleDump)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	screen := ScreenBounds(root)
	want := core.Bounds{X: 0, Y: 0, Width: 1080, Height: 1920}
	if screen != want {
		t.Errorf("ScreenBounds = %+v, want %+v", screen, want)
	}
}
