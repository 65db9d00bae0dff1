package hierarchy

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/qe-first/qedriver/pkg/core"
)

// Parse reads an accessibility dump and returns the node tree. The
// returned root is a synthetic node standing in for the <hierarchy>
// wrapper; the device's top-level windows are its children.
//
// Supports both dump formats:
//   - uiautomator dump: <node> elements with a class attribute
//   - class-tagged dumps: the element tag is the class name
//
// Fails with core.ErrMalformedDump when the markup is not parseable and
// with core.ErrEmptyTree when the wrapper has no descendants.
func Parse(r io.Reader) (*RawNode, error) {
	decoder := xml.NewDecoder(r)

	var parseNode func(start xml.StartElement) (*RawNode, error)
	parseNode = func(start xml.StartElement) (*RawNode, error) {
		node := newNode(start)
		for {
			token, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			switch t := token.(type) {
			case xml.StartElement:
				child, err := parseNode(t)
				if err != nil {
					return nil, err
				}
				node.Children = append(node.Children, child)
			case xml.EndElement:
				return node, nil
			}
		}
	}

	root := &RawNode{Class: "hierarchy", Enabled: true, Visible: true}
	seenRoot := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.ErrMalformedDump.WithCause(err)
		}
		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		seenRoot = true
		if start.Name.Local == "hierarchy" {
			continue // children of the wrapper surface at this loop level
		}
		node, err := parseNode(start)
		if err != nil {
			if err == io.EOF {
				return nil, core.ErrMalformedDump.WithCause(io.ErrUnexpectedEOF)
			}
			return nil, core.ErrMalformedDump.WithCause(err)
		}
		root.Children = append(root.Children, node)
	}

	if !seenRoot {
		return nil, core.ErrMalformedDump
	}
	if len(root.Children) == 0 {
		return nil, core.ErrEmptyTree
	}
	return root, nil
}

// ParseString parses a dump held in memory.
func ParseString(dump string) (*RawNode, error) {
	return Parse(strings.NewReader(dump))
}

// ParseFile parses a dump previously saved to disk (e.g. window_dump.xml).
func ParseFile(path string) (*RawNode, error) {
	f, err := os.Open(path) //#nosec G304 -- user-provided dump file
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// ScreenBounds returns the union of the root's direct children, which in
// practice is the device screen. Zero bounds when nothing is known.
func ScreenBounds(root *RawNode) core.Bounds {
	var x2, y2 int
	for _, child := range root.Children {
		if right := child.Bounds.X + child.Bounds.Width; right > x2 {
			x2 = right
		}
		if bottom := child.Bounds.Y + child.Bounds.Height; bottom > y2 {
			y2 = bottom
		}
	}
	return core.BoundsFromCorners(0, 0, x2, y2)
}

func newNode(start xml.StartElement) *RawNode {
	node := &RawNode{
		Class:   start.Name.Local, // class-tagged format
		Enabled: true,
		Visible: true,
	}
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "text":
			node.Text = attr.Value
		case "resource-id":
			node.ResourceID = attr.Value
		case "content-desc":
			node.ContentDesc = attr.Value
		case "class":
			node.Class = attr.Value // override tag when the attr exists
		case "bounds":
			node.Bounds = parseBounds(attr.Value)
		case "clickable":
			node.Clickable = attr.Value == "true"
		case "enabled":
			node.Enabled = attr.Value == "true"
		case "focusable":
			node.Focusable = attr.Value == "true"
		case "scrollable":
			node.Scrollable = attr.Value == "true"
		case "long-clickable":
			node.LongClickable = attr.Value == "true"
		case "password":
			node.Password = attr.Value == "true"
		case "selected":
			node.Selected = attr.Value == "true"
		case "displayed", "visible-to-user":
			node.Visible = attr.Value != "false"
		}
	}
	return node
}

// parseBounds parses the Android bounds string "[x1,y1][x2,y2]".
// Unparseable or degenerate values yield zero-area bounds; the
// extractor filters those out as decorative.
func parseBounds(s string) core.Bounds {
	s = strings.ReplaceAll(s, "][", ",")
	s = strings.Trim(s, "[]")
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return core.Bounds{}
	}

	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return core.Bounds{}
		}
		vals[i] = v
	}

	return core.BoundsFromCorners(vals[0], vals[1], vals[2], vals[3])
}
