package encode

import (
	"encoding/json"

	"github.com/qe-first/qedriver/pkg/extract"
)

// Screen is the verbose wire form: everything the extractor knows about
// each element, for humans and debugging rather than token economy.
type Screen struct {
	ScreenElements    []ScreenElement `json:"screen_elements"`
	TotalElements     int             `json:"total_elements"`
	ClickableElements int             `json:"clickable_elements"`
}

// ScreenElement is one element in the verbose form.
type ScreenElement struct {
	Index       int         `json:"index"`
	Type        string      `json:"type"`
	Label       string      `json:"label"`
	Clickable   bool        `json:"clickable"`
	Enabled     bool        `json:"enabled"`
	Location    Location    `json:"location"`
	Size        Size        `json:"size"`
	Identifiers Identifiers `json:"identifiers"`
	Properties  Properties  `json:"properties"`
	UIClass     string      `json:"ui_class"`
}

// Location is the element's top-left corner.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is the element's pixel dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Identifiers carries the textual identity keys.
type Identifiers struct {
	ResourceID  string `json:"resource_id"`
	Text        string `json:"text"`
	ContentDesc string `json:"content_desc"`
}

// Properties carries the remaining state flags.
type Properties struct {
	Focusable     bool `json:"focusable"`
	Scrollable    bool `json:"scrollable"`
	LongClickable bool `json:"long_clickable"`
	Password      bool `json:"password"`
	Selected      bool `json:"selected"`
}

// EncodeFull produces the verbose screen form.
func EncodeFull(elements []extract.Element) Screen {
	out := Screen{ScreenElements: make([]ScreenElement, 0, len(elements))}
	for _, e := range elements {
		if e.Clickable {
			out.ClickableElements++
		}
		out.ScreenElements = append(out.ScreenElements, ScreenElement{
			Index:     e.Index,
			Type:      e.Role.String(),
			Label:     e.Label,
			Clickable: e.Clickable,
			Enabled:   e.Enabled,
			Location:  Location{X: e.Bounds.X, Y: e.Bounds.Y},
			Size:      Size{Width: e.Bounds.Width, Height: e.Bounds.Height},
			Identifiers: Identifiers{
				ResourceID:  e.ResourceID,
				Text:        e.Text,
				ContentDesc: e.ContentDesc,
			},
			Properties: Properties{
				Focusable:     e.Focusable,
				Scrollable:    e.Scrollable,
				LongClickable: e.LongClickable,
				Password:      e.Password,
				Selected:      e.Selected,
			},
			UIClass: e.Class,
		})
	}
	out.TotalElements = len(out.ScreenElements)
	return out
}

// Marshal renders the screen as indented JSON for terminal output.
func (s Screen) Marshal() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
