package cli

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/qe-first/qedriver/pkg/hierarchy"
)

var hierarchyCommand = &cli.Command{
	Name:  "hierarchy",
	Usage: "Print the parsed node tree of the current screen",
	Description: `Print the raw parsed tree before any filtering, one node per line.
Useful for debugging why an element was or was not extracted.

Examples:
  qedriver hierarchy
  qedriver hierarchy --file window_dump.xml`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "file",
			Usage: "Parse a previously saved dump instead of touching the device",
		},
	},
	Action: runHierarchy,
}

func runHierarchy(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	xml, err := obtainDump(c, cfg)
	if err != nil {
		return err
	}

	root, err := hierarchy.ParseString(xml)
	if err != nil {
		return err
	}

	for _, child := range root.Children {
		printNode(child, 0)
	}
	return nil
}

func printNode(node *hierarchy.RawNode, depth int) {
	var flags []string
	if node.Clickable {
		flags = append(flags, "clickable")
	}
	if node.Scrollable {
		flags = append(flags, "scrollable")
	}
	if node.Focusable {
		flags = append(flags, "focusable")
	}
	if !node.Enabled {
		flags = append(flags, "disabled")
	}
	if !node.Visible {
		flags = append(flags, "hidden")
	}

	line := fmt.Sprintf("%s%s", strings.Repeat("  ", depth), node.Class)
	if node.Text != "" {
		line += fmt.Sprintf(" text=%q", node.Text)
	}
	if node.ResourceID != "" {
		line += fmt.Sprintf(" id=%s", node.ResourceID)
	}
	if node.ContentDesc != "" {
		line += fmt.Sprintf(" desc=%q", node.ContentDesc)
	}
	line += fmt.Sprintf(" [%d,%d %dx%d]", node.Bounds.X, node.Bounds.Y, node.Bounds.Width, node.Bounds.Height)
	if len(flags) > 0 {
		line += " (" + strings.Join(flags, ",") + ")"
	}
	fmt.Println(line)

	for _, child := range node.Children {
		printNode(child, depth+1)
	}
}
