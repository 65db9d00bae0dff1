package cli

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/qe-first/qedriver/pkg/encode"
	"github.com/qe-first/qedriver/pkg/extract"
	"github.com/qe-first/qedriver/pkg/hierarchy"
	"github.com/qe-first/qedriver/pkg/logger"
	"github.com/qe-first/qedriver/pkg/planner"
)

var planCommand = &cli.Command{
	Name:  "plan",
	Usage: "Ask the decision function to choose an element and persist the choice",
	Description: `Encode the saved dump into the minimal payload, hand it to the decision
function together with the goal, and persist the chosen element's
identity for a later run step.

Examples:
  qedriver plan --goal "open the settings screen"
  qedriver plan --stub
  qedriver plan --fresh --goal "log in"`,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "goal",
			Aliases: []string{"g"},
			Usage:   "What the decision function should achieve on this screen",
		},
		&cli.BoolFlag{
			Name:  "stub",
			Usage: "Use the offline stub decider instead of the LLM",
		},
		&cli.BoolFlag{
			Name:  "fresh",
			Usage: "Capture a fresh dump instead of reading the saved one",
		},
	},
	Action: runPlan,
}

func runPlan(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	var xml string
	if c.Bool("fresh") {
		xml, err = captureDump(c, cfg)
		if err != nil {
			return err
		}
	} else {
		path := workspacePath(c, cfg.DumpFile)
		data, err := os.ReadFile(path) //#nosec G304 -- workspace dump file
		if err != nil {
			return fmt.Errorf("%s not found; run 'qedriver dump' first", path)
		}
		xml = string(data)
	}

	root, err := hierarchy.ParseString(xml)
	if err != nil {
		return err
	}

	elements := extract.Extract(root, cfg.ExtractOptions())
	payload, err := encode.Encode(elements, cfg.EncodeOptions()).Marshal()
	if err != nil {
		return err
	}

	var decider planner.Decider
	if c.Bool("stub") {
		decider = planner.StubDecider{}
	} else {
		decider, err = planner.NewLLMDecider(logger.L())
		if err != nil {
			return err
		}
		if c.String("goal") == "" {
			return fmt.Errorf("--goal is required unless --stub is set")
		}
	}

	adapter := planner.NewAdapter(decider, cfg.DecisionTimeout())
	sel, err := adapter.Plan(c.Context, elements, payload, c.String("goal"))
	if err != nil {
		return err
	}

	printSelection(sel)

	path := workspacePath(c, cfg.SelectionFile)
	if err := sel.Save(path); err != nil {
		return err
	}
	logger.Info("saved selection to %s", path)

	return nil
}

func printSelection(sel planner.Selection) {
	fmt.Println("Chosen element:")
	fmt.Printf("  Index: %d\n", sel.Index)
	fmt.Printf("  Role:  %s\n", sel.Role)
	if sel.Label != "" {
		fmt.Printf("  Label: %s\n", sel.Label)
	}
	if sel.ResourceID != "" {
		fmt.Printf("  Resource ID: %s\n", sel.ResourceID)
	}
	if sel.ContentDesc != "" {
		fmt.Printf("  Content Description: %s\n", sel.ContentDesc)
	}
}
