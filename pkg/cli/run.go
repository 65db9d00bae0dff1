package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/qe-first/qedriver/pkg/device"
	"github.com/qe-first/qedriver/pkg/extract"
	"github.com/qe-first/qedriver/pkg/hierarchy"
	"github.com/qe-first/qedriver/pkg/logger"
	"github.com/qe-first/qedriver/pkg/planner"
	"github.com/qe-first/qedriver/pkg/resolve"
)

var runCommand = &cli.Command{
	Name:  "run",
	Usage: "Relocate the planned element on the live screen and tap it",
	Description: `Capture a fresh dump, relocate the persisted selection by identity
keys, confirm, and tap. The screen may have shifted since plan time;
resolution falls back from exact identity to relaxed matching to the
original position, and aborts rather than tap blind.

Examples:
  qedriver run
  qedriver run --yes`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:    "yes",
			Aliases: []string{"y"},
			Usage:   "Skip the confirmation prompt",
		},
	},
	Action: runRun,
}

func runRun(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	selPath := workspacePath(c, cfg.SelectionFile)
	sel, err := planner.Load(selPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s not found; run 'qedriver plan' first", selPath)
		}
		return err
	}

	dev, err := device.New(cfg.Device)
	if err != nil {
		return err
	}

	// Always a fresh capture: the screen may have changed since plan
	// time, and resolution must run against what is live right now.
	xml, err := captureDumpWith(c, cfg, dev)
	if err != nil {
		return err
	}

	root, err := hierarchy.ParseString(xml)
	if err != nil {
		return err
	}

	elements := extract.Extract(root, cfg.ExtractOptions())
	target, err := resolve.Resolve(sel, elements, hierarchy.ScreenBounds(root))
	if err != nil {
		return err
	}

	printTarget(sel, target)

	if !c.Bool("yes") && !confirm("Proceed?") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := dev.Tap(target.X, target.Y); err != nil {
		return err
	}

	logger.Info("tapped (%d,%d) with %s confidence", target.X, target.Y, target.Confidence)
	fmt.Println("Tap performed successfully.")
	return nil
}

func printTarget(sel planner.Selection, target *resolve.ResolvedTarget) {
	fmt.Println("Will tap:")
	if sel.Label != "" {
		fmt.Printf("  Label: %s\n", sel.Label)
	}
	if sel.ResourceID != "" {
		fmt.Printf("  Resource ID: %s\n", sel.ResourceID)
	}
	fmt.Printf("  Point: (%d,%d)\n", target.X, target.Y)
	fmt.Printf("  Confidence: %s\n", target.Confidence)
	if target.Confidence == resolve.ConfidenceFallback {
		fmt.Println("  Warning: no identity match on the live screen; using the planned position.")
	}
}

// confirm asks a Y/N question on stdin, defaulting to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
