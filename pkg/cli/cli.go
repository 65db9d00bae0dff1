// Package cli provides the command-line interface for qedriver.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/qe-first/qedriver/pkg/config"
	"github.com/qe-first/qedriver/pkg/logger"
)

// Version is set at build time.
var Version = "dev"

// GlobalFlags are available to all commands.
var GlobalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "device",
		Aliases: []string{"udid"},
		Usage:   "Device serial to target (auto-detected when omitted)",
		EnvVars: []string{"QEDRIVER_DEVICE"},
	},
	&cli.StringFlag{
		Name:    "workspace",
		Aliases: []string{"w"},
		Usage:   "Workspace directory holding config.yaml, the saved dump and the selection",
		Value:   ".",
		EnvVars: []string{"QEDRIVER_WORKSPACE"},
	},
	&cli.BoolFlag{
		Name:    "verbose",
		Usage:   "Enable verbose logging",
		EnvVars: []string{"QEDRIVER_VERBOSE"},
	},
}

// Execute runs the CLI.
func Execute() {
	// .env is optional; it carries the decision-function credentials.
	_ = godotenv.Load()

	app := &cli.App{
		Name:    "qedriver",
		Usage:   "Zero-instrumentation Android UI driver",
		Version: Version,
		Description: `qedriver reads the live accessibility tree over adb, compresses it
into a compact element list, asks a decision function (LLM or stub)
to choose a target, and replays the choice by element identity.

Examples:
  qedriver dump --minimal
  qedriver plan --goal "log in with the test account"
  qedriver run`,
		Flags: GlobalFlags,
		Before: func(c *cli.Context) error {
			logger.Init(c.Bool("verbose"))
			return nil
		},
		Commands: []*cli.Command{
			dumpCommand,
			planCommand,
			runCommand,
			hierarchyCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the workspace config and applies flag overrides.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFromDir(c.String("workspace"))
	if err != nil {
		return nil, err
	}
	if serial := c.String("device"); serial != "" {
		cfg.Device = serial
	}
	return cfg, nil
}
