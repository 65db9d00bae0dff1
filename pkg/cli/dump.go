package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/qe-first/qedriver/pkg/config"
	"github.com/qe-first/qedriver/pkg/device"
	"github.com/qe-first/qedriver/pkg/encode"
	"github.com/qe-first/qedriver/pkg/extract"
	"github.com/qe-first/qedriver/pkg/hierarchy"
	"github.com/qe-first/qedriver/pkg/logger"
)

var dumpCommand = &cli.Command{
	Name:  "dump",
	Usage: "Capture the UI tree and print it as JSON",
	Description: `Capture the accessibility tree from the connected device, save the raw
XML into the workspace and print the extracted element list.

Examples:
  qedriver dump
  qedriver dump --minimal
  qedriver dump --file window_dump.xml`,
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "minimal",
			Usage: "Print the compact short-keyed payload instead of the full JSON",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "Parse a previously saved dump instead of touching the device",
		},
	},
	Action: runDump,
}

func runDump(c *cli.Context) error {
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

	elements := extract.Extract(root, cfg.ExtractOptions())
	logger.Debug("extracted %d elements from %d nodes", len(elements), root.Size())

	var out []byte
	if c.Bool("minimal") {
		out, err = encode.Encode(elements, cfg.EncodeOptions()).Marshal()
	} else {
		out, err = encode.EncodeFull(elements).Marshal()
	}
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}

// obtainDump reads the dump from --file or captures a fresh one from
// the device, persisting the raw XML into the workspace.
func obtainDump(c *cli.Context, cfg *config.Config) (string, error) {
	if path := c.String("file"); path != "" {
		data, err := os.ReadFile(path) //#nosec G304 -- user-provided dump file
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return captureDump(c, cfg)
}

// captureDump pulls a fresh dump from the device and saves it.
func captureDump(c *cli.Context, cfg *config.Config) (string, error) {
	dev, err := device.New(cfg.Device)
	if err != nil {
		return "", err
	}
	return captureDumpWith(c, cfg, dev)
}

// captureDumpWith reuses an existing device connection.
func captureDumpWith(c *cli.Context, cfg *config.Config, dev *device.AndroidDevice) (string, error) {
	ctx, cancel := context.WithTimeout(c.Context, cfg.DumpTimeout())
	defer cancel()

	xml, err := dev.DumpUI(ctx)
	if err != nil {
		return "", err
	}

	path := workspacePath(c, cfg.DumpFile)
	if err := os.WriteFile(path, []byte(xml), 0o644); err != nil {
		return "", err
	}
	logger.Info("saved dump to %s", path)

	return xml, nil
}

// workspacePath resolves a config-relative file inside the workspace.
func workspacePath(c *cli.Context, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.String("workspace"), name)
}
