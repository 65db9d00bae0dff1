// Package config handles workspace configuration for qedriver.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/qe-first/qedriver/pkg/core"
	"github.com/qe-first/qedriver/pkg/encode"
	"github.com/qe-first/qedriver/pkg/extract"
)

// Config represents the workspace configuration (config.yaml). Every
// heuristic constant of the pipeline lives here so none of them is a
// hard-coded tuning decision.
type Config struct {
	// Device settings
	Device string `yaml:"device"` // adb serial; empty auto-detects

	// Pipeline files
	DumpFile      string `yaml:"dumpFile"`      // where the raw dump is saved
	SelectionFile string `yaml:"selectionFile"` // where the plan step persists its Selection

	// Timeouts (seconds)
	DumpTimeoutSeconds     int `yaml:"dumpTimeoutSeconds"`
	DecisionTimeoutSeconds int `yaml:"decisionTimeoutSeconds"`

	// Extraction heuristics
	Extract ExtractConfig `yaml:"extract"`

	// Encoding heuristics
	Encode EncodeConfig `yaml:"encode"`
}

// ExtractConfig mirrors extract.Options.
type ExtractConfig struct {
	MinWidth  int `yaml:"minWidth"`
	MinHeight int `yaml:"minHeight"`
}

// EncodeConfig mirrors encode.Options.
type EncodeConfig struct {
	MinRun int `yaml:"minRun"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		DumpFile:               "window_dump.xml",
		SelectionFile:          "selection.json",
		DumpTimeoutSeconds:     15,
		DecisionTimeoutSeconds: 30,
		Extract:                ExtractConfig{MinWidth: 20, MinHeight: 20},
		Encode:                 EncodeConfig{MinRun: 3},
	}
}

// Load loads configuration from a file, filling unset fields with
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- user-provided config file
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, core.ErrInvalidConfig.WithCause(err)
	}

	return cfg, nil
}

// LoadFromDir looks for config.yaml or config.yml in the directory.
// A missing file yields the defaults.
func LoadFromDir(dir string) (*Config, error) {
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	return Default(), nil
}

// ExtractOptions converts the extraction section.
func (c *Config) ExtractOptions() extract.Options {
	opts := extract.DefaultOptions()
	if c.Extract.MinWidth > 0 {
		opts.MinWidth = c.Extract.MinWidth
	}
	if c.Extract.MinHeight > 0 {
		opts.MinHeight = c.Extract.MinHeight
	}
	return opts
}

// EncodeOptions converts the encoding section.
func (c *Config) EncodeOptions() encode.Options {
	opts := encode.DefaultOptions()
	if c.Encode.MinRun > 1 {
		opts.MinRun = c.Encode.MinRun
	}
	return opts
}

// DumpTimeout returns the dump capture deadline.
func (c *Config) DumpTimeout() time.Duration {
	return time.Duration(c.DumpTimeoutSeconds) * time.Second
}

// DecisionTimeout returns the decision call deadline.
func (c *Config) DecisionTimeout() time.Duration {
	return time.Duration(c.DecisionTimeoutSeconds) * time.Second
}
