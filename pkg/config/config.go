// Package config loads optional TOML configuration for diagram layout
// metrics. All values have working defaults; a config file only overrides
// what it names.
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mfreire/canvasflow/pkg/errors"
	"github.com/mfreire/canvasflow/pkg/flow"
	"github.com/mfreire/canvasflow/pkg/layout"
	"github.com/mfreire/canvasflow/pkg/structure"
)

// Config holds layout metrics for the converters.
type Config struct {
	Layout    Layout    `toml:"layout"`
	Flow      Flow      `toml:"flow"`
	Structure Structure `toml:"structure"`
}

// Layout configures the generic container layout engine defaults.
type Layout struct {
	NodeWidth  int `toml:"node_width"`
	NodeHeight int `toml:"node_height"`
	Spacing    int `toml:"spacing"`
	Padding    int `toml:"padding"`
}

// Flow configures the flowchart converter.
type Flow struct {
	NodeWidth    int `toml:"node_width"`
	NodeHeight   int `toml:"node_height"`
	HSpacing     int `toml:"h_spacing"`
	VSpacing     int `toml:"v_spacing"`
	DataSectionX int `toml:"data_section_x"`
}

// Structure configures the code-structure converter.
type Structure struct {
	NodeWidth     int  `toml:"node_width"`
	NodeHeight    int  `toml:"node_height"`
	Spacing       int  `toml:"spacing"`
	GroupPadding  int  `toml:"group_padding"`
	IncludeDocs   bool `toml:"include_docs"`
	IncludeParams bool `toml:"include_params"`
	MaxDepth      int  `toml:"max_depth"`
}

// Default returns the configuration with every metric at its package
// default.
func Default() Config {
	return Config{
		Layout: Layout{
			NodeWidth:  layout.DefaultNodeWidth,
			NodeHeight: layout.DefaultNodeHeight,
			Spacing:    layout.DefaultSpacing,
			Padding:    layout.DefaultPadding,
		},
		Flow: Flow{
			NodeWidth:    flow.DefaultNodeWidth,
			NodeHeight:   flow.DefaultNodeHeight,
			HSpacing:     flow.DefaultHSpacing,
			VSpacing:     flow.DefaultVSpacing,
			DataSectionX: flow.DefaultDataSectionX,
		},
		Structure: Structure{
			NodeWidth:     structure.DefaultNodeWidth,
			NodeHeight:    structure.DefaultNodeHeight,
			Spacing:       structure.DefaultSpacing,
			GroupPadding:  structure.DefaultGroupPadding,
			IncludeDocs:   true,
			IncludeParams: true,
			MaxDepth:      structure.DefaultMaxDepth,
		},
	}
}

// Load reads a TOML config file and overlays it on the defaults.
// A missing path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidPath, err, "failed to read config: %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "failed to parse config: %s", path)
	}

	return cfg, nil
}
