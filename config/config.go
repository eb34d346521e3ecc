// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config contains the configuration
// struct for the simscene tool.
package config

import (
	"fmt"
	"os"

	"cogentcore.org/core/base/errors"
	"cogentcore.org/core/cli"
	"cogentcore.org/simscene/frame"
	"cogentcore.org/simscene/posesync"
	"cogentcore.org/simscene/scene"
	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

// Config is the main config struct
// that contains all of the configuration
// options for the simscene tool.
type Config struct {

	// the model document (.xml) or table snapshot (.yaml) to load
	Model string `posarg:"0" required:"-" toml:"model"`

	// the directory of the OBJ mesh assets; if not specified,
	// the mesh directory of the model document is used
	Assets string `flag:"a,assets" toml:"assets"`

	// whether the simulation starts paused
	Pause bool `toml:"pause"`

	// the number of frames rendered per second of simulated time
	TargetFPS float64 `default:"60" toml:"target_fps"`

	// the maximum number of sub-steps in a single tick; 0 is unbounded
	MaxSubsteps int `default:"100000" toml:"max_substeps"`

	// the time step of the kinematic simulation, in seconds
	Timestep float64 `default:"0.002" toml:"timestep"`

	// geoms with a group below this are rendered
	OpacityThreshold int `default:"3" toml:"opacity_threshold"`

	// the rotation about X applied to the top body of each tree, in degrees
	RootCorrectionDeg float64 `default:"-90" toml:"root_correction_deg"`

	// the number of frames to run
	Frames int `default:"1" toml:"frames"`

	// the control vector; if not specified, all actuators are at zero
	Control []float64 `toml:"control"`

	// the file to write the final state snapshot to, as YAML
	Snapshot string `flag:"s,snapshot" toml:"snapshot"`

	// the file to write the model table to, as YAML
	Output string `flag:"o,output" default:"model.yaml" toml:"output"`

	// if specified, the tree command only prints the tree below this body
	Body string `flag:"b,body" toml:"body"`
}

// New returns a new config with default values.
func New() *Config {
	c := &Config{}
	errors.Log(cli.SetFromDefaults(c))
	return c
}

// Open returns the default config with the values of the given TOML
// file applied on top.
func Open(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c := New()
	if err := toml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return c, c.Validate()
}

// Save writes the config to the given TOML file.
func (c *Config) Save(filename string) error {
	b, err := toml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}

// ExpandPaths expands a leading ~ in the file paths of the config
// to the home directory.
func (c *Config) ExpandPaths() error {
	for _, p := range []*string{&c.Model, &c.Assets, &c.Snapshot, &c.Output} {
		e, err := homedir.Expand(*p)
		if err != nil {
			return err
		}
		*p = e
	}
	return nil
}

// Validate checks for settings that cannot be run.
func (c *Config) Validate() error {
	if c.TargetFPS <= 0 {
		return fmt.Errorf("config: target fps must be positive, not %g", c.TargetFPS)
	}
	if c.MaxSubsteps < 0 {
		return fmt.Errorf("config: max substeps must not be negative, not %d", c.MaxSubsteps)
	}
	if c.Timestep <= 0 {
		return fmt.Errorf("config: timestep must be positive, not %g", c.Timestep)
	}
	return nil
}

// Settings returns the stepping settings of the config.
func (c *Config) Settings() posesync.Settings {
	return posesync.Settings{Pause: c.Pause, TargetFPS: c.TargetFPS, MaxSubsteps: c.MaxSubsteps}
}

// SceneOptions returns the scene options of the config.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{Threshold: c.OpacityThreshold, RootCorrection: frame.RootCorrection(c.RootCorrectionDeg)}
}

// ControlFor returns the control vector for the given number of
// actuators: the configured one, or zeros if none is configured.
func (c *Config) ControlFor(n int) []float64 {
	if len(c.Control) == 0 {
		return make([]float64, n)
	}
	return c.Control
}
