// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command simscene loads a physics model, builds its scene graph, and
// runs the pose synchronization of a kinematic simulation of it.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/core/cli"
	"cogentcore.org/simscene/bodytree"
	"cogentcore.org/simscene/config"
	"cogentcore.org/simscene/geom"
	"cogentcore.org/simscene/mjcf"
	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/posesync"
	"cogentcore.org/simscene/scene"
	"cogentcore.org/simscene/sim"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"
)

//go:generate core generate -add-funcs

func main() { //types:skip
	opts := cli.DefaultOptions("simscene", "Simscene builds the scene graph of a physics model and keeps it in sync with the simulation.")
	cli.Run(opts, config.New(), Tree, Run, Export, Watch)
}

// Tree loads the model and prints its body trees,
// with the geom each body is rendered with.
func Tree(c *config.Config) error { //cli:cmd -root
	tb, _, err := load(c)
	if err != nil {
		return err
	}
	f := bodytree.Build(tb.Bodies)
	roots := f.Roots
	if c.Body != "" {
		n := f.Find(c.Body)
		if n == nil {
			if s := model.Closest(c.Body, tb.BodyNames()); s != "" {
				return fmt.Errorf("simscene: unknown body %q; did you mean %q?", c.Body, s)
			}
			return fmt.Errorf("simscene: unknown body %q", c.Body)
		}
		roots = []int{n.Index}
	}
	printTree(os.Stdout, termenv.ColorProfile(), f, roots, tb, c.OpacityThreshold)
	return nil
}

// printTree writes the trees at the given roots, styled for the given
// terminal profile.
func printTree(w io.Writer, p termenv.Profile, f *bodytree.Forest, roots []int, tb *model.Table, threshold int) {
	name := p.Color("6")
	dim := p.Color("8")
	var b strings.Builder
	for _, r := range roots {
		f.Walk(r, func(n *bodytree.Node, depth int) bool {
			b.WriteString(strings.Repeat("--", depth))
			b.WriteString(p.String(n.Body.Name).Foreground(name).Bold().String())
			if g, ok := geom.Select(&n.Body, tb.GeomsOf(n.Body.ID), threshold); ok {
				fmt.Fprintf(&b, " %v", g.Kind)
				if g.Kind == model.Mesh {
					fmt.Fprintf(&b, " %q", g.Mesh)
				}
			} else {
				b.WriteString(p.String(" (not rendered)").Foreground(dim).String())
			}
			b.WriteByte('\n')
			return true
		})
	}
	io.WriteString(w, b.String())
}

// Run builds the scene and runs the configured number of frames of a
// kinematic simulation that moves each joint by its control value.
func Run(c *config.Config) error { //cli:cmd
	tb, fac, err := load(c)
	if err != nil {
		return err
	}
	opts := c.SceneOptions()
	sc, err := scene.Build(bodytree.Build(tb.Bodies), tb, fac, opts)
	if err != nil {
		return err
	}
	slog.Info("built scene", "nodes", len(sc.Nodes), "meshes", len(fac.Library()))

	s := sim.NewKinematic(tb, c.Timestep)
	s.Motion = sim.Hinge(mgl64.Vec3{0, 1, 0})
	r, err := posesync.NewRunner(s, tb, sc, opts, c.Settings(), c.ControlFor(tb.NumActuators))
	if err != nil {
		return err
	}
	for range c.Frames {
		if err := r.Tick(); err != nil {
			return err
		}
	}
	for _, n := range sc.BodyNodes() {
		slog.Info("pose", "node", n.Name, "pose", n.Pose.String())
	}
	st := r.Snapshot()
	slog.Info("ran", "frames", c.Frames, "time", st.Time, "substeps", r.Substeps())
	if c.Snapshot == "" {
		return nil
	}
	b, err := yaml.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(c.Snapshot, b, 0666)
}

// Export writes the model table as YAML.
func Export(c *config.Config) error { //cli:cmd
	tb, _, err := load(c)
	if err != nil {
		return err
	}
	if err := tb.Save(c.Output); err != nil {
		return err
	}
	slog.Info("exported", "model", c.Model, "output", c.Output, "bodies", len(tb.Bodies), "geoms", len(tb.Geoms))
	return nil
}

// load loads and validates the configured model, returning it with
// a mesh factory for its assets.
func load(c *config.Config) (*model.Table, *geom.Factory, error) {
	if c.Model == "" {
		return nil, nil, errors.New("simscene: no model specified")
	}
	if err := c.ExpandPaths(); err != nil {
		return nil, nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}
	var tb *model.Table
	var files map[string]string
	assets := c.Assets
	switch strings.ToLower(filepath.Ext(c.Model)) {
	case ".xml":
		m, err := mjcf.Open(c.Model)
		if err != nil {
			return nil, nil, err
		}
		tb = m.Table
		files = m.MeshFiles
		if assets == "" {
			assets = m.MeshDir
		}
	case ".yaml", ".yml":
		var err error
		tb, err = model.Open(c.Model)
		if err != nil {
			return nil, nil, err
		}
		if assets == "" {
			assets = filepath.Dir(c.Model)
		}
	default:
		return nil, nil, fmt.Errorf("simscene: unknown model format %q", c.Model)
	}
	if err := tb.Validate(c.OpacityThreshold); err != nil {
		return nil, nil, err
	}
	slog.Debug("loaded model", "model", c.Model, "bodies", len(tb.Bodies), "geoms", len(tb.Geoms), "actuators", tb.NumActuators)
	fac := geom.NewFactory(tb, assets)
	fac.Files = files
	return tb, fac, nil
}
