// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package posesync drives a simulation and writes the resulting body poses
// onto scene nodes as parent-relative render transforms, once per frame.
package posesync

import (
	"cogentcore.org/simscene/frame"
	"cogentcore.org/simscene/geom"
	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/scene"
	"github.com/go-gl/mathgl/mgl64"
)

// Update sets the pose of every given scene node that represents a body
// from the absolute simulation poses xpos and xquat, indexed by body id.
// Nodes whose body has no renderable geom are skipped. The pose is the
// body pose relative to its parent body in render coordinates, with the
// root correction for bodies attached to the world and the anchor
// correction for primitive geoms. Nodes are only modified in place.
func Update(xpos []mgl64.Vec3, xquat []mgl64.Quat, tb *model.Table, nodes []*scene.Node, opts scene.Options) {
	for _, n := range nodes {
		if n.BodyID < 0 {
			continue
		}
		body := tb.Body(n.BodyID)
		if body == nil {
			continue
		}
		g, ok := geom.Select(body, tb.Geoms, opts.Threshold)
		if !ok {
			continue
		}
		child := frame.ToRender(frame.Pose64{Pos: xpos[body.ID], Quat: xquat[body.ID]})
		parent := frame.ToRender(frame.Pose64{Pos: xpos[body.ParentID], Quat: xquat[body.ParentID]})
		rel := frame.RelativePose(child, parent)
		if body.IsRoot() {
			rel = frame.CorrectRoot(rel, opts.RootCorrection)
		}
		if g.Kind.IsPrimitive() {
			rel.Pos = rel.Pos.Sub(geom.AnchorCorrection(g))
		}
		n.Pose = frame.Narrow(rel)
	}
}
