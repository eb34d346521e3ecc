// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdata provides reference model tables for tests.
package testdata

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/simscene/model"
	"github.com/go-gl/mathgl/mgl64"
)

// Identity is the identity quaternion in simulation order.
var Identity = [4]float64{1, 0, 0, 0}

// A1Names are the body names of the A1 quadruped, in id order.
var A1Names = []string{"world", "trunk",
	"FR_hip", "FR_thigh", "FR_calf",
	"FL_hip", "FL_thigh", "FL_calf",
	"RR_hip", "RR_thigh", "RR_calf",
	"RL_hip", "RL_thigh", "RL_calf"}

// A1Tree is the indented dump of the trunk tree of the A1 quadruped.
const A1Tree = `trunk
--RL_hip
----RL_thigh
------RL_calf
--RR_hip
----RR_thigh
------RR_calf
--FL_hip
----FL_thigh
------FL_calf
--FR_hip
----FR_thigh
------FR_calf
`

// A1 returns the table of the A1 quadruped: a floor plane on the world
// body, visual meshes on the trunk, hips and thighs, visual capsules on the
// calves, and collision-only primitives in group 3.
func A1() *model.Table {
	t := &model.Table{NumActuators: 12, NumQPos: 19, NumQVel: 18}
	add := func(name string, parent int, pos mgl64.Vec3) int {
		id := len(t.Bodies)
		t.Bodies = append(t.Bodies, model.Body{ID: id, Name: name, ParentID: parent, Pos: pos, Quat: Identity})
		return id
	}
	geom := func(body int, kind model.GeomKind, size [3]float64, group int, mesh string) {
		t.Geoms = append(t.Geoms, model.Geom{ID: len(t.Geoms), BodyID: body, Kind: kind, Quat: Identity,
			Size: size, RGBA: [4]float32{0.5, 0.5, 0.5, 1}, Group: group, Mesh: mesh})
	}
	add("world", model.WorldID, mgl64.Vec3{})
	trunk := add("trunk", model.WorldID, mgl64.Vec3{0, 0, 0.43})
	geom(model.WorldID, model.Plane, [3]float64{0, 0, 0.05}, 0, "")
	geom(trunk, model.Mesh, [3]float64{}, 1, "trunk")
	geom(trunk, model.Box, [3]float64{0.1335, 0.097, 0.057}, 3, "")
	legs := []struct {
		name string
		x, y float64
	}{{"FR", 0.183, -1}, {"FL", 0.183, 1}, {"RR", -0.183, -1}, {"RL", -0.183, 1}}
	for _, l := range legs {
		hip := add(l.name+"_hip", trunk, mgl64.Vec3{l.x, l.y * 0.047, 0})
		geom(hip, model.Mesh, [3]float64{}, 1, "hip")
		geom(hip, model.Cylinder, [3]float64{0.046, 0.02, 0}, 3, "")
		thigh := add(l.name+"_thigh", hip, mgl64.Vec3{0, l.y * 0.08505, 0})
		geom(thigh, model.Mesh, [3]float64{}, 1, "thigh")
		geom(thigh, model.Box, [3]float64{0.1, 0.01225, 0.017}, 3, "")
		calf := add(l.name+"_calf", thigh, mgl64.Vec3{0, 0, -0.2})
		geom(calf, model.Capsule, [3]float64{0.013, 0.1, 0}, 1, "")
		geom(calf, model.Sphere, [3]float64{0.02, 0, 0}, 3, "")
	}
	t.Meshes = map[string]*model.MeshData{}
	for _, nm := range []string{"trunk", "hip", "thigh"} {
		t.Meshes[nm] = Tetra(nm)
	}
	t.SetGeomRanges()
	return t
}

// Tetra returns a unit tetrahedron mesh with the given name.
func Tetra(name string) *model.MeshData {
	return &model.MeshData{
		Name: name,
		Vertices: []math32.Vector3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		Normals: []math32.Vector3{
			{-1, -1, -1}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		Indices: []uint32{0, 2, 1, 0, 1, 3, 0, 3, 2, 1, 2, 3},
	}
}
