// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"cogentcore.org/core/gpu/shape"
	"cogentcore.org/core/math32"
	"cogentcore.org/simscene/model"
)

// Default tessellation of round shapes.
const (
	RadialSegs = 32
	CapSegs    = 16
)

// newPlane returns a plane facing +Y with the given extent along X and Z.
func newPlane(width, depth float32) shape.Mesh {
	return shape.NewPlane(math32.Y, width, depth)
}

// newBox returns a box with the given full size, centered at pos.
func newBox(size, pos math32.Vector3) shape.Mesh {
	bx := shape.NewBox(size.X, size.Y, size.Z)
	bx.Pos = pos
	return bx
}

// newSphere returns a sphere centered at the origin.
func newSphere(radius float32) shape.Mesh {
	sp := shape.NewSphere(radius, RadialSegs)
	sp.HeightSegs = CapSegs
	return sp
}

// newCapsule returns a Y axis capsule whose cylinder part has the given
// height, centered at pos.
func newCapsule(height, radius float32, pos math32.Vector3) shape.Mesh {
	cp := shape.NewCapsule(height, radius, RadialSegs, 1)
	cp.CapSegs = CapSegs
	cp.Pos = pos
	return cp
}

// newCylinder returns a closed Y axis cylinder centered at pos.
func newCylinder(height, radius float32, pos math32.Vector3) shape.Mesh {
	cy := shape.NewCylinder(height, radius, RadialSegs, 1, true, true)
	cy.Pos = pos
	return cy
}

// meshData generates sh and copies its buffers into a new mesh.
func meshData(sh shape.Mesh) *model.MeshData {
	sd := shape.NewMeshData(sh)
	md := &model.MeshData{
		Vertices: make([]math32.Vector3, sd.NumVertex),
		Normals:  make([]math32.Vector3, sd.NumVertex),
		Indices:  append([]uint32(nil), sd.Index...),
	}
	for i := range sd.NumVertex {
		md.Vertices[i].FromSlice(sd.Vertex, i*3)
		md.Normals[i].FromSlice(sd.Normal, i*3)
	}
	return md
}

// Bounds returns the bounding box of the vertices of md.
func Bounds(md *model.MeshData) math32.Box3 {
	bb := math32.B3Empty()
	for _, v := range md.Vertices {
		bb.ExpandByPoint(v)
	}
	return bb
}
