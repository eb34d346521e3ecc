// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model provides the flat, parent-indexed tables of bodies and
// geoms that a physics simulation uses to describe a mechanism.
// A [Table] is read-only once loaded and may be shared freely.
package model

import (
	"cogentcore.org/core/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// WorldID is the id of the body representing the immovable world frame.
const WorldID = 0

// Body is one rigid link of a mechanism. Pos and Quat are relative to
// the parent body, in the simulation convention.
type Body struct {
	ID       int    `yaml:"id"`
	Name     string `yaml:"name"`
	ParentID int    `yaml:"parent_id"`

	// GeomNum is the number of geoms the model declares for this body.
	GeomNum int `yaml:"geom_num"`

	// GeomAdr is the id of the first geom of this body, or -1.
	GeomAdr int `yaml:"geom_adr"`

	Pos mgl64.Vec3 `yaml:"pos,flow"`

	// Quat is stored in simulation order: w, x, y, z.
	Quat [4]float64 `yaml:"quat,flow"`
}

// IsRoot returns whether the body hangs directly off the world.
func (b *Body) IsRoot() bool {
	return b.ParentID == WorldID
}

// IsSelfParented returns whether the body names itself as its parent,
// which is the case for the world sentinel.
func (b *Body) IsSelfParented() bool {
	return b.ID == b.ParentID
}

// Geom is a collision or visual shape attached to a body, with a pose
// local to that body.
type Geom struct {
	ID     int      `yaml:"id"`
	Name   string   `yaml:"name,omitempty"`
	BodyID int      `yaml:"body_id"`
	Kind   GeomKind `yaml:"kind"`

	Pos mgl64.Vec3 `yaml:"pos,flow"`

	// Quat is stored in simulation order: w, x, y, z.
	Quat [4]float64 `yaml:"quat,flow"`

	// Size holds the kind-specific size parameters (radii and half-sizes).
	Size [3]float64 `yaml:"size,flow"`

	RGBA [4]float32 `yaml:"rgba,flow"`

	// Mesh is the name of the mesh for [Mesh] kind geoms.
	Mesh string `yaml:"mesh,omitempty"`

	// Group is the visibility group. Geoms at or above the
	// configured threshold are collision only.
	Group int `yaml:"group"`

	ContType int `yaml:"contype"`
}

// MeshData is triangulated mesh data. Mesh data held by a [Table] is in
// simulation coordinates; generated meshes are in render coordinates.
type MeshData struct {
	Name     string           `yaml:"name"`
	Vertices []math32.Vector3 `yaml:"vertices"`
	Normals  []math32.Vector3 `yaml:"normals"`
	Indices  []uint32         `yaml:"indices,flow"`
}

// NumTriangles returns the number of triangles in the mesh.
func (md *MeshData) NumTriangles() int {
	return len(md.Indices) / 3
}

// Table is a load-time snapshot of a mechanism. Body ids are indexes
// into Bodies and geom ids are indexes into Geoms.
type Table struct {
	Bodies []Body `yaml:"bodies"`
	Geoms  []Geom `yaml:"geoms"`

	// Meshes has mesh data supplied by the model, by name.
	Meshes map[string]*MeshData `yaml:"meshes,omitempty"`

	NumActuators int `yaml:"nu"`
	NumQPos      int `yaml:"nq"`
	NumQVel      int `yaml:"nv"`
}

// Body returns the body with the given id, or nil.
func (t *Table) Body(id int) *Body {
	if id < 0 || id >= len(t.Bodies) {
		return nil
	}
	return &t.Bodies[id]
}

// BodyByName returns the first body with the given name, or nil.
func (t *Table) BodyByName(name string) *Body {
	for i := range t.Bodies {
		if t.Bodies[i].Name == name {
			return &t.Bodies[i]
		}
	}
	return nil
}

// GeomsOf returns the geoms attached to the given body, in id order.
func (t *Table) GeomsOf(bodyID int) []Geom {
	var gs []Geom
	for _, g := range t.Geoms {
		if g.BodyID == bodyID {
			gs = append(gs, g)
		}
	}
	return gs
}

// SetGeomRanges recomputes GeomNum and GeomAdr of every body from the
// geoms table. Loaders call this after appending geoms.
func (t *Table) SetGeomRanges() {
	for i := range t.Bodies {
		t.Bodies[i].GeomNum = 0
		t.Bodies[i].GeomAdr = -1
	}
	for _, g := range t.Geoms {
		b := t.Body(g.BodyID)
		if b == nil {
			continue
		}
		if b.GeomNum == 0 {
			b.GeomAdr = g.ID
		}
		b.GeomNum++
	}
}
