// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mjcf

import "encoding/xml"

// xmlMujoco matches the root element of a model document.
type xmlMujoco struct {
	Model     string        `xml:"model,attr"`
	Compiler  xmlCompiler   `xml:"compiler"`
	Defaults  []xmlDefault  `xml:"default"`
	Assets    []xmlAsset    `xml:"asset"`
	Worldbody xmlBody       `xml:"worldbody"`
	Actuators []xmlActuator `xml:"actuator"`
}

type xmlCompiler struct {
	Angle    string `xml:"angle,attr"`
	EulerSeq string `xml:"eulerseq,attr"`
	MeshDir  string `xml:"meshdir,attr"`
}

type xmlDefault struct {
	Class    string       `xml:"class,attr"`
	Geom     *xmlGeom     `xml:"geom"`
	Joint    *xmlJoint    `xml:"joint"`
	Defaults []xmlDefault `xml:"default"`
}

type xmlAsset struct {
	Meshes []xmlMesh `xml:"mesh"`
}

type xmlMesh struct {
	Name string `xml:"name,attr"`
	File string `xml:"file,attr"`
}

type xmlBody struct {
	Name       string         `xml:"name,attr"`
	ChildClass string         `xml:"childclass,attr"`
	Pos        string         `xml:"pos,attr"`
	Quat       string         `xml:"quat,attr"`
	Euler      string         `xml:"euler,attr"`
	Geoms      []xmlGeom      `xml:"geom"`
	Joints     []xmlJoint     `xml:"joint"`
	FreeJoints []xmlFreeJoint `xml:"freejoint"`
	Bodies     []xmlBody      `xml:"body"`
}

// xmlGeom has the geom attributes as strings, so that unset attributes
// can be filled from defaults.
type xmlGeom struct {
	Name     string `xml:"name,attr"`
	Class    string `xml:"class,attr"`
	Type     string `xml:"type,attr"`
	Size     string `xml:"size,attr"`
	Pos      string `xml:"pos,attr"`
	Quat     string `xml:"quat,attr"`
	Euler    string `xml:"euler,attr"`
	FromTo   string `xml:"fromto,attr"`
	RGBA     string `xml:"rgba,attr"`
	Mesh     string `xml:"mesh,attr"`
	Group    string `xml:"group,attr"`
	ContType string `xml:"contype,attr"`
}

type xmlJoint struct {
	Name  string `xml:"name,attr"`
	Class string `xml:"class,attr"`
	Type  string `xml:"type,attr"`
}

type xmlFreeJoint struct {
	Name string `xml:"name,attr"`
}

type xmlActuator struct {
	Elements []struct {
		XMLName xml.Name
	} `xml:",any"`
}

// merge returns g with every unset attribute taken from def.
// Names and classes are never inherited. The alternative forms of the
// orientation and of the placement are inherited as a group, and only
// when g sets none of them.
func (g xmlGeom) merge(def *xmlGeom) xmlGeom {
	if def == nil {
		return g
	}
	set := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	set(&g.Type, def.Type)
	set(&g.Size, def.Size)
	if g.Quat == "" && g.Euler == "" {
		g.Quat, g.Euler = def.Quat, def.Euler
	}
	if g.Pos == "" && g.FromTo == "" {
		g.Pos, g.FromTo = def.Pos, def.FromTo
	}
	set(&g.RGBA, def.RGBA)
	set(&g.Mesh, def.Mesh)
	set(&g.Group, def.Group)
	set(&g.ContType, def.ContType)
	return g
}

func (j xmlJoint) merge(def *xmlJoint) xmlJoint {
	if def != nil && j.Type == "" {
		j.Type = def.Type
	}
	return j
}
