// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom turns the compact geom descriptions of a [model.Table]
// into renderable meshes. It selects the single geom that represents
// each body, generates primitive meshes in render coordinates, and
// provides the anchor corrections between the two engines' primitive
// conventions.
package geom

import (
	"cogentcore.org/core/math32"
	"cogentcore.org/simscene/model"
	"github.com/go-gl/mathgl/mgl64"
)

// Select returns the renderable geom for the given body among the given
// candidates. Only geoms of the body with a visibility group below
// threshold qualify. Among those, a [model.Mesh] geom is preferred over
// primitives, then the lowest group, then the lowest id. If no geom
// qualifies, the body has no visual representation and ok is false.
func Select(body *model.Body, candidates []model.Geom, threshold int) (g model.Geom, ok bool) {
	for _, c := range candidates {
		if c.BodyID != body.ID || c.Group >= threshold {
			continue
		}
		if !ok || better(c, g) {
			g, ok = c, true
		}
	}
	return
}

// better returns whether a ranks before b for rendering.
func better(a, b model.Geom) bool {
	am, bm := a.Kind == model.Mesh, b.Kind == model.Mesh
	if am != bm {
		return am
	}
	if a.Group != b.Group {
		return a.Group < b.Group
	}
	return a.ID < b.ID
}

// anchorHeights is the anchor policy table: for each primitive kind that
// is generated standing on the XZ plane, the height of its center above
// the base as a function of the simulation size. The simulation places
// these primitives by their center. Kinds not listed are generated
// centered and need no correction.
var anchorHeights = map[model.GeomKind]func(size [3]float64) float64{
	model.Box:      func(size [3]float64) float64 { return size[2] },
	model.Capsule:  func(size [3]float64) float64 { return size[1] + size[0] },
	model.Cylinder: func(size [3]float64) float64 { return size[1] },
}

// AnchorCorrection returns the render space vector to subtract from the
// translation of a body rendered with the given primitive geom. It only
// ever has a vertical component. Mesh geoms carry their own anchoring and
// get a zero correction.
func AnchorCorrection(g model.Geom) mgl64.Vec3 {
	h, ok := anchorHeights[g.Kind]
	if !ok {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{0, h(g.Size), 0}
}

// GroundColor is the color of geoms attached to the world body.
var GroundColor = math32.Vec4(0.8, 0.4, 0.4, 1)

// Color returns the render color of the given geom.
func Color(g model.Geom) math32.Vector4 {
	if g.BodyID == model.WorldID {
		return GroundColor
	}
	return math32.Vec4(g.RGBA[0], g.RGBA[1], g.RGBA[2], g.RGBA[3])
}
