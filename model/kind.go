// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"fmt"
	"strings"
)

// GeomKind is the shape kind of a [Geom]. The values match the
// simulation's own geom type numbering.
type GeomKind int32

const (
	// Plane is an infinite or finite plane facing up.
	Plane GeomKind = iota

	// HeightField is a terrain height map.
	HeightField

	// Sphere has a radius in Size[0].
	Sphere

	// Capsule has a radius in Size[0] and a half-length in Size[1].
	Capsule

	// Ellipsoid has three radii.
	Ellipsoid

	// Cylinder has a radius in Size[0] and a half-length in Size[1].
	Cylinder

	// Box has three half-sizes.
	Box

	// Mesh refers to triangulated mesh data by name.
	Mesh

	GeomKindN
)

var geomKindNames = [...]string{"plane", "hfield", "sphere", "capsule", "ellipsoid", "cylinder", "box", "mesh"}

// String returns the lower-case name of the kind, as used in model documents.
func (k GeomKind) String() string {
	if k < 0 || k >= GeomKindN {
		return fmt.Sprintf("GeomKind(%d)", int32(k))
	}
	return geomKindNames[k]
}

// SetString sets the kind from its name, case insensitively.
func (k *GeomKind) SetString(s string) error {
	for i, nm := range geomKindNames {
		if strings.EqualFold(nm, s) {
			*k = GeomKind(i)
			return nil
		}
	}
	return fmt.Errorf("%q is not a valid value for type GeomKind", s)
}

// IsPrimitive returns whether the kind is generated from its size
// rather than from mesh data.
func (k GeomKind) IsPrimitive() bool {
	return k != Mesh
}

func (k GeomKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *GeomKind) UnmarshalText(text []byte) error {
	return k.SetString(string(text))
}
