// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"cogentcore.org/core/base/ordmap"
	"cogentcore.org/core/gpu/shape"
	"cogentcore.org/core/math32"
	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/obj"
	"github.com/zeebo/xxh3"
)

// ErrUnsupportedKind is returned for geom kinds that cannot be rendered.
var ErrUnsupportedKind = errors.New("geom: unsupported geometry kind")

// InfinitePlaneExtent is the extent of planes the model declares as infinite.
const InfinitePlaneExtent = 1e6

// Factory makes the meshes for the geoms of a model table. Meshes are
// made once and kept in an ordered library, so geoms with the same
// shape share one mesh. It is safe for concurrent use.
type Factory struct {

	// Table supplies mesh data for [model.Mesh] geoms.
	Table *model.Table

	// AssetDir is the directory with <mesh>.obj files for mesh geoms
	// the table has no data for.
	AssetDir string

	// Files maps mesh names to asset file names. OBJ files listed here
	// are used in place of <mesh>.obj.
	Files map[string]string

	// PlaneExtent replaces the size of planes declared infinite.
	PlaneExtent float32

	mu      sync.Mutex
	library *ordmap.Map[uint64, *model.MeshData]
}

// NewFactory returns a new factory for the given table and asset directory.
func NewFactory(tb *model.Table, assetDir string) *Factory {
	return &Factory{Table: tb, AssetDir: assetDir, PlaneExtent: InfinitePlaneExtent,
		library: ordmap.New[uint64, *model.MeshData]()}
}

// MeshName returns the library name of the mesh for the given geom.
func MeshName(g model.Geom) string {
	if g.Kind == model.Mesh {
		return "mesh:" + g.Mesh
	}
	return fmt.Sprintf("%v:%g:%g:%g", g.Kind, g.Size[0], g.Size[1], g.Size[2])
}

// MeshFor returns the render mesh for the given geom, making it on first
// use. Ellipsoid and height field geoms return [ErrUnsupportedKind].
// A mesh geom without table data or asset file returns the I/O error.
func (f *Factory) MeshFor(g model.Geom) (*model.MeshData, error) {
	name := MeshName(g)
	key := xxh3.HashString(name)
	f.mu.Lock()
	defer f.mu.Unlock()
	if md, ok := f.library.ValueByKeyTry(key); ok {
		return md, nil
	}
	md, err := f.makeMesh(g)
	if err != nil {
		return nil, err
	}
	md.Name = name
	f.library.Add(key, md)
	return md, nil
}

// Library returns the meshes made so far, in the order they were made.
func (f *Factory) Library() []*model.MeshData {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.library.Values()
}

func (f *Factory) makeMesh(g model.Geom) (*model.MeshData, error) {
	// render axes: Y up
	sx, sy, sz := float32(g.Size[0]), float32(g.Size[2]), float32(g.Size[1])
	var sh shape.Mesh
	switch g.Kind {
	case model.Plane:
		w, d := 2*sx, 2*sz
		if sx == 0 {
			w, d = f.PlaneExtent, f.PlaneExtent
		} else if sz == 0 {
			d = w
		}
		sh = newPlane(w, d)
	case model.Box:
		sh = newBox(math32.Vec3(2*sx, 2*sy, 2*sz), math32.Vec3(0, sy, 0))
	case model.Sphere:
		sh = newSphere(sx)
	case model.Capsule:
		hl := float32(g.Size[1])
		sh = newCapsule(2*hl, sx, math32.Vec3(0, hl+sx, 0))
	case model.Cylinder:
		hl := float32(g.Size[1])
		sh = newCylinder(2*hl, sx, math32.Vec3(0, hl, 0))
	case model.Mesh:
		return f.loadMesh(g.Mesh)
	default:
		return nil, fmt.Errorf("%w: %v (geom %d)", ErrUnsupportedKind, g.Kind, g.ID)
	}
	return meshData(sh), nil
}

// loadMesh returns the render mesh for the named mesh data, from the
// table or else from the asset directory.
func (f *Factory) loadMesh(name string) (*model.MeshData, error) {
	if f.Table != nil {
		if md, ok := f.Table.Meshes[name]; ok {
			return ToRender(md), nil
		}
	}
	file := name + ".obj"
	if fn, ok := f.Files[name]; ok && strings.EqualFold(filepath.Ext(fn), ".obj") {
		file = fn
	}
	md, err := obj.Open(filepath.Join(f.AssetDir, file))
	if err != nil {
		return nil, fmt.Errorf("geom: loading mesh %q: %w", name, err)
	}
	return ToRender(md), nil
}

// ToRender returns a copy of simulation mesh data in render coordinates.
// Swapping the Y and Z axes mirrors the mesh, so triangle winding is
// reversed to keep faces pointing outward.
func ToRender(md *model.MeshData) *model.MeshData {
	swap := func(v math32.Vector3) math32.Vector3 { return math32.Vec3(v.X, v.Z, v.Y) }
	rd := &model.MeshData{Name: md.Name,
		Vertices: make([]math32.Vector3, len(md.Vertices)),
		Normals:  make([]math32.Vector3, len(md.Normals)),
		Indices:  make([]uint32, len(md.Indices))}
	for i, v := range md.Vertices {
		rd.Vertices[i] = swap(v)
	}
	for i, n := range md.Normals {
		rd.Normals[i] = swap(n)
	}
	for i := 0; i+2 < len(md.Indices); i += 3 {
		rd.Indices[i], rd.Indices[i+1], rd.Indices[i+2] = md.Indices[i], md.Indices[i+2], md.Indices[i+1]
	}
	return rd
}
