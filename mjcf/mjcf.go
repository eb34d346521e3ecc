// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mjcf loads the kinematic subset of MJCF model documents into a
// [model.Table]: the body tree with poses, geoms with default classes,
// mesh assets, joints and actuators. Dynamics, sensors, tendons and
// contacts are ignored.
package mjcf

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"cogentcore.org/simscene/model"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrParse is returned for malformed model documents.
var ErrParse = errors.New("mjcf: parse error")

// Model is a loaded model document.
type Model struct {

	// Name is the model name.
	Name string

	// Table has the bodies and geoms of the model.
	Table *model.Table

	// MeshDir is the mesh directory declared by the compiler settings,
	// relative to the document directory.
	MeshDir string

	// MeshFiles maps mesh asset names to their file names.
	MeshFiles map[string]string
}

// Open loads the given model document.
func Open(filename string) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("mjcf: %w", err)
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if m.MeshDir != "" && !filepath.IsAbs(m.MeshDir) {
		m.MeshDir = filepath.Join(filepath.Dir(filename), m.MeshDir)
	}
	return m, nil
}

// Decode reads a model document from r.
func Decode(r io.Reader) (*Model, error) {
	var doc xmlMujoco
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	ld := &loader{
		tb:        &model.Table{},
		geomDefs:  map[string]*xmlGeom{},
		jointDefs: map[string]*xmlJoint{},
		meshes:    map[string]string{},
		degrees:   doc.Compiler.Angle != "radian",
		eulerSeq:  "xyz",
	}
	if seq := doc.Compiler.EulerSeq; seq != "" {
		if len(seq) != 3 || strings.Trim(seq, "xyzXYZ") != "" {
			return nil, ld.errorf("compiler eulerseq %q: want three of xyzXYZ", seq)
		}
		ld.eulerSeq = seq
	}
	for _, d := range doc.Defaults {
		ld.addDefaults(d, "")
	}
	for _, a := range doc.Assets {
		for _, m := range a.Meshes {
			name := m.Name
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(m.File), filepath.Ext(m.File))
			}
			ld.meshes[name] = m.File
		}
	}
	if err := ld.addBodies(&doc.Worldbody); err != nil {
		return nil, err
	}
	for _, a := range doc.Actuators {
		ld.tb.NumActuators += len(a.Elements)
	}
	ld.tb.SetGeomRanges()
	return &Model{Name: doc.Model, Table: ld.tb, MeshDir: doc.Compiler.MeshDir, MeshFiles: ld.meshes}, nil
}

// loader has the state of loading one document.
type loader struct {
	tb        *model.Table
	geomDefs  map[string]*xmlGeom
	jointDefs map[string]*xmlJoint
	meshes    map[string]string
	degrees   bool
	eulerSeq  string
}

// defaultClass is the name of the top level default class.
const defaultClass = "main"

// addDefaults resolves a default class and its nested classes, which
// inherit from it.
func (ld *loader) addDefaults(d xmlDefault, parent string) {
	class := d.Class
	if class == "" {
		class = defaultClass
	}
	g := xmlGeom{}
	if d.Geom != nil {
		g = *d.Geom
	}
	g = g.merge(ld.geomDefs[parent])
	ld.geomDefs[class] = &g
	j := xmlJoint{}
	if d.Joint != nil {
		j = *d.Joint
	}
	j = j.merge(ld.jointDefs[parent])
	ld.jointDefs[class] = &j
	for _, c := range d.Defaults {
		ld.addDefaults(c, class)
	}
}

// addBodies adds the world body and all bodies below it in document
// order, which makes body ids increase from parents to children.
func (ld *loader) addBodies(world *xmlBody) error {
	type item struct {
		body   *xmlBody
		parent int
		class  string
	}
	stack := []item{{body: world, parent: model.WorldID, class: defaultClass}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		xb := it.body
		id := len(ld.tb.Bodies)
		name := xb.Name
		if id == model.WorldID {
			name = "world"
		}
		class := it.class
		if xb.ChildClass != "" {
			class = xb.ChildClass
		}
		b := model.Body{ID: id, Name: name, ParentID: it.parent, Quat: [4]float64{1, 0, 0, 0}}
		var err error
		if b.Pos, err = vec3(xb.Pos); err != nil {
			return ld.errorf("body %q pos: %v", name, err)
		}
		if b.Quat, err = ld.orientation(xb.Quat, xb.Euler); err != nil {
			return ld.errorf("body %q: %v", name, err)
		}
		ld.tb.Bodies = append(ld.tb.Bodies, b)
		for _, xg := range xb.Geoms {
			if err := ld.addGeom(id, xg, class); err != nil {
				return err
			}
		}
		if err := ld.addJoints(xb, class); err != nil {
			return err
		}
		for i := len(xb.Bodies) - 1; i >= 0; i-- {
			stack = append(stack, item{body: &xb.Bodies[i], parent: id, class: class})
		}
	}
	return nil
}

// addGeom adds a geom of the given body, filling unset attributes from
// the geom class or else the body class.
func (ld *loader) addGeom(body int, xg xmlGeom, class string) error {
	if xg.Class != "" {
		class = xg.Class
	}
	def, ok := ld.geomDefs[class]
	if !ok && class != defaultClass {
		return ld.errorf("geom %q: unknown class %q%s", xg.Name, class, suggest(class, keys(ld.geomDefs)))
	}
	xg = xg.merge(def)
	g := model.Geom{ID: len(ld.tb.Geoms), Name: xg.Name, BodyID: body, Kind: model.Sphere,
		Quat: [4]float64{1, 0, 0, 0}, RGBA: [4]float32{0.5, 0.5, 0.5, 1}, ContType: 1}
	if xg.Type != "" {
		if err := g.Kind.SetString(xg.Type); err != nil {
			return ld.errorf("geom %q: %v", xg.Name, err)
		}
	}
	var err error
	if xg.Size != "" {
		sz, err := floats(xg.Size, 1, 3)
		if err != nil {
			return ld.errorf("geom %q size: %v", xg.Name, err)
		}
		copy(g.Size[:], sz)
	}
	if g.Pos, err = vec3(xg.Pos); err != nil {
		return ld.errorf("geom %q pos: %v", xg.Name, err)
	}
	if g.Quat, err = ld.orientation(xg.Quat, xg.Euler); err != nil {
		return ld.errorf("geom %q: %v", xg.Name, err)
	}
	if xg.FromTo != "" {
		if err := fromTo(&g, xg.FromTo); err != nil {
			return ld.errorf("geom %q fromto: %v", xg.Name, err)
		}
	}
	if xg.RGBA != "" {
		c, err := floats(xg.RGBA, 4, 4)
		if err != nil {
			return ld.errorf("geom %q rgba: %v", xg.Name, err)
		}
		for i := range c {
			g.RGBA[i] = float32(c[i])
		}
	}
	if g.Group, err = integer(xg.Group, 0); err != nil {
		return ld.errorf("geom %q group: %v", xg.Name, err)
	}
	if g.ContType, err = integer(xg.ContType, 1); err != nil {
		return ld.errorf("geom %q contype: %v", xg.Name, err)
	}
	if g.Kind == model.Mesh {
		if _, ok := ld.meshes[xg.Mesh]; !ok {
			return ld.errorf("geom %q: unknown mesh %q%s", xg.Name, xg.Mesh, suggest(xg.Mesh, keys(ld.meshes)))
		}
		g.Mesh = xg.Mesh
	}
	ld.tb.Geoms = append(ld.tb.Geoms, g)
	return nil
}

// addJoints counts the generalized coordinates of the joints of a body.
func (ld *loader) addJoints(xb *xmlBody, class string) error {
	for range xb.FreeJoints {
		ld.tb.NumQPos += 7
		ld.tb.NumQVel += 6
	}
	for _, xj := range xb.Joints {
		c := class
		if xj.Class != "" {
			c = xj.Class
		}
		xj = xj.merge(ld.jointDefs[c])
		switch xj.Type {
		case "free":
			ld.tb.NumQPos += 7
			ld.tb.NumQVel += 6
		case "ball":
			ld.tb.NumQPos += 4
			ld.tb.NumQVel += 3
		case "", "hinge", "slide":
			ld.tb.NumQPos++
			ld.tb.NumQVel++
		default:
			return ld.errorf("joint %q: unknown type %q", xj.Name, xj.Type)
		}
	}
	return nil
}

// orientation returns the simulation-order quaternion for the quat or
// euler attribute, with quat taking precedence. Euler angles follow the
// compiler eulerseq.
func (ld *loader) orientation(quat, euler string) ([4]float64, error) {
	switch {
	case quat != "":
		q, err := floats(quat, 4, 4)
		if err != nil {
			return [4]float64{}, fmt.Errorf("quat: %w", err)
		}
		n := mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}.Normalize()
		return [4]float64{n.W, n.V[0], n.V[1], n.V[2]}, nil
	case euler != "":
		e, err := floats(euler, 3, 3)
		if err != nil {
			return [4]float64{}, fmt.Errorf("euler: %w", err)
		}
		if ld.degrees {
			for i := range e {
				e[i] = mgl64.DegToRad(e[i])
			}
		}
		// lower case axes rotate about the moving frame, upper case
		// about the fixed one
		q := mgl64.QuatIdent()
		for i, c := range ld.eulerSeq {
			var axis mgl64.Vec3
			axis[strings.IndexRune("xyz", unicode.ToLower(c))] = 1
			r := mgl64.QuatRotate(e[i], axis)
			if unicode.IsLower(c) {
				q = q.Mul(r)
			} else {
				q = r.Mul(q)
			}
		}
		return [4]float64{q.W, q.V[0], q.V[1], q.V[2]}, nil
	}
	return [4]float64{1, 0, 0, 0}, nil
}

// fromTo sets the position, orientation and half-length of a geom
// declared by the two end points of its Z axis.
func fromTo(g *model.Geom, s string) error {
	v, err := floats(s, 6, 6)
	if err != nil {
		return err
	}
	from, to := mgl64.Vec3{v[0], v[1], v[2]}, mgl64.Vec3{v[3], v[4], v[5]}
	axis := to.Sub(from)
	hl := axis.Len() / 2
	if hl == 0 {
		return errors.New("end points coincide")
	}
	g.Pos = from.Add(to).Mul(0.5)
	q := mgl64.QuatBetweenVectors(mgl64.Vec3{0, 0, 1}, axis.Normalize())
	g.Quat = [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
	if g.Kind == model.Box {
		g.Size[2] = hl
	} else {
		g.Size[1] = hl
	}
	return nil
}

// suggest returns a hint naming the closest candidate to name, if any.
func suggest(name string, candidates []string) string {
	if c := model.Closest(name, candidates); c != "" {
		return fmt.Sprintf("; did you mean %q?", c)
	}
	return ""
}

func keys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}

func (ld *loader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrParse}, args...)...)
}

// floats parses between lo and hi space separated numbers.
func floats(s string, lo, hi int) ([]float64, error) {
	fs := strings.Fields(s)
	if len(fs) < lo || len(fs) > hi {
		return nil, fmt.Errorf("%q: want %d to %d numbers", s, lo, hi)
	}
	v := make([]float64, len(fs))
	for i, f := range fs {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(x) {
			return nil, fmt.Errorf("%q: invalid number %q", s, f)
		}
		v[i] = x
	}
	return v, nil
}

func vec3(s string) (mgl64.Vec3, error) {
	if s == "" {
		return mgl64.Vec3{}, nil
	}
	v, err := floats(s, 3, 3)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{v[0], v[1], v[2]}, nil
}

func integer(s string, def int) (int, error) {
	if s == "" {
		return def, nil
	}
	return strconv.Atoi(strings.TrimSpace(s))
}
