// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mjcf

import (
	"path/filepath"
	"strings"
	"testing"

	"cogentcore.org/simscene/bodytree"
	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/model/testdata"
	"cogentcore.org/core/base/tolassert"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertVec asserts that each component of got is within tol of want.
func assertVec(t *testing.T, want, got mgl64.Vec3, tol float64, msgAndArgs ...any) {
	t.Helper()
	tolassert.EqualTolSlice(t, want[:], got[:], tol, msgAndArgs...)
}

func TestOpenA1(t *testing.T) {
	m, err := Open(filepath.Join("testdata", "a1.xml"))
	require.NoError(t, err)
	assert.Equal(t, "a1", m.Name)
	assert.Equal(t, filepath.Join("testdata", "assets"), m.MeshDir)
	assert.Equal(t, map[string]string{"trunk": "trunk.obj", "hip": "hip.obj", "thigh": "thigh_mirror.obj"}, m.MeshFiles)

	tb := m.Table
	want := testdata.A1()
	var names []string
	for _, b := range tb.Bodies {
		names = append(names, b.Name)
	}
	assert.Equal(t, testdata.A1Names, names)
	assert.Equal(t, 12, tb.NumActuators)
	assert.Equal(t, 19, tb.NumQPos)
	assert.Equal(t, 18, tb.NumQVel)
	require.NoError(t, tb.Validate(3))

	for i, b := range tb.Bodies {
		wb := want.Bodies[i]
		assert.Equal(t, wb.ParentID, b.ParentID, b.Name)
		assert.Equal(t, wb.GeomNum, b.GeomNum, b.Name)
		assert.Equal(t, wb.GeomAdr, b.GeomAdr, b.Name)
		assertVec(t, wb.Pos, b.Pos, 1e-12, b.Name)
		assert.Equal(t, testdata.Identity, b.Quat, b.Name)
	}
	require.Len(t, tb.Geoms, len(want.Geoms))
	for i, g := range tb.Geoms {
		wg := want.Geoms[i]
		assert.Equal(t, wg.BodyID, g.BodyID, i)
		assert.Equal(t, wg.Kind, g.Kind, i)
		assert.Equal(t, wg.Size, g.Size, i)
		assert.Equal(t, wg.Group, g.Group, i)
		assert.Equal(t, wg.Mesh, g.Mesh, i)
		assert.Equal(t, wg.RGBA, g.RGBA, i)
	}
	assert.Equal(t, "floor", tb.Geoms[0].Name)
	assert.Equal(t, 1, tb.Geoms[0].ContType)
	assert.Equal(t, 0, tb.Geoms[1].ContType)

	f := bodytree.Build(tb.Bodies)
	assert.Equal(t, "world\n"+testdata.A1Tree, f.String())
}

func TestOrientation(t *testing.T) {
	const doc = `<mujoco>
  <worldbody>
    <body name="a" euler="0 0 90">
      <geom type="capsule" size="0.1" fromto="0 0 0 1 0 0"/>
      <body name="b" quat="2 0 0 0">
        <geom type="box" size="1 1 1" euler="90 0 0"/>
      </body>
    </body>
  </worldbody>
</mujoco>`
	m, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	tb := m.Table

	a := tb.BodyByName("a")
	require.NotNil(t, a)
	q := mgl64.Quat{W: a.Quat[0], V: mgl64.Vec3{a.Quat[1], a.Quat[2], a.Quat[3]}}
	assertVec(t, mgl64.Vec3{0, 1, 0}, q.Rotate(mgl64.Vec3{1, 0, 0}), 1e-12)
	assert.Equal(t, [4]float64{1, 0, 0, 0}, tb.BodyByName("b").Quat)

	capsule := tb.Geoms[0]
	assert.Equal(t, model.Capsule, capsule.Kind)
	assertVec(t, mgl64.Vec3{0.5, 0, 0}, capsule.Pos, 1e-12)
	assert.InDelta(t, 0.1, capsule.Size[0], 1e-12)
	assert.InDelta(t, 0.5, capsule.Size[1], 1e-12)
	cq := mgl64.Quat{W: capsule.Quat[0], V: mgl64.Vec3{capsule.Quat[1], capsule.Quat[2], capsule.Quat[3]}}
	assertVec(t, mgl64.Vec3{1, 0, 0}, cq.Rotate(mgl64.Vec3{0, 0, 1}), 1e-12)

	box := tb.Geoms[1]
	bq := mgl64.Quat{W: box.Quat[0], V: mgl64.Vec3{box.Quat[1], box.Quat[2], box.Quat[3]}}
	assertVec(t, mgl64.Vec3{0, 0, 1}, bq.Rotate(mgl64.Vec3{0, 1, 0}), 1e-12)
}

func simQuat(q [4]float64) mgl64.Quat {
	return mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}
}

func TestDefaultOrientation(t *testing.T) {
	const doc = `<mujoco>
  <default>
    <geom quat="1 0 0 0" pos="0 0 1"/>
  </default>
  <worldbody>
    <geom name="euler" type="box" size="1 1 1" euler="90 0 0"/>
    <geom name="fromto" type="capsule" size="0.1" fromto="0 0 0 2 0 0"/>
    <geom name="plain" type="box" size="1 1 1"/>
  </worldbody>
</mujoco>`
	m, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	geoms := m.Table.Geoms
	require.Len(t, geoms, 3)

	q := simQuat(geoms[0].Quat)
	assertVec(t, mgl64.Vec3{0, 0, 1}, q.Rotate(mgl64.Vec3{0, 1, 0}), 1e-12)
	assertVec(t, mgl64.Vec3{0, 0, 1}, geoms[0].Pos, 1e-12)

	assertVec(t, mgl64.Vec3{1, 0, 0}, geoms[1].Pos, 1e-12)
	assertVec(t, mgl64.Vec3{1, 0, 0}, simQuat(geoms[1].Quat).Rotate(mgl64.Vec3{0, 0, 1}), 1e-12)

	assert.Equal(t, [4]float64{1, 0, 0, 0}, geoms[2].Quat)
	assertVec(t, mgl64.Vec3{0, 0, 1}, geoms[2].Pos, 1e-12)
}

func TestEulerSeq(t *testing.T) {
	tests := []struct {
		seq  string
		want [4]float64
	}{
		{"", [4]float64{0.5, 0.5, 0.5, 0.5}},
		{"xyz", [4]float64{0.5, 0.5, 0.5, 0.5}},
		{"zyx", [4]float64{0.5, -0.5, 0.5, 0.5}},
		{"XYZ", [4]float64{0.5, 0.5, 0.5, -0.5}},
		{"ZYX", [4]float64{0.5, 0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.seq, func(t *testing.T) {
			doc := `<mujoco>
  <compiler eulerseq="` + tt.seq + `"/>
  <worldbody><body name="b" euler="90 90 0"/></worldbody>
</mujoco>`
			m, err := Decode(strings.NewReader(doc))
			require.NoError(t, err)
			tolassert.EqualTolSlice(t, tt.want[:], m.Table.BodyByName("b").Quat[:], 1e-12)
		})
	}
}

func TestDefaults(t *testing.T) {
	const doc = `<mujoco>
  <worldbody>
    <geom/>
    <body name="a">
      <joint type="ball"/>
      <joint type="slide"/>
    </body>
  </worldbody>
</mujoco>`
	m, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	g := m.Table.Geoms[0]
	assert.Equal(t, model.Sphere, g.Kind)
	assert.Equal(t, [4]float32{0.5, 0.5, 0.5, 1}, g.RGBA)
	assert.Equal(t, 0, g.Group)
	assert.Equal(t, 1, g.ContType)
	assert.Equal(t, 5, m.Table.NumQPos)
	assert.Equal(t, 4, m.Table.NumQVel)
	assert.Zero(t, m.Table.NumActuators)
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"syntax":        `<mujoco><worldbody>`,
		"unknown mesh":  `<mujoco><worldbody><geom type="mesh" mesh="none"/></worldbody></mujoco>`,
		"unknown class": `<mujoco><worldbody><geom class="none"/></worldbody></mujoco>`,
		"bad number":    `<mujoco><worldbody><body pos="0 x 0"/></worldbody></mujoco>`,
		"short rgba":    `<mujoco><worldbody><geom rgba="1 1"/></worldbody></mujoco>`,
		"bad type":      `<mujoco><worldbody><geom type="torus"/></worldbody></mujoco>`,
		"bad joint":     `<mujoco><worldbody><body><joint type="screw"/></body></worldbody></mujoco>`,
		"empty fromto":  `<mujoco><worldbody><geom type="capsule" fromto="1 1 1 1 1 1"/></worldbody></mujoco>`,
		"bad eulerseq":  `<mujoco><compiler eulerseq="xyw"/><worldbody/></mujoco>`,
		"long eulerseq": `<mujoco><compiler eulerseq="xyzx"/><worldbody/></mujoco>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(doc))
			assert.ErrorIs(t, err, ErrParse)
		})
	}
}

func TestSuggest(t *testing.T) {
	const doc = `<mujoco>
  <asset><mesh file="meshes/thigh.obj"/></asset>
  <worldbody><geom type="mesh" mesh="thihg"/></worldbody>
</mujoco>`
	_, err := Decode(strings.NewReader(doc))
	assert.ErrorIs(t, err, ErrParse)
	assert.ErrorContains(t, err, `unknown mesh "thihg"; did you mean "thigh"?`)
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join("testdata", "missing.xml"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrParse)
}
