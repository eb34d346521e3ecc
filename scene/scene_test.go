// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"strings"
	"testing"

	"cogentcore.org/simscene/bodytree"
	"cogentcore.org/simscene/frame"
	"cogentcore.org/simscene/geom"
	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/model/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, tb *model.Table) (*Scene, error) {
	t.Helper()
	opts := Options{Threshold: 3, RootCorrection: frame.RootCorrection(-90)}
	return Build(bodytree.Build(tb.Bodies), tb, geom.NewFactory(tb, ""), opts)
}

func TestBuildA1(t *testing.T) {
	tb := testdata.A1()
	sc, err := build(t, tb)
	require.NoError(t, err)
	assert.Len(t, sc.Nodes, 1+2*14)
	assert.Len(t, sc.BodyNodes(), 14)

	want := `world
--body_world
----mesh_world
--body_trunk
----mesh_trunk
----body_FR_hip
------mesh_FR_hip
------body_FR_thigh
--------mesh_FR_thigh
--------body_FR_calf
----------mesh_FR_calf
----body_FL_hip
`
	assert.True(t, strings.HasPrefix(sc.String(), want), sc.String())

	trunk := sc.NodeForBody(1)
	require.NotNil(t, trunk)
	assert.True(t, trunk.Root)
	assert.Equal(t, Group, trunk.Kind)
	assert.Equal(t, model.Mesh, trunk.Geom.Kind)
	assert.InDelta(t, 0, trunk.Pose.Pos.X, 1e-6)
	assert.InDelta(t, 0, trunk.Pose.Pos.Y, 1e-6)
	assert.InDelta(t, -0.43, trunk.Pose.Pos.Z, 1e-6)

	calf := sc.NodeForBody(tb.BodyByName("FL_calf").ID)
	require.NotNil(t, calf)
	assert.False(t, calf.Root)
	assert.Equal(t, "body_FL_thigh", sc.Nodes[calf.Parent].Name)
	assert.InDelta(t, 0, calf.Pose.Pos.X, 1e-6)
	assert.InDelta(t, -0.2-0.113, calf.Pose.Pos.Y, 1e-6)
	assert.InDelta(t, 0, calf.Pose.Pos.Z, 1e-6)

	require.Len(t, calf.Children, 1)
	mesh := sc.Nodes[calf.Children[0]]
	assert.Equal(t, Solid, mesh.Kind)
	assert.Equal(t, "capsule:0.013:0.1:0", mesh.Mesh.Name)
	assert.Equal(t, geom.Color(mesh.Geom), mesh.Color)

	floor := sc.Nodes[sc.NodeForBody(model.WorldID).Children[0]]
	assert.Equal(t, geom.GroundColor, floor.Color)
	assert.Nil(t, sc.NodeForBody(99))
}

func TestSkipSubtree(t *testing.T) {
	tb := testdata.A1()
	for i := range tb.Geoms {
		if tb.Geoms[i].BodyID == 1 {
			tb.Geoms[i].Group = 3
		}
	}
	sc, err := build(t, tb)
	require.NoError(t, err)
	assert.Equal(t, "world\n--body_world\n----mesh_world\n", sc.String())
	assert.Len(t, sc.BodyNodes(), 1)
}

func TestBuildUnsupported(t *testing.T) {
	tb := testdata.A1()
	tb.Geoms[0].Kind = model.Ellipsoid
	_, err := build(t, tb)
	assert.ErrorIs(t, err, geom.ErrUnsupportedKind)
	assert.ErrorContains(t, err, `body "world"`)
}

func TestAdd(t *testing.T) {
	sc := New()
	g := sc.Add(0, "group", Group)
	gi := g.Index
	s := sc.Add(gi, "solid", Solid)
	assert.Equal(t, gi, s.Parent)
	assert.Equal(t, -1, s.BodyID)
	assert.Equal(t, []int{gi}, sc.World().Children)
	assert.Equal(t, "world\n--group\n----solid\n", sc.String())
	assert.Equal(t, "Solid", Solid.String())
}
