// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/model/testdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeomKind(t *testing.T) {
	assert.Equal(t, "capsule", model.Capsule.String())
	assert.Equal(t, "hfield", model.HeightField.String())
	assert.Equal(t, "GeomKind(42)", model.GeomKind(42).String())
	assert.Equal(t, model.GeomKind(7), model.Mesh)

	var k model.GeomKind
	require.NoError(t, k.SetString("Box"))
	assert.Equal(t, model.Box, k)
	assert.Error(t, k.SetString("torus"))
	assert.True(t, model.Cylinder.IsPrimitive())
	assert.False(t, model.Mesh.IsPrimitive())
}

func TestTableLookup(t *testing.T) {
	tb := testdata.A1()
	assert.Len(t, tb.Bodies, 14)
	assert.Equal(t, "trunk", tb.Body(1).Name)
	assert.Nil(t, tb.Body(14))
	assert.Nil(t, tb.Body(-1))
	assert.Equal(t, 11, tb.BodyByName("RL_hip").ID)
	assert.Nil(t, tb.BodyByName("tail"))

	gs := tb.GeomsOf(1)
	require.Len(t, gs, 2)
	assert.Equal(t, model.Mesh, gs[0].Kind)
	assert.Equal(t, model.Box, gs[1].Kind)

	trunk := tb.Body(1)
	assert.Equal(t, 2, trunk.GeomNum)
	assert.Equal(t, 1, trunk.GeomAdr)
	assert.True(t, trunk.IsRoot())
	assert.True(t, tb.Body(0).IsSelfParented())
}

func TestValidate(t *testing.T) {
	tb := testdata.A1()
	assert.NoError(t, tb.Validate(3))

	tb.Geoms[2].BodyID = 99
	err := tb.Validate(3)
	assert.ErrorIs(t, err, model.ErrInconsistent)
	assert.ErrorContains(t, err, "unknown body id 99")
	assert.ErrorContains(t, err, `body "trunk" declares 2 geoms but has 1`)
}

func TestValidateSingleGeom(t *testing.T) {
	tb := testdata.A1()
	// the floor is the only world geom; pushing it into the
	// collision groups leaves nothing to render
	tb.Geoms[0].Group = 4
	err := tb.Validate(3)
	assert.ErrorIs(t, err, model.ErrInconsistent)
	assert.ErrorContains(t, err, `body "world" declares a single geom but 0 pass`)
	assert.NoError(t, tb.Validate(5))
}

func TestSaveOpen(t *testing.T) {
	tb := testdata.A1()
	fn := filepath.Join(t.TempDir(), "a1.yaml")
	require.NoError(t, tb.Save(fn))

	got, err := model.Open(fn)
	require.NoError(t, err)
	assert.Equal(t, tb.Bodies, got.Bodies)
	assert.Equal(t, tb.Geoms, got.Geoms)
	assert.Equal(t, tb.Meshes["hip"], got.Meshes["hip"])
	assert.Equal(t, 12, got.NumActuators)

	var b bytes.Buffer
	require.NoError(t, tb.Write(&b))
	assert.Contains(t, b.String(), "kind: capsule")

	_, err = model.Open(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestClosest(t *testing.T) {
	names := testdata.A1().BodyNames()
	assert.Equal(t, testdata.A1Names, names)
	assert.Equal(t, "FR_calf", model.Closest("FR_calff", names))
	assert.Equal(t, "RL_thigh", model.Closest("rl_thigh", names))
	assert.Equal(t, "", model.Closest("zzz", names))
	assert.Equal(t, "", model.Closest("trunk", nil))
}
