// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package frame converts poses between the simulation convention
// (Z up, quaternions stored w, x, y, z) and the renderer convention
// (Y up, quaternions stored x, y, z, w), and composes absolute poses
// into the parent-relative poses a scene graph needs.
package frame

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/go-gl/mathgl/mgl64"
)

// Pose64 is a position and orientation in double precision, used for all
// intermediate computation.
type Pose64 struct {
	Pos  mgl64.Vec3
	Quat mgl64.Quat
}

// Identity64 returns the identity pose.
func Identity64() Pose64 {
	return Pose64{Quat: mgl64.QuatIdent()}
}

// SimPose returns the pose for the given position and simulation-order
// quaternion.
func SimPose(pos mgl64.Vec3, quat [4]float64) Pose64 {
	return Pose64{Pos: pos, Quat: SimQuat(quat)}
}

// SimQuat returns the quaternion for values stored w, x, y, z.
func SimQuat(q [4]float64) mgl64.Quat {
	return mgl64.Quat{W: q[0], V: mgl64.Vec3{q[1], q[2], q[3]}}
}

// SimArray returns the quaternion values in w, x, y, z order.
func SimArray(q mgl64.Quat) [4]float64 {
	return [4]float64{q.W, q.V[0], q.V[1], q.V[2]}
}

// ToRenderPosition swaps the Y and Z components, taking the
// simulation up axis onto the renderer up axis.
func ToRenderPosition(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[2], v[1]}
}

// FromRenderPosition is the inverse of [ToRenderPosition].
func FromRenderPosition(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v[0], v[2], v[1]}
}

// ToRenderOrientation converts a simulation orientation to the renderer
// convention. The vector part gets the same Y/Z swap as positions, and
// the scalar part is negated because a single axis swap inverts
// handedness: for a reflection S, the rotation S R S has axis -S v, and
// (w, -S v) is the same rotation as (-w, S v).
func ToRenderOrientation(q mgl64.Quat) mgl64.Quat {
	return mgl64.Quat{W: -q.W, V: mgl64.Vec3{q.V[0], q.V[2], q.V[1]}}
}

// FromRenderOrientation is the inverse of [ToRenderOrientation].
func FromRenderOrientation(q mgl64.Quat) mgl64.Quat {
	return mgl64.Quat{W: -q.W, V: mgl64.Vec3{q.V[0], q.V[2], q.V[1]}}
}

// ToRender converts both parts of a simulation pose.
func ToRender(p Pose64) Pose64 {
	return Pose64{Pos: ToRenderPosition(p.Pos), Quat: ToRenderOrientation(p.Quat)}
}

// RelativePose returns the pose of child expressed in the frame of parent.
// Both poses must be in the same convention.
func RelativePose(child, parent Pose64) Pose64 {
	inv := parent.Quat.Inverse()
	return Pose64{
		Pos:  inv.Rotate(child.Pos.Sub(parent.Pos)),
		Quat: inv.Mul(child.Quat),
	}
}

// RootCorrection returns the rotation about the horizontal X axis by the
// given angle in degrees that aligns the world frames of the two engines
// at the top of each tree.
func RootCorrection(degrees float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(degrees), mgl64.Vec3{1, 0, 0})
}

// CorrectRoot applies the root correction c to both the translation and
// rotation of a root body pose.
func CorrectRoot(p Pose64, c mgl64.Quat) Pose64 {
	return Pose64{Pos: c.Rotate(p.Pos), Quat: c.Mul(p.Quat)}
}

// Pose is a render pose in single precision, as used by scene nodes.
type Pose struct {
	Pos  math32.Vector3
	Quat math32.Quat
}

// Narrow returns the single precision render pose for p.
func Narrow(p Pose64) Pose {
	return Pose{Pos: RenderVector(p.Pos), Quat: RenderQuat(p.Quat)}
}

// RenderVector returns v as a render vector.
func RenderVector(v mgl64.Vec3) math32.Vector3 {
	return math32.Vec3(float32(v[0]), float32(v[1]), float32(v[2]))
}

// RenderQuat returns q stored in render order x, y, z, w. The sign is
// chosen so the scalar part is not negative; q and -q are the same rotation.
func RenderQuat(q mgl64.Quat) math32.Quat {
	if q.W < 0 {
		q = q.Scale(-1)
	}
	return math32.NewQuat(float32(q.V[0]), float32(q.V[1]), float32(q.V[2]), float32(q.W))
}

func (p Pose) String() string {
	return fmt.Sprintf("pos: (%.4g, %.4g, %.4g) quat: (%.4g, %.4g, %.4g, %.4g)",
		p.Pos.X, p.Pos.Y, p.Pos.Z, p.Quat.X, p.Quat.Y, p.Quat.Z, p.Quat.W)
}
