// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"cogentcore.org/simscene/bodytree"
	"cogentcore.org/simscene/frame"
	"cogentcore.org/simscene/model"
	"github.com/go-gl/mathgl/mgl64"
)

// MotionFunc returns the local pose of a body at simulation time t, given
// its rest pose and the current control vector. Index counts the bodies
// below the roots in tree preorder.
type MotionFunc func(t float64, body *model.Body, index int, ctrl []float64, rest frame.Pose64) frame.Pose64

// Kinematic is a [Simulation] that poses the bodies of a model by forward
// kinematics from their local poses. Stepping advances the clock and
// applies the optional Motion; there are no dynamics.
type Kinematic struct {

	// Table is the model being simulated.
	Table *model.Table

	// Timestep is the internal step size in seconds.
	Timestep float64

	// Motion optionally moves bodies away from their rest pose.
	Motion MotionFunc

	forest  *bodytree.Forest
	time    float64
	ctrl    []float64
	xpos    []mgl64.Vec3
	xquat   []mgl64.Quat
	qpos    []float64
	qvel    []float64
	cfrc    [][6]float64
	sensors []float64
}

// NewKinematic returns a new kinematic simulation of the given table,
// posed at time 0.
func NewKinematic(tb *model.Table, timestep float64) *Kinematic {
	k := &Kinematic{Table: tb, Timestep: timestep}
	k.forest = bodytree.Build(tb.Bodies)
	nb := len(tb.Bodies)
	k.ctrl = make([]float64, tb.NumActuators)
	k.sensors = make([]float64, tb.NumActuators)
	k.xpos = make([]mgl64.Vec3, nb)
	k.xquat = make([]mgl64.Quat, nb)
	k.cfrc = make([][6]float64, nb)
	k.qpos = make([]float64, tb.NumQPos)
	k.qvel = make([]float64, tb.NumQVel)
	k.Forward()
	return k
}

func (k *Kinematic) NumActuators() int { return k.Table.NumActuators }

func (k *Kinematic) SetControl(ctrl []float64) { copy(k.ctrl, ctrl) }

func (k *Kinematic) Time() float64 { return k.time }

func (k *Kinematic) XPos() []mgl64.Vec3 { return k.xpos }

func (k *Kinematic) XQuat() []mgl64.Quat { return k.xquat }

func (k *Kinematic) QPos() []float64 { return k.qpos }

func (k *Kinematic) QVel() []float64 { return k.qvel }

func (k *Kinematic) SensorData() []float64 { return k.sensors }

func (k *Kinematic) CfrcExt() [][6]float64 { return k.cfrc }

// Step advances the clock by one time step and recomputes the poses.
func (k *Kinematic) Step() {
	prev := append([]float64(nil), k.qpos...)
	k.time += k.Timestep
	k.Forward()
	if k.Timestep > 0 {
		// generalized velocities of the joints past the free joint
		for i := 7; i < len(k.qpos) && i-1 < len(k.qvel); i++ {
			k.qvel[i-1] = (k.qpos[i] - prev[i]) / k.Timestep
		}
	}
}

// Forward recomputes the absolute poses, generalized positions and
// sensor readings for the current time and control.
func (k *Kinematic) Forward() {
	for i := range k.xquat {
		k.xpos[i] = mgl64.Vec3{}
		k.xquat[i] = mgl64.QuatIdent()
	}
	index := 0
	// nodes are in preorder, so parents come first
	for i := range k.forest.Nodes {
		n := &k.forest.Nodes[i]
		b := &n.Body
		local := frame.SimPose(b.Pos, b.Quat)
		if n.IsRoot() {
			k.xpos[b.ID] = local.Pos
			k.xquat[b.ID] = local.Quat.Normalize()
			continue
		}
		if k.Motion != nil {
			local = k.Motion(k.time, b, index, k.ctrl, local)
		}
		index++
		pid := k.forest.Node(n.Parent).Body.ID
		pq := k.xquat[pid]
		k.xpos[b.ID] = k.xpos[pid].Add(pq.Rotate(local.Pos))
		k.xquat[b.ID] = pq.Mul(local.Quat).Normalize()
	}
	k.setQPos()
	copy(k.sensors, k.ctrl)
}

// setQPos fills the generalized positions: the free joint of the first
// floating root followed by one value per actuator.
func (k *Kinematic) setQPos() {
	qi := 0
	if len(k.forest.Roots) > 0 && len(k.qpos) >= 7 {
		for _, r := range k.forest.Roots {
			b := k.forest.Node(r).Body
			if b.ID == model.WorldID {
				continue
			}
			p, q := k.xpos[b.ID], frame.SimArray(k.xquat[b.ID])
			copy(k.qpos, p[:])
			copy(k.qpos[3:], q[:])
			qi = 7
			break
		}
	}
	for j := 0; qi < len(k.qpos) && j < len(k.ctrl); j++ {
		k.qpos[qi] = k.ctrl[j]
		qi++
	}
}

// Hinge returns a [MotionFunc] that rotates each body below the roots
// about the given local axis by the control value of the same index,
// wrapping around the control vector.
func Hinge(axis mgl64.Vec3) MotionFunc {
	return func(t float64, body *model.Body, index int, ctrl []float64, rest frame.Pose64) frame.Pose64 {
		if len(ctrl) == 0 {
			return rest
		}
		rot := mgl64.QuatRotate(ctrl[index%len(ctrl)], axis)
		return frame.Pose64{Pos: rest.Pos, Quat: rest.Quat.Mul(rot)}
	}
}
