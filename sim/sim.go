// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim defines the read and step surface of a physics simulation
// as consumed by the scene bridge, the immutable [State] snapshot that is
// published after each tick, and [Kinematic], a reference simulation that
// poses a model by forward kinematics.
package sim

import (
	"cogentcore.org/core/base/errors"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jinzhu/copier"
)

// Simulation is a physics simulation of one model. Its methods are not
// safe for concurrent use; the caller serializes access.
type Simulation interface {

	// NumActuators returns the length of the control vector.
	NumActuators() int

	// SetControl sets the control vector, one value per actuator.
	SetControl(ctrl []float64)

	// Step advances the simulation by one internal time step.
	Step()

	// Time returns the simulation clock in seconds.
	Time() float64

	// XPos returns the absolute body positions, indexed by body id.
	XPos() []mgl64.Vec3

	// XQuat returns the absolute body orientations, indexed by body id.
	XQuat() []mgl64.Quat

	// QPos returns the generalized positions.
	QPos() []float64

	// QVel returns the generalized velocities.
	QVel() []float64

	// SensorData returns the sensor readings.
	SensorData() []float64

	// CfrcExt returns the external contact force and torque on each body.
	CfrcExt() [][6]float64
}

// State is a read-only snapshot of the simulation state after a tick.
type State struct {
	Time       float64      `yaml:"time"`
	QPos       []float64    `yaml:"qpos,flow"`
	QVel       []float64    `yaml:"qvel,flow"`
	CfrcExt    [][6]float64 `yaml:"cfrc_ext,flow"`
	SensorData []float64    `yaml:"sensordata,flow"`
}

// ReadState returns a snapshot of the current state of s that shares no
// memory with the simulation.
func ReadState(s Simulation) *State {
	st := &State{Time: s.Time(), QPos: s.QPos(), QVel: s.QVel(), CfrcExt: s.CfrcExt(), SensorData: s.SensorData()}
	return st.Clone()
}

// Clone returns a deep copy of the state.
func (st *State) Clone() *State {
	cp := &State{}
	errors.Log(copier.CopyWithOption(cp, st, copier.Option{DeepCopy: true}))
	return cp
}
