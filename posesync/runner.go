// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package posesync

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"cogentcore.org/simscene/model"
	"cogentcore.org/simscene/scene"
	"cogentcore.org/simscene/sim"
)

var (
	// ErrControlSize is returned when the control vector does not have
	// one value per actuator.
	ErrControlSize = errors.New("posesync: control vector length does not match actuator count")

	// ErrStalled is returned when the simulation clock does not cover
	// the frame time within the sub-step limit.
	ErrStalled = errors.New("posesync: simulation clock stalled")
)

// Settings are the stepping settings of a [Runner].
type Settings struct {

	// Pause halts stepping; poses stay at their last values.
	Pause bool

	// TargetFPS is the frame rate. Each tick steps the simulation
	// until its clock has advanced by 1 / TargetFPS seconds.
	TargetFPS float64

	// MaxSubsteps bounds the number of steps per tick; 0 is unbounded.
	MaxSubsteps int
}

// Runner owns a simulation and advances it one frame per [Runner.Tick],
// updating the body nodes of a scene. Ticks are serialized, and the state
// after each tick is published as an immutable snapshot.
type Runner struct {

	// Table is the model of the simulation.
	Table *model.Table

	// Scene has the body nodes to update.
	Scene *scene.Scene

	// Options are the scene options used to build Scene.
	Options scene.Options

	mu       sync.Mutex
	settings Settings
	sim      sim.Simulation
	control  []float64
	substeps int
	state    atomic.Pointer[sim.State]
}

// NewRunner returns a runner for the given simulation and scene. The
// control vector must have one value per actuator of the simulation,
// otherwise [ErrControlSize] is returned.
func NewRunner(s sim.Simulation, tb *model.Table, sc *scene.Scene, opts scene.Options, set Settings, control []float64) (*Runner, error) {
	if len(control) != s.NumActuators() {
		return nil, fmt.Errorf("%w: got %d values for %d actuators", ErrControlSize, len(control), s.NumActuators())
	}
	if set.TargetFPS <= 0 {
		return nil, fmt.Errorf("posesync: invalid target frame rate %g", set.TargetFPS)
	}
	r := &Runner{Table: tb, Scene: sc, Options: opts, settings: set, sim: s}
	r.control = append([]float64(nil), control...)
	r.state.Store(sim.ReadState(s))
	return r, nil
}

// Tick advances the simulation by one frame and updates the scene. When
// paused, it does not step and recomputes the poses from the unchanged
// state. Otherwise the control vector is written and the simulation is
// stepped until its clock covers the frame time.
func (r *Runner) Tick() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.substeps = 0
	if !r.settings.Pause {
		r.sim.SetControl(r.control)
		start := r.sim.Time()
		frameTime := 1 / r.settings.TargetFPS
		for r.sim.Time()-start < frameTime {
			if r.settings.MaxSubsteps > 0 && r.substeps >= r.settings.MaxSubsteps {
				return fmt.Errorf("%w: %d steps advanced the clock by %g of %g seconds", ErrStalled, r.substeps, r.sim.Time()-start, frameTime)
			}
			r.sim.Step()
			r.substeps++
		}
		r.state.Store(sim.ReadState(r.sim))
		slog.Debug("posesync: tick", "time", r.sim.Time(), "substeps", r.substeps)
	}
	Update(r.sim.XPos(), r.sim.XQuat(), r.Table, r.Scene.BodyNodes(), r.Options)
	return nil
}

// Snapshot returns the state published by the last tick that stepped.
// It may be called concurrently with [Runner.Tick].
func (r *Runner) Snapshot() *sim.State {
	return r.state.Load()
}

// SetControl sets the control vector written before the next tick steps.
func (r *Runner) SetControl(control []float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(control) != len(r.control) {
		return fmt.Errorf("%w: got %d values for %d actuators", ErrControlSize, len(control), len(r.control))
	}
	copy(r.control, control)
	return nil
}

// Control returns a copy of the control vector.
func (r *Runner) Control() []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]float64(nil), r.control...)
}

// SetPause sets whether stepping is paused.
func (r *Runner) SetPause(pause bool) {
	r.mu.Lock()
	r.settings.Pause = pause
	r.mu.Unlock()
}

// Substeps returns the number of steps taken by the last tick.
func (r *Runner) Substeps() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.substeps
}
