// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"errors"
	"fmt"
)

// ErrInconsistent is returned by [Table.Validate] when the model data
// contradicts itself.
var ErrInconsistent = errors.New("model: inconsistent model data")

// Validate checks the table for data consistency errors, using the given
// visibility group threshold to decide which geoms are renderable.
// All problems found are joined into the returned error, each wrapping
// [ErrInconsistent].
func (t *Table) Validate(threshold int) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInconsistent}, args...)...))
	}
	counts := make([]int, len(t.Bodies))
	visible := make([]int, len(t.Bodies))
	for i := range t.Bodies {
		b := &t.Bodies[i]
		if b.ID != i {
			fail("body %q has id %d at index %d", b.Name, b.ID, i)
		}
		if t.Body(b.ParentID) == nil {
			fail("body %q has unknown parent id %d", b.Name, b.ParentID)
		}
	}
	for i, g := range t.Geoms {
		if g.ID != i {
			fail("geom %q has id %d at index %d", g.Name, g.ID, i)
		}
		if g.BodyID < 0 || g.BodyID >= len(t.Bodies) {
			fail("geom %d references unknown body id %d", g.ID, g.BodyID)
			continue
		}
		counts[g.BodyID]++
		if g.Group < threshold {
			visible[g.BodyID]++
		}
		if g.Kind == Mesh && g.Mesh == "" {
			fail("mesh geom %d has no mesh name", g.ID)
		}
	}
	for i := range t.Bodies {
		b := &t.Bodies[i]
		if counts[i] != b.GeomNum {
			fail("body %q declares %d geoms but has %d", b.Name, b.GeomNum, counts[i])
		}
		if b.GeomNum == 1 && visible[i] != 1 {
			fail("body %q declares a single geom but %d pass the visibility filter", b.Name, visible[i])
		}
	}
	return errors.Join(errs...)
}
