// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// MinSimilarity is the similarity below which [Closest] does not
// suggest a candidate.
const MinSimilarity = 0.8

// Closest returns the candidate most similar to name, for suggesting
// corrections of misspelled names. It returns "" if no candidate is at
// least [MinSimilarity] similar.
func Closest(name string, candidates []string) string {
	m := metrics.NewJaroWinkler()
	m.CaseSensitive = false
	best, sim := "", MinSimilarity
	for _, c := range candidates {
		if s := strutil.Similarity(name, c, m); s >= sim {
			best, sim = c, s
		}
	}
	return best
}

// BodyNames returns the names of the bodies, in id order.
func (t *Table) BodyNames() []string {
	names := make([]string, len(t.Bodies))
	for i := range t.Bodies {
		names[i] = t.Bodies[i].Name
	}
	return names
}
