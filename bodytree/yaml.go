// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bodytree

import (
	"cogentcore.org/simscene/model"
	"gopkg.in/yaml.v3"
)

// yamlTree is the nested form of one tree used for serialization.
type yamlTree struct {
	Body     model.Body  `yaml:"body"`
	Children []*yamlTree `yaml:"children,omitempty"`
}

// MarshalYAML encodes the forest as a list of nested trees,
// with children in table order.
func (f *Forest) MarshalYAML() (any, error) {
	trees := make([]*yamlTree, len(f.Nodes))
	for i := range f.Nodes {
		trees[i] = &yamlTree{Body: f.Nodes[i].Body}
	}
	for i := range f.Nodes {
		for _, c := range f.Nodes[i].Children {
			trees[i].Children = append(trees[i].Children, trees[c])
		}
	}
	roots := make([]*yamlTree, len(f.Roots))
	for i, r := range f.Roots {
		roots[i] = trees[r]
	}
	return roots, nil
}

// UnmarshalYAML decodes a forest written by [Forest.MarshalYAML].
func (f *Forest) UnmarshalYAML(value *yaml.Node) error {
	var roots []*yamlTree
	if err := value.Decode(&roots); err != nil {
		return err
	}
	*f = Forest{}
	type item struct {
		tree   *yamlTree
		parent int
		depth  int
	}
	for _, rt := range roots {
		stack := []item{{tree: rt, parent: -1}}
		for len(stack) > 0 {
			it := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			idx := len(f.Nodes)
			f.Nodes = append(f.Nodes, Node{Body: it.tree.Body, Index: idx, Parent: it.parent, Depth: it.depth})
			if it.parent < 0 {
				f.Roots = append(f.Roots, idx)
			} else {
				f.Nodes[it.parent].Children = append(f.Nodes[it.parent].Children, idx)
			}
			for i := len(it.tree.Children) - 1; i >= 0; i-- {
				stack = append(stack, item{tree: it.tree.Children[i], parent: idx, depth: it.depth + 1})
			}
		}
	}
	return nil
}
