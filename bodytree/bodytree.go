// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bodytree rebuilds the hierarchy of a mechanism from the flat,
// parent-indexed body table of a [model.Table].
//
// The result is a [Forest]: an arena of nodes that refer to each other by
// index, holding one tree per body attached to the world. It is built once
// at load time and never mutated afterwards.
package bodytree

import (
	"strings"

	"cogentcore.org/simscene/model"
)

// Node is one body in a [Forest].
type Node struct {

	// Body is the body this node represents.
	Body model.Body

	// Index is the index of this node in [Forest.Nodes].
	Index int

	// Parent is the index of the parent node, or -1 for roots.
	Parent int

	// Children are the indexes of the child nodes, in table order.
	Children []int

	// Depth is 0 for roots.
	Depth int
}

// IsRoot returns whether the node is the root of a tree.
func (n *Node) IsRoot() bool {
	return n.Parent < 0
}

// Forest is a set of body trees stored in a single node arena.
type Forest struct {

	// Nodes is the node arena. Each tree is stored in depth-first
	// preorder starting from its root.
	Nodes []Node

	// Roots has the indexes of the root nodes, in table order.
	Roots []int
}

// Build constructs the forest for the given bodies. Every body whose
// parent is the world is a root. A body c is collected as a child of p
// iff c.ParentID == p.ID, c is not its own parent, and p is not the world.
// Bodies that cannot be reached from a root are not part of the forest.
// No bodies results in an empty forest, which is not an error.
func Build(bodies []model.Body) *Forest {
	f := &Forest{}
	for i := range bodies {
		if bodies[i].ParentID == model.WorldID {
			f.addTree(bodies, i)
		}
	}
	return f
}

// addTree adds the tree rooted at bodies[root] using an explicit stack.
func (f *Forest) addTree(bodies []model.Body, root int) {
	type item struct {
		body   int
		parent int
		depth  int
	}
	stack := []item{{body: root, parent: -1}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		p := &bodies[it.body]
		idx := len(f.Nodes)
		f.Nodes = append(f.Nodes, Node{Body: *p, Index: idx, Parent: it.parent, Depth: it.depth})
		if it.parent < 0 {
			f.Roots = append(f.Roots, idx)
		} else {
			f.Nodes[it.parent].Children = append(f.Nodes[it.parent].Children, idx)
		}
		if p.ID == model.WorldID {
			continue
		}
		for ci := len(bodies) - 1; ci >= 0; ci-- {
			c := &bodies[ci]
			if c.ParentID == p.ID && c.ID != c.ParentID {
				stack = append(stack, item{body: ci, parent: idx, depth: it.depth + 1})
			}
		}
	}
}

// Len returns the total number of nodes in the forest.
func (f *Forest) Len() int {
	return len(f.Nodes)
}

// Root returns the i-th root node.
func (f *Forest) Root(i int) *Node {
	return &f.Nodes[f.Roots[i]]
}

// Node returns the node at the given arena index.
func (f *Forest) Node(idx int) *Node {
	return &f.Nodes[idx]
}

// Find returns the first node for the body with the given name, or nil.
func (f *Forest) Find(name string) *Node {
	for i := range f.Nodes {
		if f.Nodes[i].Body.Name == name {
			return &f.Nodes[i]
		}
	}
	return nil
}

// NodeForBody returns the node for the given body id, or nil.
func (f *Forest) NodeForBody(id int) *Node {
	for i := range f.Nodes {
		if f.Nodes[i].Body.ID == id {
			return &f.Nodes[i]
		}
	}
	return nil
}

// Walk calls fun on each node of the tree rooted at the given node index,
// depth first, with the node depth relative to that root. The children of
// a node are pushed onto the stack in table order, so the last child is
// visited first. If fun returns false, the children of that node are skipped.
func (f *Forest) Walk(root int, fun func(n *Node, depth int) bool) {
	type item struct {
		node  int
		depth int
	}
	stack := []item{{node: root}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &f.Nodes[it.node]
		if !fun(n, it.depth) {
			continue
		}
		for _, c := range n.Children {
			stack = append(stack, item{node: c, depth: it.depth + 1})
		}
	}
}

// WalkAll calls [Forest.Walk] on every root in order.
func (f *Forest) WalkAll(fun func(n *Node, depth int) bool) {
	for _, r := range f.Roots {
		f.Walk(r, fun)
	}
}

// Dump returns the names of the tree rooted at the given node index,
// one per line in [Forest.Walk] order, indented with "--" per level.
func (f *Forest) Dump(root int) string {
	var b strings.Builder
	f.Walk(root, func(n *Node, depth int) bool {
		b.WriteString(strings.Repeat("--", depth))
		b.WriteString(n.Body.Name)
		b.WriteByte('\n')
		return true
	})
	return b.String()
}

// String returns the dump of every tree in the forest.
func (f *Forest) String() string {
	var b strings.Builder
	for _, r := range f.Roots {
		b.WriteString(f.Dump(r))
	}
	return b.String()
}
