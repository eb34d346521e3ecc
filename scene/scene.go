// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene is a minimal hierarchical scene graph of parent-relative
// transforms, built once from a body forest. Each renderable body gets a
// Group node holding its relative pose, with one Solid child holding the
// mesh of its renderable geom at the geom's local pose.
package scene

import (
	"fmt"
	"strings"

	"cogentcore.org/core/math32"
	"cogentcore.org/simscene/bodytree"
	"cogentcore.org/simscene/frame"
	"cogentcore.org/simscene/geom"
	"cogentcore.org/simscene/model"
	"github.com/go-gl/mathgl/mgl64"
)

// NodeKinds are the kinds of scene nodes.
type NodeKinds int32

const (
	// Group is a node that only carries a transform for its children.
	Group NodeKinds = iota

	// Solid is a leaf node with a mesh.
	Solid
)

func (k NodeKinds) String() string {
	if k == Solid {
		return "Solid"
	}
	return "Group"
}

// Node is one node of a [Scene].
type Node struct {
	Name string
	Kind NodeKinds

	// Index is the index of this node in [Scene.Nodes].
	Index int

	// Parent is the index of the parent node, or -1 for the world.
	Parent int

	// Children are the indexes of the child nodes.
	Children []int

	// BodyID is the id of the body a Group represents, or -1.
	BodyID int

	// Root is set for body groups at the top of a body tree,
	// which get the root correction.
	Root bool

	// Geom is the renderable geom of the body.
	Geom model.Geom

	// Pose is the transform relative to the parent node.
	Pose frame.Pose

	// Mesh is the mesh of a Solid.
	Mesh *model.MeshData

	// Color is the color of a Solid.
	Color math32.Vector4
}

// Scene is an arena of nodes with the world group at index 0.
type Scene struct {
	Nodes []Node

	bodyNodes []int
}

// New returns a new scene with only the world group.
func New() *Scene {
	sc := &Scene{}
	sc.Nodes = append(sc.Nodes, Node{Name: "world", Kind: Group, Parent: -1, BodyID: -1, Pose: identity()})
	return sc
}

func identity() frame.Pose {
	return frame.Narrow(frame.Identity64())
}

// World returns the world group.
func (sc *Scene) World() *Node {
	return &sc.Nodes[0]
}

// Add adds a new node with the given name and kind under the given parent
// and returns it. The returned pointer is only valid until the next Add.
func (sc *Scene) Add(parent int, name string, kind NodeKinds) *Node {
	idx := len(sc.Nodes)
	sc.Nodes = append(sc.Nodes, Node{Name: name, Kind: kind, Index: idx, Parent: parent, BodyID: -1, Pose: identity()})
	sc.Nodes[parent].Children = append(sc.Nodes[parent].Children, idx)
	return &sc.Nodes[idx]
}

// BodyNodes returns the groups representing bodies, in creation order.
func (sc *Scene) BodyNodes() []*Node {
	ns := make([]*Node, len(sc.bodyNodes))
	for i, idx := range sc.bodyNodes {
		ns[i] = &sc.Nodes[idx]
	}
	return ns
}

// NodeForBody returns the group for the given body id, or nil.
func (sc *Scene) NodeForBody(id int) *Node {
	for _, idx := range sc.bodyNodes {
		if sc.Nodes[idx].BodyID == id {
			return &sc.Nodes[idx]
		}
	}
	return nil
}

// Options configure [Build].
type Options struct {

	// Threshold is the visibility group threshold for renderable geoms.
	Threshold int

	// RootCorrection is applied to the bodies at the top of each tree.
	RootCorrection mgl64.Quat
}

// Build makes the scene for the given forest. Bodies without a renderable
// geom are skipped together with their subtree. Meshes come from the
// factory, and any error making one aborts the build.
func Build(f *bodytree.Forest, tb *model.Table, fac *geom.Factory, opts Options) (*Scene, error) {
	sc := New()
	type item struct {
		node   int
		parent int
		depth  int
	}
	var stack []item
	for i := len(f.Roots) - 1; i >= 0; i-- {
		stack = append(stack, item{node: f.Roots[i]})
	}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		tn := f.Node(it.node)
		body := &tn.Body
		g, ok := geom.Select(body, tb.Geoms, opts.Threshold)
		if !ok {
			continue
		}
		md, err := fac.MeshFor(g)
		if err != nil {
			return nil, fmt.Errorf("scene: body %q: %w", body.Name, err)
		}
		root := it.depth == 0
		pose := BodyPose(body, g, root, opts.RootCorrection)

		bn := sc.Add(it.parent, "body_"+body.Name, Group)
		bn.BodyID = body.ID
		bn.Root = root
		bn.Geom = g
		bn.Pose = frame.Narrow(pose)
		bidx := bn.Index
		sc.bodyNodes = append(sc.bodyNodes, bidx)

		sn := sc.Add(bidx, "mesh_"+body.Name, Solid)
		sn.Geom = g
		sn.Mesh = md
		sn.Color = geom.Color(g)
		sn.Pose = frame.Narrow(frame.ToRender(frame.SimPose(g.Pos, g.Quat)))

		for i := len(tn.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{node: tn.Children[i], parent: bidx, depth: it.depth + 1})
		}
	}
	return sc, nil
}

// BodyPose returns the rest pose of a body group relative to its parent:
// the local body pose in render coordinates, with the root correction for
// roots and the anchor correction for primitive geoms.
func BodyPose(body *model.Body, g model.Geom, root bool, correction mgl64.Quat) frame.Pose64 {
	pose := frame.ToRender(frame.SimPose(body.Pos, body.Quat))
	if root {
		pose = frame.CorrectRoot(pose, correction)
	}
	if g.Kind.IsPrimitive() {
		pose.Pos = pose.Pos.Sub(geom.AnchorCorrection(g))
	}
	return pose
}

// String returns the node names of the scene, one per line,
// indented with "--" per level.
func (sc *Scene) String() string {
	var b strings.Builder
	type item struct{ node, depth int }
	stack := []item{{0, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &sc.Nodes[it.node]
		b.WriteString(strings.Repeat("--", it.depth))
		b.WriteString(n.Name)
		b.WriteByte('\n')
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{n.Children[i], it.depth + 1})
		}
	}
	return b.String()
}
