package motionplan

import (
	"math"

	"github.com/golang/geo/r3"
)

// rootID is both the id and the parent id of the tree root. A node whose id equals its parent id
// has no parent.
const rootID = 0

// Node is a validated point in the search tree.
type Node struct {
	Position r3.Vector
	// ID is the planner attempt that created the node. IDs increase with insertion order but are
	// not dense, since rejected attempts consume an id too.
	ID       int
	ParentID int
}

// IsRoot reports whether n is the tree root.
func (n Node) IsRoot() bool {
	return n.ID == n.ParentID
}

// treeNode is a Node plus the arena index of its parent.
type treeNode struct {
	Node
	parent int
}

// tree is an append-only arena of nodes. Parent links are arena indices, so backtracking never
// rescans the tree for ids.
type tree struct {
	nodes []treeNode
}

func newTree(root r3.Vector, capacity int) *tree {
	t := &tree{nodes: make([]treeNode, 0, capacity)}
	t.nodes = append(t.nodes, treeNode{Node: Node{Position: root, ID: rootID, ParentID: rootID}, parent: 0})
	return t
}

func (t *tree) size() int {
	return len(t.nodes)
}

func (t *tree) last() int {
	return len(t.nodes) - 1
}

// insert appends a node as a child of the node at parentIdx and returns its arena index.
func (t *tree) insert(pos r3.Vector, id, parentIdx int) int {
	t.nodes = append(t.nodes, treeNode{
		Node:   Node{Position: pos, ID: id, ParentID: t.nodes[parentIdx].ID},
		parent: parentIdx,
	})
	return t.last()
}

// nearest returns the arena index of the node closest to target. Only a strictly smaller distance
// replaces the current best, so ties go to the earliest inserted node.
func (t *tree) nearest(target r3.Vector) int {
	best := -1
	bestDist := math.Inf(1)
	for i := range t.nodes {
		if dist := t.nodes[i].Position.Distance(target); dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return best
}

// snapshot copies the tree's nodes out in insertion order.
func (t *tree) snapshot() []Node {
	out := make([]Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, n.Node)
	}
	return out
}

// extractPath walks parent links from the node at idx back to the root and returns the positions
// in root-first order. The returned slice does not share memory with the tree.
func extractPath(t *tree, idx int) []r3.Vector {
	if idx < 0 || idx >= t.size() {
		return []r3.Vector{}
	}
	path := make([]r3.Vector, 0)
	// ids strictly decrease along parent links, so this visits at most size() nodes
	for steps := 0; steps < t.size(); steps++ {
		n := t.nodes[idx]
		path = append(path, n.Position)
		if n.IsRoot() {
			break
		}
		idx = n.parent
	}

	// reverse the slice
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
