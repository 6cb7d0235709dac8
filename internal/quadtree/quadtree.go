// Package quadtree implements a point quadtree rebuilt from scratch every tick.
// Points are referenced by index so the tree never owns the items it partitions.
package quadtree

import (
	"math"
)

// coincident is the manhattan distance under which two points share a cell
// and the newer one is pushed one level down instead of splitting the cell.
const coincident = 0.01

// Node is one cell of the tree. A node holds at most one point; Point is -1
// when it holds none. Internal nodes may still hold a point when a
// near-coincident point was inserted after it.
type Node struct {
	Leaf  bool
	Point int
	X, Y  float64 // Coordinates of Point at insertion time
	Nodes [4]*Node
}

// Tree is a square quadtree covering [X1,X2] x [Y1,Y2]
type Tree struct {
	Root           *Node
	X1, Y1, X2, Y2 float64
}

// VisitFunc is called for each visited node with the node's bounds.
// Returning true skips the node's children.
type VisitFunc func(n *Node, x1, y1, x2, y2 float64) bool

func newLeaf() *Node {
	return &Node{Leaf: true, Point: -1}
}

// Build partitions n points whose coordinates are given by at. The bounds are
// the squared extent of the points. Points with non-finite coordinates are
// left out.
func Build(n int, at func(i int) (x, y float64)) *Tree {
	t := &Tree{Root: newLeaf()}

	x1, y1 := math.Inf(1), math.Inf(1)
	x2, y2 := math.Inf(-1), math.Inf(-1)
	for i := 0; i < n; i++ {
		x, y := at(i)
		if !finite(x, y) {
			continue
		}
		x1 = math.Min(x1, x)
		y1 = math.Min(y1, y)
		x2 = math.Max(x2, x)
		y2 = math.Max(y2, y)
	}
	if x1 > x2 {
		return t
	}

	// Square bounds keep every cell square
	if dx, dy := x2-x1, y2-y1; dx > dy {
		y2 = y1 + dx
	} else {
		x2 = x1 + dy
	}
	t.X1, t.Y1, t.X2, t.Y2 = x1, y1, x2, y2

	for i := 0; i < n; i++ {
		x, y := at(i)
		if !finite(x, y) {
			continue
		}
		insert(t.Root, i, x, y, x1, y1, x2, y2)
	}
	return t
}

func finite(x, y float64) bool {
	return !math.IsNaN(x) && !math.IsNaN(y) && !math.IsInf(x, 0) && !math.IsInf(y, 0)
}

func insert(n *Node, i int, x, y, x1, y1, x2, y2 float64) {
	if !n.Leaf {
		insertChild(n, i, x, y, x1, y1, x2, y2)
		return
	}
	if n.Point < 0 {
		n.Point, n.X, n.Y = i, x, y
		return
	}
	if math.Abs(n.X-x)+math.Abs(n.Y-y) < coincident {
		insertChild(n, i, x, y, x1, y1, x2, y2)
		return
	}
	old, ox, oy := n.Point, n.X, n.Y
	n.Point = -1
	insertChild(n, old, ox, oy, x1, y1, x2, y2)
	insertChild(n, i, x, y, x1, y1, x2, y2)
}

func insertChild(n *Node, i int, x, y, x1, y1, x2, y2 float64) {
	xm := (x1 + x2) * 0.5
	ym := (y1 + y2) * 0.5
	right := x >= xm
	below := y >= ym

	q := 0
	if below {
		q = 2
	}
	if right {
		q++
	}

	n.Leaf = false
	c := n.Nodes[q]
	if c == nil {
		c = newLeaf()
		n.Nodes[q] = c
	}

	if right {
		x1 = xm
	} else {
		x2 = xm
	}
	if below {
		y1 = ym
	} else {
		y2 = ym
	}
	insert(c, i, x, y, x1, y1, x2, y2)
}

// Visit walks the tree depth-first in pre-order
func (t *Tree) Visit(f VisitFunc) {
	visit(f, t.Root, t.X1, t.Y1, t.X2, t.Y2)
}

func visit(f VisitFunc, n *Node, x1, y1, x2, y2 float64) {
	if f(n, x1, y1, x2, y2) {
		return
	}
	sx := (x1 + x2) * 0.5
	sy := (y1 + y2) * 0.5
	if c := n.Nodes[0]; c != nil {
		visit(f, c, x1, y1, sx, sy)
	}
	if c := n.Nodes[1]; c != nil {
		visit(f, c, sx, y1, x2, sy)
	}
	if c := n.Nodes[2]; c != nil {
		visit(f, c, x1, sy, sx, y2)
	}
	if c := n.Nodes[3]; c != nil {
		visit(f, c, sx, sy, x2, y2)
	}
}
