// Package collide separates overlapping particles with a soft positional
// correction, pruning candidate pairs with a per-tick quadtree.
package collide

import (
	"math"

	"github.com/olivierh59500/node-collision-go/internal/particle"
	"github.com/olivierh59500/node-collision-go/internal/quadtree"
)

// Collision constants
const (
	DefaultPadding = 16.0 // Largest particle radius, no overlap can hide outside it
	minDistance    = 1e-6 // Separation used for exactly coincident centres
)

// Resolver runs one collision pass per tick
type Resolver struct {
	Padding float64
}

// NewResolver returns a resolver with the given search padding
func NewResolver(padding float64) *Resolver {
	return &Resolver{Padding: padding}
}

// Resolve builds a quadtree over ps and separates overlapping pairs, visiting
// every particle after the anchor in index order. It returns the number of
// overlaps corrected.
func (r *Resolver) Resolve(ps []*particle.Particle) int {
	if len(ps) < 2 {
		return 0
	}
	tree := quadtree.Build(len(ps), func(i int) (float64, float64) {
		return ps[i].X, ps[i].Y
	})

	total := 0
	for i := 1; i < len(ps); i++ {
		v := NewVisitor(ps, i, r.Padding)
		tree.Visit(v.Visit)
		total += v.Resolved
	}
	return total
}

// Visitor corrects overlaps between one particle and the points of the cells
// it visits. Its search box is taken once, from the position at creation.
type Visitor struct {
	ps       []*particle.Particle
	node     *particle.Particle
	x1, y1   float64
	x2, y2   float64
	Resolved int
}

// NewVisitor prepares a visitor for ps[i]
func NewVisitor(ps []*particle.Particle, i int, padding float64) *Visitor {
	p := ps[i]
	r := p.Radius + padding
	return &Visitor{
		ps:   ps,
		node: p,
		x1:   p.X - r,
		x2:   p.X + r,
		y1:   p.Y - r,
		y2:   p.Y + r,
	}
}

// Visit implements quadtree.VisitFunc. It returns true when the cell lies
// outside the search box so the walk skips its children.
func (v *Visitor) Visit(n *quadtree.Node, x1, y1, x2, y2 float64) bool {
	if n.Point >= 0 {
		if q := v.ps[n.Point]; q != v.node && Separate(v.node, q) {
			v.Resolved++
		}
	}
	return x1 > v.x2 || x2 < v.x1 || y1 > v.y2 || y2 < v.y1
}

// Separate pushes p and q apart by equal and opposite halves of their
// penetration depth. It reports whether the pair overlapped.
func Separate(p, q *particle.Particle) bool {
	x := p.X - q.X
	y := p.Y - q.Y
	l := math.Sqrt(x*x + y*y)
	r := p.Radius + q.Radius
	if l >= r {
		return false
	}
	if l == 0 {
		x, l = minDistance, minDistance
	}

	k := (l - r) / l * 0.5
	x *= k
	y *= k
	p.X -= x
	p.Y -= y
	q.X += x
	q.Y += y
	return true
}

// Penetration sums the overlap depth of every pair, for diagnostics and tests
func Penetration(ps []*particle.Particle) float64 {
	total := 0.0
	for i := 1; i < len(ps); i++ {
		for j := i + 1; j < len(ps); j++ {
			d := math.Hypot(ps[i].X-ps[j].X, ps[i].Y-ps[j].Y)
			if o := ps[i].Radius + ps[j].Radius - d; o > 0 {
				total += o
			}
		}
	}
	return total
}
