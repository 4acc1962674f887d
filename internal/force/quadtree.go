package force

import (
	"math"

	"forcegraph/internal/domain"
)

// maxQuadDepth bounds subdivision so coincident nodes share a leaf instead of recursing forever
const maxQuadDepth = 32

// quad is one cell of the Barnes-Hut quadtree
type quad struct {
	x0, y0, size float64

	// Center of mass
	cx, cy float64
	mass   float64

	bodies   []int
	children *[4]*quad
	depth    int
}

// buildQuadtree builds a square quadtree enclosing every node
func buildQuadtree(nodes []domain.Node) *quad {
	minX, maxX := nodes[0].X, nodes[0].X
	minY, maxY := nodes[0].Y, nodes[0].Y
	for i := 1; i < len(nodes); i++ {
		minX = math.Min(minX, nodes[i].X)
		maxX = math.Max(maxX, nodes[i].X)
		minY = math.Min(minY, nodes[i].Y)
		maxY = math.Max(maxY, nodes[i].Y)
	}

	// Square with padding so boundary nodes fall strictly inside
	size := math.Max(maxX-minX, maxY-minY)
	pad := math.Max(size*0.1, 1)
	size += 2 * pad

	root := &quad{x0: minX - pad, y0: minY - pad, size: size}
	for i := range nodes {
		root.insert(nodes, i)
	}
	return root
}

func (q *quad) insert(nodes []domain.Node, i int) {
	x, y := nodes[i].X, nodes[i].Y
	q.cx = (q.cx*q.mass + x) / (q.mass + 1)
	q.cy = (q.cy*q.mass + y) / (q.mass + 1)
	q.mass++

	if q.children == nil {
		if len(q.bodies) == 0 || q.depth >= maxQuadDepth {
			q.bodies = append(q.bodies, i)
			return
		}
		q.split(nodes)
	}
	q.child(x, y).insert(nodes, i)
}

// split turns a leaf into an internal cell, pushing its bodies down
func (q *quad) split(nodes []domain.Node) {
	half := q.size / 2
	q.children = &[4]*quad{
		{x0: q.x0, y0: q.y0, size: half, depth: q.depth + 1},
		{x0: q.x0 + half, y0: q.y0, size: half, depth: q.depth + 1},
		{x0: q.x0, y0: q.y0 + half, size: half, depth: q.depth + 1},
		{x0: q.x0 + half, y0: q.y0 + half, size: half, depth: q.depth + 1},
	}
	for _, b := range q.bodies {
		q.child(nodes[b].X, nodes[b].Y).insert(nodes, b)
	}
	q.bodies = nil
}

func (q *quad) child(x, y float64) *quad {
	half := q.size / 2
	idx := 0
	if x >= q.x0+half {
		idx |= 1
	}
	if y >= q.y0+half {
		idx |= 2
	}
	return q.children[idx]
}

func (q *quad) contains(x, y float64) bool {
	return x >= q.x0 && x < q.x0+q.size && y >= q.y0 && y < q.y0+q.size
}

// accumulate adds the force on body i from every body in this cell
func (q *quad) accumulate(nodes []domain.Node, i int, f *ManyBodyForce, dv *domain.Vector) {
	if q.mass == 0 {
		return
	}
	min2 := f.DistanceMin * f.DistanceMin

	if q.children == nil {
		for _, b := range q.bodies {
			if b == i {
				continue
			}
			dx, dy, l2 := separation(nodes, i, b)
			if l2 < min2 {
				l2 = min2
			}
			w := f.Strength / l2
			dv.X += dx * w
			dv.Y += dy * w
		}
		return
	}

	xi, yi := nodes[i].X, nodes[i].Y
	dx := q.cx - xi
	dy := q.cy - yi
	l2 := dx*dx + dy*dy

	// Far enough (size/distance < theta) and not containing i: treat as one body
	if !q.contains(xi, yi) && q.size*q.size < f.Theta*f.Theta*l2 {
		if l2 < min2 {
			l2 = min2
		}
		w := f.Strength * q.mass / l2
		dv.X += dx * w
		dv.Y += dy * w
		return
	}

	for _, c := range q.children {
		c.accumulate(nodes, i, f, dv)
	}
}

// applyApproximate evaluates the many-body force with a Barnes-Hut quadtree
func (f *ManyBodyForce) applyApproximate(g *domain.Graph, dv []domain.Vector) {
	nodes := g.Nodes()
	root := buildQuadtree(nodes)
	for i := range nodes {
		root.accumulate(nodes, i, f, &dv[i])
	}
}
