package domain

import (
	"math"
)

// Graph is the topology the engine lays out: a stable node arena keyed by id,
// index-based links, and per-node incidence lists. Topology is fixed after
// construction; node kinematic state is mutated in place by the integrator and
// the drag/pin controller.
type Graph struct {
	nodes    []Node
	index    map[string]int
	links    []Link
	incident [][]int
	maxDeg   int
}

// NewGraph builds a Graph from raw input, resolving every link endpoint.
// Any unresolved id, duplicate explicit node, empty id or non-finite value is
// reported as an *InputError and no graph is returned.
func NewGraph(fragment *GraphFragment) (*Graph, error) {
	if fragment == nil {
		return nil, NewInputError("", "graph fragment is nil")
	}

	g := &Graph{
		index: make(map[string]int, len(fragment.Nodes)),
		links: make([]Link, 0, len(fragment.Links)),
	}

	if len(fragment.Nodes) > 0 {
		for _, spec := range fragment.Nodes {
			if err := g.addNode(spec); err != nil {
				return nil, err
			}
		}
	} else {
		// Node identity implied by endpoint labels, in order of first appearance
		for _, ls := range fragment.Links {
			for _, id := range []string{ls.SourceID, ls.TargetID} {
				if _, ok := g.index[id]; ok || id == "" {
					continue
				}
				if err := g.addNode(NodeSpec{ID: id}); err != nil {
					return nil, err
				}
			}
		}
	}

	g.incident = make([][]int, len(g.nodes))

	for i, ls := range fragment.Links {
		if ls.SourceID == "" || ls.TargetID == "" {
			return nil, NewInputError("", "link %d endpoint id is empty", i)
		}
		src, ok := g.index[ls.SourceID]
		if !ok {
			return nil, NewInputError(ls.SourceID, "link %d source does not resolve to a node", i)
		}
		dst, ok := g.index[ls.TargetID]
		if !ok {
			return nil, NewInputError(ls.TargetID, "link %d target does not resolve to a node", i)
		}

		weight := DefaultWeight
		if ls.Weight != nil {
			weight = *ls.Weight
			if math.IsNaN(weight) || math.IsInf(weight, 0) {
				return nil, NewInputError(ls.SourceID, "link %d weight is not finite", i)
			}
		}

		link := Link{
			ID:       GenerateLinkID(ls.SourceID, ls.TargetID, i),
			SourceID: ls.SourceID,
			TargetID: ls.TargetID,
			Source:   src,
			Target:   dst,
			Weight:   weight,
			Index:    i,
		}
		g.links = append(g.links, link)

		// Undirected; multi-edges and self-loops count once per endpoint
		g.nodes[src].Degree++
		g.nodes[dst].Degree++
		g.incident[src] = append(g.incident[src], i)
		if dst != src {
			g.incident[dst] = append(g.incident[dst], i)
		}
	}

	for i := range g.nodes {
		if g.nodes[i].Degree > g.maxDeg {
			g.maxDeg = g.nodes[i].Degree
		}
	}

	return g, nil
}

func (g *Graph) addNode(spec NodeSpec) error {
	if spec.ID == "" {
		return NewInputError("", "node id is empty")
	}
	if _, exists := g.index[spec.ID]; exists {
		return NewInputError(spec.ID, "duplicate node id")
	}
	for _, v := range []*float64{spec.X, spec.Y, spec.FX, spec.FY} {
		if v != nil && (math.IsNaN(*v) || math.IsInf(*v, 0)) {
			return NewInputError(spec.ID, "node coordinate is not finite")
		}
	}
	if (spec.X == nil) != (spec.Y == nil) {
		return NewInputError(spec.ID, "node position needs both x and y")
	}

	node := Node{ID: spec.ID, Index: len(g.nodes)}
	if spec.X != nil {
		node.X, node.Y = *spec.X, *spec.Y
		node.Positioned = true
	}
	if spec.FX != nil {
		fx := *spec.FX
		node.FX = &fx
		node.X = fx
	}
	if spec.FY != nil {
		fy := *spec.FY
		node.FY = &fy
		node.Y = fy
	}
	if spec.FX != nil && spec.FY != nil {
		node.Positioned = true
	}

	g.index[spec.ID] = node.Index
	g.nodes = append(g.nodes, node)
	return nil
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Nodes returns the node arena. The slice is shared: callers may read it freely,
// but only the integrator and the drag/pin controller write node state.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Node returns the node at index i
func (g *Graph) Node(i int) *Node {
	return &g.nodes[i]
}

// Lookup resolves a node id to its arena index
func (g *Graph) Lookup(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NodeByID returns the node with the given id or ErrNodeNotFound
func (g *Graph) NodeByID(id string) (*Node, error) {
	i, ok := g.index[id]
	if !ok {
		return nil, ErrNodeNotFound
	}
	return &g.nodes[i], nil
}

// Links returns all links in input order
func (g *Graph) Links() []Link {
	return g.links
}

// LinkSpecs returns the links as raw input, for rebuilding the same topology
func (g *Graph) LinkSpecs() []LinkSpec {
	specs := make([]LinkSpec, len(g.links))
	for i, l := range g.links {
		w := l.Weight
		specs[i] = LinkSpec{SourceID: l.SourceID, TargetID: l.TargetID, Weight: &w}
	}
	return specs
}

// Link returns the link at index i
func (g *Graph) Link(i int) *Link {
	return &g.links[i]
}

// Incident returns the indices of links touching node i. A self-loop appears once.
func (g *Graph) Incident(i int) []int {
	return g.incident[i]
}

// MaxDegree returns the highest node degree, 0 for an edgeless graph
func (g *Graph) MaxDegree() int {
	return g.maxDeg
}

// Radius maps a node's degree linearly from [1, MaxDegree] onto [minR, maxR].
// Degree-0 nodes size as degree 1. A degenerate domain yields the midpoint.
func (g *Graph) Radius(i int, minR, maxR float64) float64 {
	deg := g.nodes[i].Degree
	if deg < 1 {
		deg = 1
	}
	if g.maxDeg <= 1 {
		return (minR + maxR) / 2
	}
	t := float64(deg-1) / float64(g.maxDeg-1)
	return minR + t*(maxR-minR)
}
