// Package visibility implements the degree-of-separation filter: which nodes and
// links are visible relative to an active node, bounded by a hop distance.
//
// The filter is pure topology. It never reads or writes kinematic state, and it
// recomputes only when the active node or the hop bound changes. Recomputation
// touches the previously visible set and the links incident to the newly
// visible set, never the whole graph.
package visibility

import (
	"forcegraph/internal/domain"
)

// none marks the absence of an active node
const none = -1

// Filter holds the visibility verdict for one graph
type Filter struct {
	graph     *domain.Graph
	active    int
	maxDegree int

	nodes        []bool
	links        []bool
	touchedNodes []int
	touchedLinks []int
	traversed    int
}

// New creates a filter with no active node, so everything is visible
func New(g *domain.Graph, maxDegree int) (*Filter, error) {
	if maxDegree < 0 {
		return nil, domain.NewConfigurationError("max_degree", "%d is negative", maxDegree)
	}
	return &Filter{
		graph:     g,
		active:    none,
		maxDegree: maxDegree,
		nodes:     make([]bool, g.Len()),
		links:     make([]bool, len(g.Links())),
	}, nil
}

// SetActive makes id the active node and recomputes
func (f *Filter) SetActive(id string) error {
	i, ok := f.graph.Lookup(id)
	if !ok {
		return domain.ErrNodeNotFound
	}
	if i == f.active {
		return nil
	}
	f.active = i
	f.recompute()
	return nil
}

// ClearActive removes the active node; every node and link becomes visible
func (f *Filter) ClearActive() {
	if f.active == none {
		return
	}
	f.active = none
	f.recompute()
}

// SetMaxDegree changes the hop bound and recomputes
func (f *Filter) SetMaxDegree(d int) error {
	if d < 0 {
		return domain.NewConfigurationError("max_degree", "%d is negative", d)
	}
	if d == f.maxDegree {
		return nil
	}
	f.maxDegree = d
	f.recompute()
	return nil
}

// Active returns the active node id, if any
func (f *Filter) Active() (string, bool) {
	if f.active == none {
		return "", false
	}
	return f.graph.Node(f.active).ID, true
}

// MaxDegree returns the hop bound
func (f *Filter) MaxDegree() int {
	return f.maxDegree
}

// Traversed returns how many incident-link visits the last recomputation made
func (f *Filter) Traversed() int {
	return f.traversed
}

// NodeVisible reports whether node index i is visible
func (f *Filter) NodeVisible(i int) bool {
	if f.active == none {
		return true
	}
	return f.nodes[i]
}

// LinkVisible reports whether link index i is visible
func (f *Filter) LinkVisible(i int) bool {
	if f.active == none {
		return true
	}
	return f.links[i]
}

// VisibleNodeIDs returns the visible node ids in arena order
func (f *Filter) VisibleNodeIDs() []string {
	nodes := f.graph.Nodes()
	ids := make([]string, 0, len(nodes))
	for i := range nodes {
		if f.NodeVisible(i) {
			ids = append(ids, nodes[i].ID)
		}
	}
	return ids
}

// Nodes returns one verdict per node, in arena order
func (f *Filter) Nodes() []domain.Visibility {
	nodes := f.graph.Nodes()
	out := make([]domain.Visibility, len(nodes))
	for i := range nodes {
		out[i] = domain.Visibility{ID: nodes[i].ID, Visible: f.NodeVisible(i)}
	}
	return out
}

// Links returns one verdict per link, in input order
func (f *Filter) Links() []domain.Visibility {
	links := f.graph.Links()
	out := make([]domain.Visibility, len(links))
	for i := range links {
		out[i] = domain.Visibility{ID: links[i].ID, Visible: f.LinkVisible(i)}
	}
	return out
}

func (f *Filter) recompute() {
	for _, i := range f.touchedNodes {
		f.nodes[i] = false
	}
	for _, i := range f.touchedLinks {
		f.links[i] = false
	}
	f.touchedNodes = f.touchedNodes[:0]
	f.touchedLinks = f.touchedLinks[:0]
	f.traversed = 0

	if f.active == none {
		return
	}

	f.markNode(f.active)
	frontier := []int{f.active}
	for layer := 0; layer < f.maxDegree && len(frontier) > 0; layer++ {
		var next []int
		for _, n := range frontier {
			for _, li := range f.graph.Incident(n) {
				f.traversed++
				m := f.graph.Link(li).Other(n)
				if !f.nodes[m] {
					f.markNode(m)
					next = append(next, m)
				}
			}
		}
		frontier = next
	}

	// With no hops allowed only the active node shows, without links
	if f.maxDegree == 0 {
		return
	}

	for _, n := range f.touchedNodes {
		for _, li := range f.graph.Incident(n) {
			if f.links[li] {
				continue
			}
			f.traversed++
			l := f.graph.Link(li)
			if f.nodes[l.Source] && f.nodes[l.Target] {
				f.links[li] = true
				f.touchedLinks = append(f.touchedLinks, li)
			}
		}
	}
}

func (f *Filter) markNode(i int) {
	f.nodes[i] = true
	f.touchedNodes = append(f.touchedNodes, i)
}
