package simulation

import (
	"forcegraph/internal/domain"
)

// Freeze exports the freeze record of every node, in arena order
func (s *Simulation) Freeze() []domain.NodePosition {
	nodes := s.graph.Nodes()
	out := make([]domain.NodePosition, len(nodes))
	for i := range nodes {
		out[i] = domain.PositionOf(&nodes[i])
	}
	return out
}

// Thaw rebuilds a simulation from frozen positions and the original links.
// Every node comes back pinned where it was frozen and alpha starts at
// alphaMin, so the simulation is settled immediately.
func Thaw(positions []domain.NodePosition, links []domain.LinkSpec, opts Options) (*Simulation, error) {
	if len(positions) == 0 && len(links) > 0 {
		return nil, domain.NewInputError("", "frozen layout has links but no positions")
	}

	fragment := domain.NewGraphFragment()
	for _, p := range positions {
		fragment.AddNode(p.PinnedSpec())
	}
	for _, l := range links {
		fragment.AddLink(l)
	}

	g, err := domain.NewGraph(fragment)
	if err != nil {
		return nil, err
	}

	s, err := New(g, opts)
	if err != nil {
		return nil, err
	}
	s.cooling.alpha = opts.AlphaMin
	return s, nil
}
