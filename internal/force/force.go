package force

import "forcegraph/internal/domain"

// Force contributes additive velocity deltas for one tick. Implementations read
// node state from g and accumulate into dv, which is indexed like g.Nodes().
// Deltas are unscaled; the integrator multiplies the sum by alpha.
type Force interface {
	Apply(g *domain.Graph, dv []domain.Vector)
}

// Initializer is implemented by forces that precompute parameters from the
// topology. It is called once when the force is bound to a graph.
type Initializer interface {
	Initialize(g *domain.Graph) error
}

// Func adapts an ordinary function into a Force
type Func func(g *domain.Graph, dv []domain.Vector)

// Apply implements Force
func (f Func) Apply(g *domain.Graph, dv []domain.Vector) {
	f(g, dv)
}
