package simulation

import (
	"math"

	"forcegraph/internal/domain"
)

// integrate applies one tick of accumulated deltas. Free axes take
// v = (v + alpha*dv) * (1 - velocityDecay) then x += v; pinned axes are
// forced to the fixed value with zero velocity.
func integrate(nodes []domain.Node, dv []domain.Vector, alpha, velocityDecay float64) {
	damp := 1 - velocityDecay
	for i := range nodes {
		n := &nodes[i]
		if n.FX != nil {
			n.X, n.VX = *n.FX, 0
		} else {
			n.VX = (n.VX + alpha*dv[i].X) * damp
			n.X += n.VX
		}
		if n.FY != nil {
			n.Y, n.VY = *n.FY, 0
		} else {
			n.VY = (n.VY + alpha*dv[i].Y) * damp
			n.Y += n.VY
		}
	}
}

// finiteDeltas reports the first node whose accumulated delta is not finite
func finiteDeltas(dv []domain.Vector) (int, bool) {
	for i, d := range dv {
		if math.IsNaN(d.X) || math.IsInf(d.X, 0) || math.IsNaN(d.Y) || math.IsInf(d.Y, 0) {
			return i, false
		}
	}
	return -1, true
}
