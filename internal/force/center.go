package force

import "forcegraph/internal/domain"

// CenterForce applies one uniform correction to every node: Strength times the
// gap between the target point and the current centroid.
type CenterForce struct {
	X        float64
	Y        float64
	Strength float64
}

// NewCenterForce creates a centering force toward (x, y) at full strength
func NewCenterForce(x, y float64) *CenterForce {
	return &CenterForce{X: x, Y: y, Strength: 1}
}

// Apply implements Force
func (f *CenterForce) Apply(g *domain.Graph, dv []domain.Vector) {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return
	}

	var sx, sy float64
	for i := range nodes {
		sx += nodes[i].X
		sy += nodes[i].Y
	}
	n := float64(len(nodes))
	gx := (f.X - sx/n) * f.Strength
	gy := (f.Y - sy/n) * f.Strength

	for i := range dv {
		dv[i].X += gx
		dv[i].Y += gy
	}
}
