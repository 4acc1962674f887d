package force

import (
	"math"

	"forcegraph/internal/domain"
)

// degenerateEpsilon is the squared separation below which two nodes are treated as coincident
const degenerateEpsilon = 1e-12

// jiggleMagnitude is the length of the substitute offset for coincident nodes
const jiggleMagnitude = 1e-6

// goldenAngle spreads substitute directions so coincident pairs do not align
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// ManyBodyForce makes every node pair interact with weight Strength/d² applied
// along their displacement. Negative strength repels. Separations below
// DistanceMin are floored to it. Theta > 0 enables the Barnes-Hut approximation.
type ManyBodyForce struct {
	Strength    float64
	DistanceMin float64
	Theta       float64
}

// NewManyBodyForce creates an exact all-pairs force with a unit distance floor
func NewManyBodyForce(strength float64) *ManyBodyForce {
	return &ManyBodyForce{
		Strength:    strength,
		DistanceMin: 1,
	}
}

// Initialize validates the parameters
func (f *ManyBodyForce) Initialize(g *domain.Graph) error {
	if !(f.DistanceMin > 0) {
		return domain.NewConfigurationError("charge_distance_min", "%v must be positive", f.DistanceMin)
	}
	if f.Theta < 0 || math.IsNaN(f.Theta) {
		return domain.NewConfigurationError("charge_theta", "%v is negative", f.Theta)
	}
	return nil
}

// Apply implements Force
func (f *ManyBodyForce) Apply(g *domain.Graph, dv []domain.Vector) {
	if f.Strength == 0 || g.Len() < 2 {
		return
	}
	if f.Theta > 0 {
		f.applyApproximate(g, dv)
		return
	}

	nodes := g.Nodes()
	min2 := f.DistanceMin * f.DistanceMin
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			dx, dy, l2 := separation(nodes, i, j)
			if l2 < min2 {
				l2 = min2
			}
			w := f.Strength / l2
			dv[i].X += dx * w
			dv[i].Y += dy * w
			dv[j].X -= dx * w
			dv[j].Y -= dy * w
		}
	}
}

// separation returns the displacement from node i to node j and its squared
// length, substituting a deterministic offset when the nodes coincide.
func separation(nodes []domain.Node, i, j int) (dx, dy, l2 float64) {
	dx = nodes[j].X - nodes[i].X
	dy = nodes[j].Y - nodes[i].Y
	l2 = dx*dx + dy*dy
	if l2 >= degenerateEpsilon {
		return dx, dy, l2
	}

	if i < j {
		dx, dy = jiggle(i, j)
	} else {
		dx, dy = jiggle(j, i)
		dx, dy = -dx, -dy
	}
	return dx, dy, dx*dx + dy*dy
}

// jiggle returns a tiny offset whose direction depends only on the index pair
func jiggle(i, j int) (float64, float64) {
	angle := float64(i*31+j*17+1) * goldenAngle
	return jiggleMagnitude * math.Cos(angle), jiggleMagnitude * math.Sin(angle)
}
