package simulation

import (
	"math"
	"math/rand"

	"forcegraph/internal/domain"
)

var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// place seeds every node the input did not position. Input positions and
// pinned coordinates are kept.
func place(g *domain.Graph, o Options) {
	nodes := g.Nodes()
	var rng *rand.Rand
	if o.InitialLayout == PlaceRandom {
		rng = rand.New(rand.NewSource(o.Seed))
	}
	spread := o.InitialRadius * math.Sqrt(float64(len(nodes)))

	for i := range nodes {
		n := &nodes[i]
		n.VX, n.VY = 0, 0
		if n.Positioned {
			continue
		}

		var x, y float64
		switch o.InitialLayout {
		case PlaceRandom:
			r := spread * math.Sqrt(rng.Float64())
			a := 2 * math.Pi * rng.Float64()
			x, y = r*math.Cos(a), r*math.Sin(a)
		default:
			r := o.InitialRadius * math.Sqrt(0.5+float64(i))
			a := float64(i) * goldenAngle
			x, y = r*math.Cos(a), r*math.Sin(a)
		}

		if n.FX == nil {
			n.X = o.CenterX + x
		}
		if n.FY == nil {
			n.Y = o.CenterY + y
		}
	}
}
