package simulation

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"forcegraph/internal/domain"
)

// TestPinnedProperty verifies pinned nodes sit exactly on their fixed
// position with zero velocity after every tick, whatever happens around them.
func TestPinnedProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("pinned nodes never move", prop.ForAll(
		func(size, pinned, ticks int, moves []float64) bool {
			fragment := domain.NewGraphFragment()
			for i := 1; i < size; i++ {
				fragment.AddEdge(fmt.Sprintf("n%d", i-1), fmt.Sprintf("n%d", i))
				fragment.AddEdge(fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", i/2))
			}
			g, err := domain.NewGraph(fragment)
			if err != nil {
				return false
			}
			s, err := New(g, DefaultOptions())
			if err != nil {
				return false
			}

			id := fmt.Sprintf("n%d", pinned%size)
			if err := s.StartDrag(id, domain.Vector{}); err != nil {
				return false
			}
			n, _ := g.NodeByID(id)

			for tick := 0; tick < ticks; tick++ {
				if tick%5 == 0 {
					m := moves[tick%len(moves)]
					if err := s.MoveDrag(id, domain.Vector{X: m, Y: -m}); err != nil {
						return false
					}
				}
				if _, err := s.Step(); err != nil {
					return false
				}
				if n.X != *n.FX || n.Y != *n.FY || n.VX != 0 || n.VY != 0 {
					return false
				}
			}
			return true
		},
		gen.IntRange(2, 12),
		gen.IntRange(0, 100),
		gen.IntRange(0, 60),
		gen.SliceOfN(8, gen.Float64Range(-200, 200)),
	))

	properties.Property("retained pins survive drag end", prop.ForAll(
		func(x, y float64, ticks int) bool {
			fragment := domain.NewGraphFragment()
			fragment.AddEdge("a", "b")
			fragment.AddEdge("b", "c")
			g, _ := domain.NewGraph(fragment)
			opts := DefaultOptions()
			opts.DragPinPolicy = PinRetain
			s, _ := New(g, opts)

			_ = s.StartDrag("b", domain.Vector{})
			_ = s.MoveDrag("b", domain.Vector{X: x, Y: y})
			_ = s.EndDrag("b")
			if _, err := s.Run(ticks); err != nil {
				return false
			}
			n, _ := g.NodeByID("b")
			return n.X == x && n.Y == y && n.VX == 0 && n.VY == 0
		},
		gen.Float64Range(-500, 500),
		gen.Float64Range(-500, 500),
		gen.IntRange(0, 300),
	))

	properties.TestingRun(t)
}
