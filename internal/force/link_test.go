package force

import (
	"math"
	"testing"

	"forcegraph/internal/domain"
)

func TestLinkForceTargetDistance(t *testing.T) {
	t.Run("constant distance", func(t *testing.T) {
		g := placedGraph(t, [][2]float64{{0, 0}, {1, 0}, {2, 0}}, [][2]string{{"a", "b"}, {"b", "c"}})
		f := NewLinkForce(ConstantDistance(60), 1, BiasEven)
		if err := f.Initialize(g); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := range g.Links() {
			assertClose(t, "distance", 60, f.TargetDistance(i), 0)
		}
	})

	t.Run("weight mapping over link domain", func(t *testing.T) {
		fragment := domain.NewGraphFragment()
		fragment.AddWeightedEdge("a", "b", 2)
		fragment.AddWeightedEdge("b", "c", 1)
		fragment.AddWeightedEdge("c", "d", 1.5)
		g := mustGraph(t, fragment)

		f := NewLinkForce(MappedDistance(50, 100), 1, BiasEven)
		if err := f.Initialize(g); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertClose(t, "heaviest", 100, f.TargetDistance(0), 1e-12)
		assertClose(t, "lightest", 50, f.TargetDistance(1), 1e-12)
		assertClose(t, "middle", 75, f.TargetDistance(2), 1e-12)
	})

	t.Run("degenerate weight domain maps to midpoint", func(t *testing.T) {
		fragment := domain.NewGraphFragment()
		fragment.AddEdge("a", "b")
		fragment.AddEdge("b", "c")
		g := mustGraph(t, fragment)

		f := NewLinkForce(MappedDistance(40, 80), 1, BiasEven)
		if err := f.Initialize(g); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertClose(t, "midpoint", 60, f.TargetDistance(0), 1e-12)
	})

	t.Run("explicit domain extrapolating below zero is rejected", func(t *testing.T) {
		fragment := domain.NewGraphFragment()
		fragment.AddWeightedEdge("a", "b", -10)
		g := mustGraph(t, fragment)

		lo, hi := 0.0, 1.0
		f := NewLinkForce(LinkDistance{Mapping: &DistanceMapping{
			DistanceMin: 10, DistanceMax: 20, WeightMin: &lo, WeightMax: &hi,
		}}, 1, BiasEven)
		if err := f.Initialize(g); !domain.IsConfigurationError(err) {
			t.Errorf("expected ConfigurationError, got %v", err)
		}
	})
}

func TestLinkDistanceValidate(t *testing.T) {
	lo, hi := 5.0, 1.0
	inf := math.Inf(1)
	tests := []struct {
		name    string
		dist    LinkDistance
		wantErr bool
	}{
		{"zero constant", ConstantDistance(0), false},
		{"positive constant", ConstantDistance(30), false},
		{"negative constant", ConstantDistance(-1), true},
		{"valid mapping", MappedDistance(10, 20), false},
		{"inverted mapping", MappedDistance(20, 10), true},
		{"negative mapping", MappedDistance(-5, 10), true},
		{"infinite constant", ConstantDistance(math.Inf(1)), true},
		{"nan constant", ConstantDistance(math.NaN()), true},
		{"infinite mapping bound", MappedDistance(10, math.Inf(1)), true},
		{"infinite weight bound", LinkDistance{Mapping: &DistanceMapping{DistanceMin: 1, DistanceMax: 2, WeightMax: &inf}}, true},
		{"inverted weight domain", LinkDistance{Mapping: &DistanceMapping{DistanceMin: 1, DistanceMax: 2, WeightMin: &lo, WeightMax: &hi}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.dist.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLinkForceApply(t *testing.T) {
	t.Run("stretches a short link evenly", func(t *testing.T) {
		g := placedGraph(t, [][2]float64{{0, 0}, {10, 0}}, [][2]string{{"a", "b"}})
		f := NewLinkForce(ConstantDistance(30), 1, BiasEven)
		if err := f.Initialize(g); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		dv := make([]domain.Vector, 2)
		f.Apply(g, dv)

		assertClose(t, "source x", -10, dv[0].X, 1e-12)
		assertClose(t, "target x", 10, dv[1].X, 1e-12)
		assertClose(t, "source y", 0, dv[0].Y, 1e-12)
	})

	t.Run("contracts a long link", func(t *testing.T) {
		g := placedGraph(t, [][2]float64{{0, 0}, {0, 50}}, [][2]string{{"a", "b"}})
		f := NewLinkForce(ConstantDistance(30), 1, BiasEven)
		_ = f.Initialize(g)

		dv := make([]domain.Vector, 2)
		f.Apply(g, dv)

		if dv[0].Y <= 0 || dv[1].Y >= 0 {
			t.Errorf("expected endpoints to move toward each other, got %+v", dv)
		}
		assertClose(t, "total correction", 20, dv[0].Y-dv[1].Y, 1e-12)
	})

	t.Run("coefficient scales the correction", func(t *testing.T) {
		g := placedGraph(t, [][2]float64{{0, 0}, {10, 0}}, [][2]string{{"a", "b"}})
		f := NewLinkForce(ConstantDistance(30), 0.5, BiasEven)
		_ = f.Initialize(g)

		dv := make([]domain.Vector, 2)
		f.Apply(g, dv)
		assertClose(t, "target x", 5, dv[1].X, 1e-12)
	})

	t.Run("degree bias moves the leaf more", func(t *testing.T) {
		// a is a hub of degree 2, b and c are leaves
		g := placedGraph(t, [][2]float64{{0, 0}, {10, 0}, {-10, 0}}, [][2]string{{"a", "b"}, {"a", "c"}})
		f := NewLinkForce(ConstantDistance(40), 1, BiasDegree)
		_ = f.Initialize(g)

		dv := make([]domain.Vector, 3)
		f.Apply(g, dv)

		// Link a-b: correction 30, leaf b takes 2/3
		assertClose(t, "leaf b", 20, dv[1].X, 1e-12)
		assertClose(t, "leaf c", -20, dv[2].X, 1e-12)
		// Hub receives opposite 1/3 shares which cancel
		assertClose(t, "hub", 0, dv[0].X, 1e-12)
	})

	t.Run("self loops are ignored", func(t *testing.T) {
		g := placedGraph(t, [][2]float64{{0, 0}}, [][2]string{{"a", "a"}})
		f := NewLinkForce(ConstantDistance(30), 1, BiasEven)
		_ = f.Initialize(g)

		dv := make([]domain.Vector, 1)
		f.Apply(g, dv)
		if dv[0] != (domain.Vector{}) {
			t.Errorf("expected no delta, got %+v", dv[0])
		}
	})

	t.Run("unknown bias is rejected", func(t *testing.T) {
		g := placedGraph(t, [][2]float64{{0, 0}, {1, 0}}, [][2]string{{"a", "b"}})
		f := NewLinkForce(ConstantDistance(30), 1, Bias("sideways"))
		if err := f.Initialize(g); !domain.IsConfigurationError(err) {
			t.Errorf("expected ConfigurationError, got %v", err)
		}
	})
}
