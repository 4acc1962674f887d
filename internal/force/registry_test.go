package force

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"forcegraph/internal/domain"
)

// mustGraph builds a graph or fails the test
func mustGraph(t *testing.T, fragment *domain.GraphFragment) *domain.Graph {
	t.Helper()
	g, err := domain.NewGraph(fragment)
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}
	return g
}

// placedGraph builds a graph whose nodes sit at the given coordinates, in order
func placedGraph(t *testing.T, coords [][2]float64, links [][2]string) *domain.Graph {
	t.Helper()
	fragment := domain.NewGraphFragment()
	for i, c := range coords {
		x, y := c[0], c[1]
		fragment.AddNode(domain.NodeSpec{ID: string(rune('a' + i)), X: &x, Y: &y})
	}
	for _, l := range links {
		fragment.AddEdge(l[0], l[1])
	}
	return mustGraph(t, fragment)
}

func assertClose(t *testing.T, name string, expected, actual, tol float64) {
	t.Helper()
	if math.Abs(expected-actual) > tol {
		t.Errorf("%s: expected %v, got %v (tolerance %v)", name, expected, actual, tol)
	}
}

func TestRegistryOrder(t *testing.T) {
	t.Run("iterates in insertion order", func(t *testing.T) {
		r := NewRegistry()
		var calls []string
		for _, name := range []string{"link", "charge", "center"} {
			name := name
			if err := r.Register(name, Func(func(*domain.Graph, []domain.Vector) {
				calls = append(calls, name)
			})); err != nil {
				t.Fatalf("register %s: %v", name, err)
			}
		}

		g := placedGraph(t, [][2]float64{{0, 0}}, nil)
		r.Accumulate(g, make([]domain.Vector, g.Len()))

		expected := []string{"link", "charge", "center"}
		if !reflect.DeepEqual(expected, calls) {
			t.Errorf("expected call order %v, got %v", expected, calls)
		}
		if !reflect.DeepEqual(expected, r.Names()) {
			t.Errorf("expected names %v, got %v", expected, r.Names())
		}
	})

	t.Run("set replaces in place", func(t *testing.T) {
		r := NewRegistry()
		noop := Func(func(*domain.Graph, []domain.Vector) {})
		_ = r.Register("a", noop)
		_ = r.Register("b", noop)
		_ = r.Register("c", noop)

		r.Set("a", NewCenterForce(0, 0))
		if got := r.Names(); !reflect.DeepEqual([]string{"a", "b", "c"}, got) {
			t.Errorf("expected order preserved, got %v", got)
		}
		if f, _ := r.Get("a"); f == nil {
			t.Error("expected replaced force to be retrievable")
		}

		r.Set("d", noop)
		if got := r.Names(); !reflect.DeepEqual([]string{"a", "b", "c", "d"}, got) {
			t.Errorf("expected new force appended, got %v", got)
		}
	})

	t.Run("set nil removes", func(t *testing.T) {
		r := NewRegistry()
		_ = r.Register("a", NewCenterForce(0, 0))
		r.Set("a", nil)
		if r.Len() != 0 {
			t.Errorf("expected empty registry, got %d forces", r.Len())
		}
	})

	t.Run("remove reports presence", func(t *testing.T) {
		r := NewRegistry()
		_ = r.Register("a", NewCenterForce(0, 0))
		if !r.Remove("a") {
			t.Error("expected remove of existing force to report true")
		}
		if r.Remove("a") {
			t.Error("expected second remove to report false")
		}
	})
}

func TestRegistryRegisterErrors(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", NewCenterForce(0, 0)); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register("x", nil); err == nil {
		t.Error("expected error for nil force")
	}
	if err := r.Register("x", NewCenterForce(0, 0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register("x", NewCenterForce(0, 0)); err == nil {
		t.Error("expected error for duplicate name")
	}
}

func TestRegistryAccumulate(t *testing.T) {
	g := placedGraph(t, [][2]float64{{0, 0}, {10, 0}}, nil)
	r := NewRegistry()
	_ = r.Register("push", Func(func(g *domain.Graph, dv []domain.Vector) {
		dv[0].X += 1
	}))
	_ = r.Register("push-again", Func(func(g *domain.Graph, dv []domain.Vector) {
		dv[0].X += 2
		dv[1].Y -= 1
	}))

	dv := []domain.Vector{{X: 99, Y: 99}, {X: 99, Y: 99}}
	r.Accumulate(g, dv)

	if dv[0].X != 3 || dv[0].Y != 0 {
		t.Errorf("expected node 0 delta (3,0), got %+v", dv[0])
	}
	if dv[1].X != 0 || dv[1].Y != -1 {
		t.Errorf("expected node 1 delta (0,-1), got %+v", dv[1])
	}
}

func TestRegistryInitializeWrapsErrors(t *testing.T) {
	g := placedGraph(t, [][2]float64{{0, 0}, {10, 0}}, [][2]string{{"a", "b"}})
	r := NewRegistry()
	_ = r.Register("link", NewLinkForce(ConstantDistance(-5), 1, BiasEven))

	err := r.Initialize(g)
	if err == nil {
		t.Fatal("expected error for negative distance")
	}
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T: %v", err, err)
	}
	if cfgErr.Field != "link_distance" {
		t.Errorf("expected field link_distance, got %s", cfgErr.Field)
	}
}
