package visibility

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"forcegraph/internal/domain"
)

func buildGraph(t *testing.T, edges [][2]string) *domain.Graph {
	t.Helper()
	fragment := domain.NewGraphFragment()
	for _, e := range edges {
		fragment.AddEdge(e[0], e[1])
	}
	g, err := domain.NewGraph(fragment)
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}
	return g
}

func visibleLinks(g *domain.Graph, f *Filter) []string {
	var out []string
	for i, l := range g.Links() {
		if f.LinkVisible(i) {
			out = append(out, l.SourceID+"-"+l.TargetID)
		}
	}
	return out
}

func TestNoActiveNode(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}, {"B", "C"}, {"D", "E"}})
	f, err := New(g, 1)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A", "B", "C", "D", "E"}) {
		t.Errorf("expected every node visible, got %v", got)
	}
	for i := range g.Links() {
		if !f.LinkVisible(i) {
			t.Errorf("link %d should be visible without an active node", i)
		}
	}

	f.ClearActive()
	if _, ok := f.Active(); ok {
		t.Error("expected no active node")
	}
}

func TestDegreeBound(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}, {"B", "C"}})

	t.Run("zero hops shows only the active node", func(t *testing.T) {
		f, _ := New(g, 0)
		if err := f.SetActive("A"); err != nil {
			t.Fatalf("SetActive failed: %v", err)
		}
		if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A"}) {
			t.Errorf("expected [A], got %v", got)
		}
		if got := visibleLinks(g, f); len(got) != 0 {
			t.Errorf("expected no visible links, got %v", got)
		}
	})

	t.Run("one hop from an end", func(t *testing.T) {
		f, _ := New(g, 1)
		if err := f.SetActive("A"); err != nil {
			t.Fatalf("SetActive failed: %v", err)
		}
		if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A", "B"}) {
			t.Errorf("expected [A B], got %v", got)
		}
		if got := visibleLinks(g, f); !reflect.DeepEqual(got, []string{"A-B"}) {
			t.Errorf("expected [A-B], got %v", got)
		}
	})

	t.Run("one hop from the middle", func(t *testing.T) {
		f, _ := New(g, 1)
		_ = f.SetActive("B")
		if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
			t.Errorf("expected all nodes, got %v", got)
		}
		if got := visibleLinks(g, f); len(got) != 2 {
			t.Errorf("expected both links, got %v", got)
		}
	})

	t.Run("raising the bound widens the set", func(t *testing.T) {
		f, _ := New(g, 1)
		_ = f.SetActive("A")
		if err := f.SetMaxDegree(2); err != nil {
			t.Fatalf("SetMaxDegree failed: %v", err)
		}
		if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
			t.Errorf("expected all nodes, got %v", got)
		}
		if err := f.SetMaxDegree(0); err != nil {
			t.Fatalf("SetMaxDegree failed: %v", err)
		}
		if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A"}) {
			t.Errorf("expected [A] after lowering, got %v", got)
		}
	})

	t.Run("switching active node resets the old set", func(t *testing.T) {
		f, _ := New(g, 1)
		_ = f.SetActive("A")
		_ = f.SetActive("C")
		if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"B", "C"}) {
			t.Errorf("expected [B C], got %v", got)
		}
		if got := visibleLinks(g, f); !reflect.DeepEqual(got, []string{"B-C"}) {
			t.Errorf("expected [B-C], got %v", got)
		}
	})
}

func TestCyclesAndSelfLoops(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"A", "A"}, {"C", "D"}})
	f, _ := New(g, 1)
	_ = f.SetActive("A")

	if got := f.VisibleNodeIDs(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("expected [A B C], got %v", got)
	}
	if got := visibleLinks(g, f); !reflect.DeepEqual(got, []string{"A-B", "B-C", "C-A", "A-A"}) {
		t.Errorf("unexpected visible links %v", got)
	}
}

func TestErrors(t *testing.T) {
	g := buildGraph(t, [][2]string{{"A", "B"}})

	if _, err := New(g, -1); !domain.IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}

	f, _ := New(g, 1)
	if err := f.SetMaxDegree(-2); !domain.IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
	if f.MaxDegree() != 1 {
		t.Errorf("rejected bound should not apply, got %d", f.MaxDegree())
	}
	if err := f.SetActive("Z"); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestRecomputeIsLocal(t *testing.T) {
	fragment := domain.NewGraphFragment()
	fragment.AddEdge("hub", "leaf")
	for i := 0; i < 5000; i++ {
		fragment.AddEdge(fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	g, err := domain.NewGraph(fragment)
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}

	f, _ := New(g, 3)
	_ = f.SetActive("hub")
	if f.Traversed() > 10 {
		t.Errorf("recompute visited %d links, expected only the hub component", f.Traversed())
	}

	// Repeated identical calls do nothing
	_ = f.SetActive("hub")
	_ = f.SetMaxDegree(3)
	if got := len(f.VisibleNodeIDs()); got != 2 {
		t.Errorf("expected 2 visible nodes, got %d", got)
	}
}

func TestVisibilityProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	edgeGen := gen.SliceOfN(30, gen.IntRange(0, 11))

	properties.Property("a link is visible iff both endpoints are", prop.ForAll(
		func(ends []int, active, depth int) bool {
			g := randomGraph(ends)
			f, _ := New(g, depth)
			_ = f.SetActive(g.Node(active % g.Len()).ID)
			for i, l := range g.Links() {
				both := f.NodeVisible(l.Source) && f.NodeVisible(l.Target)
				if depth == 0 {
					both = false
				}
				if f.LinkVisible(i) != both {
					return false
				}
			}
			return true
		},
		edgeGen, gen.IntRange(0, 100), gen.IntRange(0, 4),
	))

	properties.Property("visible sets grow with the bound", prop.ForAll(
		func(ends []int, active, depth int) bool {
			g := randomGraph(ends)
			id := g.Node(active % g.Len()).ID
			narrow, _ := New(g, depth)
			wide, _ := New(g, depth+1)
			_ = narrow.SetActive(id)
			_ = wide.SetActive(id)
			for i := 0; i < g.Len(); i++ {
				if narrow.NodeVisible(i) && !wide.NodeVisible(i) {
					return false
				}
			}
			return true
		},
		edgeGen, gen.IntRange(0, 100), gen.IntRange(0, 4),
	))

	properties.Property("incremental updates match a fresh filter", prop.ForAll(
		func(ends []int, first, second, depth int) bool {
			g := randomGraph(ends)
			reused, _ := New(g, 1)
			_ = reused.SetActive(g.Node(first % g.Len()).ID)
			_ = reused.SetMaxDegree(depth)
			_ = reused.SetActive(g.Node(second % g.Len()).ID)

			fresh, _ := New(g, depth)
			_ = fresh.SetActive(g.Node(second % g.Len()).ID)
			return reflect.DeepEqual(reused.Nodes(), fresh.Nodes()) &&
				reflect.DeepEqual(reused.Links(), fresh.Links())
		},
		edgeGen, gen.IntRange(0, 100), gen.IntRange(0, 100), gen.IntRange(0, 4),
	))

	properties.TestingRun(t)
}

// randomGraph pairs consecutive values into links over node ids n0..n11
func randomGraph(ends []int) *domain.Graph {
	fragment := domain.NewGraphFragment()
	for i := 0; i+1 < len(ends); i += 2 {
		fragment.AddEdge(fmt.Sprintf("n%d", ends[i]), fmt.Sprintf("n%d", ends[i+1]))
	}
	g, err := domain.NewGraph(fragment)
	if err != nil {
		panic(err)
	}
	return g
}
