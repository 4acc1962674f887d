package simulation

import (
	"errors"
	"math"
	"testing"

	"forcegraph/internal/domain"
)

func assertPinnedAt(t *testing.T, n *domain.Node, x, y float64) {
	t.Helper()
	if n.FX == nil || n.FY == nil {
		t.Fatalf("node %s is not pinned", n.ID)
	}
	if *n.FX != x || *n.FY != y || n.X != x || n.Y != y {
		t.Errorf("node %s: expected pinned at (%v, %v), got fixed (%v, %v) position (%v, %v)",
			n.ID, x, y, *n.FX, *n.FY, n.X, n.Y)
	}
	if n.VX != 0 || n.VY != 0 {
		t.Errorf("node %s: pinned velocity should be zero, got (%v, %v)", n.ID, n.VX, n.VY)
	}
}

func TestDragLifecycle(t *testing.T) {
	for _, policy := range []PinPolicy{PinRelease, PinRetain} {
		t.Run(string(policy), func(t *testing.T) {
			g := newGraph(t, edge{src: "A", dst: "B"}, edge{src: "B", dst: "C"})
			opts := DefaultOptions()
			opts.DragPinPolicy = policy
			s := newSim(t, g, opts)
			if _, err := s.Run(1000); err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if !s.Settled() || s.Running() {
				t.Fatal("expected a settled, stopped simulation")
			}

			a, _ := g.NodeByID("A")
			startX, startY := a.X, a.Y
			if err := s.StartDrag("A", domain.Vector{X: 999, Y: 999}); err != nil {
				t.Fatalf("StartDrag failed: %v", err)
			}
			assertPinnedAt(t, a, startX, startY)
			if s.AlphaTarget() != opts.AlphaTargetOnDrag {
				t.Errorf("expected alpha target %v, got %v", opts.AlphaTargetOnDrag, s.AlphaTarget())
			}
			if !s.Running() {
				t.Error("drag should resume the scheduler")
			}

			if err := s.MoveDrag("A", domain.Vector{X: 40, Y: -20}); err != nil {
				t.Fatalf("MoveDrag failed: %v", err)
			}
			assertPinnedAt(t, a, 40, -20)

			for i := 0; i < 30; i++ {
				if ok, err := s.Advance(); err != nil || !ok {
					t.Fatalf("expected reheated tick %d, got ok=%v err=%v", i, ok, err)
				}
				assertPinnedAt(t, a, 40, -20)
			}
			if s.Alpha() <= opts.AlphaMin {
				t.Error("alpha should be held up during drag")
			}

			if err := s.EndDrag("A"); err != nil {
				t.Fatalf("EndDrag failed: %v", err)
			}
			if s.AlphaTarget() != 0 {
				t.Errorf("expected alpha target 0 after drag, got %v", s.AlphaTarget())
			}
			switch policy {
			case PinRelease:
				if a.Fixed() {
					t.Error("release policy should clear fx/fy")
				}
			case PinRetain:
				assertPinnedAt(t, a, 40, -20)
				if err := s.Unpin("A"); err != nil {
					t.Fatalf("Unpin failed: %v", err)
				}
				if a.Fixed() {
					t.Error("unpin should clear fx/fy regardless of policy")
				}
			}

			if _, err := s.Run(1000); err != nil {
				t.Fatalf("Run failed: %v", err)
			}
			if !s.Settled() {
				t.Error("expected the simulation to cool again")
			}
		})
	}
}

func TestConcurrentDrags(t *testing.T) {
	g := newGraph(t, edge{src: "A", dst: "B"}, edge{src: "B", dst: "C"})
	s := newSim(t, g, DefaultOptions())

	_ = s.StartDrag("A", domain.Vector{})
	_ = s.StartDrag("C", domain.Vector{})
	if err := s.EndDrag("A"); err != nil {
		t.Fatalf("EndDrag failed: %v", err)
	}
	if s.AlphaTarget() == 0 {
		t.Error("alpha target should stay raised while another drag is active")
	}
	if !s.Dragging("C") || s.Dragging("A") {
		t.Error("unexpected drag state")
	}
	_ = s.EndDrag("C")
	if s.AlphaTarget() != 0 {
		t.Error("alpha target should drop once the last drag ends")
	}
}

func TestDragErrors(t *testing.T) {
	s := newSim(t, newGraph(t, edge{src: "A", dst: "B"}), DefaultOptions())

	if err := s.StartDrag("Z", domain.Vector{}); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if err := s.Unpin("Z"); !errors.Is(err, domain.ErrNodeNotFound) {
		t.Errorf("expected ErrNodeNotFound, got %v", err)
	}
	if err := s.MoveDrag("A", domain.Vector{X: 1}); !errors.Is(err, ErrNotDragging) {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}
	if err := s.EndDrag("A"); !errors.Is(err, ErrNotDragging) {
		t.Errorf("expected ErrNotDragging, got %v", err)
	}

	_ = s.StartDrag("A", domain.Vector{})
	if err := s.MoveDrag("A", domain.Vector{X: math.Inf(1)}); !domain.IsInputError(err) {
		t.Errorf("expected input error for non-finite pointer, got %v", err)
	}
}

func TestActiveNode(t *testing.T) {
	s := newSim(t, newGraph(t, edge{src: "A", dst: "B"}, edge{src: "B", dst: "C"}), DefaultOptions())

	if err := s.SetActiveNode("C"); err != nil {
		t.Fatalf("SetActiveNode failed: %v", err)
	}
	if id, ok := s.ActiveNode(); !ok || id != "C" {
		t.Errorf("expected active C, got %q", id)
	}
	if s.NodeVisible(0) || !s.NodeVisible(1) || !s.NodeVisible(2) {
		t.Error("expected B and C visible only")
	}
	if err := s.SetMaxDegree(-1); !domain.IsConfigurationError(err) {
		t.Errorf("expected configuration error, got %v", err)
	}
	if err := s.SetMaxDegree(2); err != nil || s.MaxDegree() != 2 {
		t.Fatalf("SetMaxDegree failed: %v", err)
	}
	if !s.NodeVisible(0) || !s.LinkVisible(0) {
		t.Error("expected A reachable in two hops")
	}
	s.ClearActiveNode()
	if _, ok := s.ActiveNode(); ok {
		t.Error("expected no active node")
	}

	// Visibility never touches kinematics
	before := s.Freeze()
	_ = s.SetActiveNode("A")
	for i, p := range s.Freeze() {
		if p != before[i] {
			t.Error("visibility change moved a node")
		}
	}
}
