package domain

import (
	"testing"
)

func TestNewNodePosition(t *testing.T) {
	t.Run("creates position with defaults", func(t *testing.T) {
		pos := NewNodePosition("node1", 100.5, 200.5)

		if pos.NodeID != "node1" {
			t.Errorf("expected NodeID 'node1', got %s", pos.NodeID)
		}
		if pos.X != 100.5 || pos.Y != 200.5 {
			t.Errorf("expected (100.5, 200.5), got (%f, %f)", pos.X, pos.Y)
		}
		if pos.Pinned || pos.FX != nil || pos.FY != nil {
			t.Error("expected an unpinned position by default")
		}
	})
}

func TestPositionOf(t *testing.T) {
	t.Run("captures free node", func(t *testing.T) {
		n := &Node{ID: "a", X: 3, Y: 4, VX: 1}
		pos := PositionOf(n)
		if pos.NodeID != "a" || pos.X != 3 || pos.Y != 4 || pos.Pinned {
			t.Errorf("unexpected record %+v", pos)
		}
	})

	t.Run("copies fixed coordinates", func(t *testing.T) {
		n := &Node{ID: "a"}
		n.Pin(5, 6)
		pos := PositionOf(n)
		if !pos.Pinned || *pos.FX != 5 || *pos.FY != 6 {
			t.Errorf("unexpected record %+v", pos)
		}

		// The record must not alias the live node
		n.Pin(9, 9)
		if *pos.FX != 5 {
			t.Error("record changed with the node")
		}
	})
}

func TestPinnedSpec(t *testing.T) {
	t.Run("free record pins at its position", func(t *testing.T) {
		spec := NewNodePosition("a", 1, 2).PinnedSpec()
		if spec.ID != "a" || *spec.FX != 1 || *spec.FY != 2 || *spec.X != 1 || *spec.Y != 2 {
			t.Errorf("unexpected spec %+v", spec)
		}
	})

	t.Run("fixed coordinates win", func(t *testing.T) {
		fx, fy := 10.0, 20.0
		pos := NodePosition{NodeID: "a", X: 1, Y: 2, FX: &fx, FY: &fy, Pinned: true}
		spec := pos.PinnedSpec()
		if *spec.FX != 10 || *spec.FY != 20 {
			t.Errorf("expected pin at (10, 20), got (%v, %v)", *spec.FX, *spec.FY)
		}
	})
}

func TestNewFrame(t *testing.T) {
	fragment := NewGraphFragment()
	fragment.AddNode(NodeSpec{ID: "a", X: ptr(0), Y: ptr(0)})
	fragment.AddNode(NodeSpec{ID: "b", X: ptr(3), Y: ptr(4), FX: ptr(3), FY: ptr(4)})
	fragment.AddEdge("a", "b")
	g, err := NewGraph(fragment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame := NewFrame(g, 7, 0.5, false)
	if frame.Tick != 7 || frame.Alpha != 0.5 || frame.Settled {
		t.Errorf("unexpected header %+v", frame)
	}
	if len(frame.Nodes) != 2 || frame.Nodes[0].Fixed || !frame.Nodes[1].Fixed {
		t.Errorf("unexpected nodes %+v", frame.Nodes)
	}
	link := frame.Links[0]
	if link.X1 != 0 || link.Y1 != 0 || link.X2 != 3 || link.Y2 != 4 {
		t.Errorf("unexpected link coordinates %+v", link)
	}
	if link.SourceID != "a" || link.TargetID != "b" {
		t.Errorf("unexpected link ids %+v", link)
	}
}
