package domain

import (
	"math"
	"testing"
)

func TestNodePin(t *testing.T) {
	t.Run("pin sets fixed position and zeroes velocity", func(t *testing.T) {
		n := &Node{ID: "a", X: 1, Y: 2, VX: 3, VY: 4}
		n.Pin(10, 20)

		if !n.Fixed() {
			t.Fatal("expected node to be fixed")
		}
		if *n.FX != 10 || *n.FY != 20 {
			t.Errorf("expected fixed (10, 20), got (%v, %v)", *n.FX, *n.FY)
		}
		if n.X != 10 || n.Y != 20 {
			t.Errorf("expected position (10, 20), got (%v, %v)", n.X, n.Y)
		}
		if n.VX != 0 || n.VY != 0 {
			t.Errorf("expected zero velocity, got (%v, %v)", n.VX, n.VY)
		}
	})

	t.Run("unpin keeps position", func(t *testing.T) {
		n := &Node{ID: "a"}
		n.Pin(7, 8)
		n.Unpin()

		if n.Fixed() {
			t.Error("expected node to be free")
		}
		if n.X != 7 || n.Y != 8 {
			t.Errorf("expected position kept at (7, 8), got (%v, %v)", n.X, n.Y)
		}
	})

	t.Run("one fixed axis counts as fixed", func(t *testing.T) {
		fx := 1.0
		n := &Node{ID: "a", FX: &fx}
		if !n.Fixed() {
			t.Error("expected node to be fixed")
		}
	})
}

func TestVector(t *testing.T) {
	a := Vector{X: 1, Y: 2}
	b := Vector{X: 4, Y: 6}

	if got := b.Sub(a); got != (Vector{X: 3, Y: 4}) {
		t.Errorf("unexpected difference %v", got)
	}
	if got := a.Add(b).Scale(2); got != (Vector{X: 10, Y: 16}) {
		t.Errorf("unexpected sum %v", got)
	}
	if d := Distance(a, b); math.Abs(d-5) > 1e-12 {
		t.Errorf("expected distance 5, got %v", d)
	}
}
