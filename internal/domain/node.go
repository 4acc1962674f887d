package domain

// Node is a graph vertex with identity and 2D kinematic state.
//
// FX and FY, when set, override physics on that axis: the integrator forces the
// position to the fixed value and zeroes the velocity. Only the drag/pin
// controller and freeze/thaw set them.
type Node struct {
	ID     string   `json:"id"`
	Index  int      `json:"-"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	VX     float64  `json:"vx"`
	VY     float64  `json:"vy"`
	FX     *float64 `json:"fx,omitempty"`
	FY     *float64 `json:"fy,omitempty"`
	Degree int      `json:"degree"`

	// Positioned is true when the input supplied an initial position
	Positioned bool `json:"-"`
}

// Position returns the current position
func (n *Node) Position() Vector {
	return Vector{X: n.X, Y: n.Y}
}

// Velocity returns the current velocity
func (n *Node) Velocity() Vector {
	return Vector{X: n.VX, Y: n.VY}
}

// Fixed reports whether either axis is pinned
func (n *Node) Fixed() bool {
	return n.FX != nil || n.FY != nil
}

// Pin fixes the node at (x, y). Position and velocity are updated immediately
// so the pinned invariant holds between ticks as well as after them.
func (n *Node) Pin(x, y float64) {
	fx, fy := x, y
	n.FX = &fx
	n.FY = &fy
	n.X, n.Y = x, y
	n.VX, n.VY = 0, 0
}

// Unpin clears both fixed coordinates
func (n *Node) Unpin() {
	n.FX = nil
	n.FY = nil
}
