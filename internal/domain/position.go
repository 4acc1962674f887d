package domain

// NodePosition is the freeze/thaw record for one node: its position and,
// when pinned, its fixed coordinates.
type NodePosition struct {
	NodeID string   `json:"node_id" yaml:"node_id"`
	X      float64  `json:"x" yaml:"x"`
	Y      float64  `json:"y" yaml:"y"`
	FX     *float64 `json:"fx,omitempty" yaml:"fx,omitempty"`
	FY     *float64 `json:"fy,omitempty" yaml:"fy,omitempty"`
	Pinned bool     `json:"pinned" yaml:"pinned"`
}

// NewNodePosition creates a new unpinned node position
func NewNodePosition(nodeID string, x, y float64) *NodePosition {
	return &NodePosition{
		NodeID: nodeID,
		X:      x,
		Y:      y,
		Pinned: false,
	}
}

// PositionOf captures the current freeze record of a node
func PositionOf(n *Node) NodePosition {
	pos := NodePosition{
		NodeID: n.ID,
		X:      n.X,
		Y:      n.Y,
		Pinned: n.Fixed(),
	}
	if n.FX != nil {
		fx := *n.FX
		pos.FX = &fx
	}
	if n.FY != nil {
		fy := *n.FY
		pos.FY = &fy
	}
	return pos
}

// PinnedSpec converts the record into a NodeSpec pinned at its position.
// Recorded fixed coordinates win over the free position.
func (p NodePosition) PinnedSpec() NodeSpec {
	fx, fy := p.X, p.Y
	if p.FX != nil {
		fx = *p.FX
	}
	if p.FY != nil {
		fy = *p.FY
	}
	return NodeSpec{ID: p.NodeID, X: &fx, Y: &fy, FX: &fx, FY: &fy}
}
