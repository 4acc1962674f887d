package domain

// Frame is the per-tick snapshot handed to a renderer
type Frame struct {
	Tick           int          `json:"tick" yaml:"tick"`
	Alpha          float64      `json:"alpha" yaml:"alpha"`
	Settled        bool         `json:"settled" yaml:"settled"`
	Nodes          []NodeState  `json:"nodes" yaml:"nodes"`
	Links          []LinkState  `json:"links" yaml:"links"`
	NodeVisibility []Visibility `json:"node_visibility" yaml:"node_visibility"`
	LinkVisibility []Visibility `json:"link_visibility" yaml:"link_visibility"`
}

// NodeState is one node as drawn
type NodeState struct {
	ID     string  `json:"id" yaml:"id"`
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Fixed  bool    `json:"fixed" yaml:"fixed"`
	Degree int     `json:"degree" yaml:"degree"`
	Radius float64 `json:"radius" yaml:"radius"`
}

// LinkState is one link as drawn, with resolved endpoint coordinates
type LinkState struct {
	ID       string  `json:"id" yaml:"id"`
	SourceID string  `json:"source_id" yaml:"source_id"`
	TargetID string  `json:"target_id" yaml:"target_id"`
	X1       float64 `json:"x1" yaml:"x1"`
	Y1       float64 `json:"y1" yaml:"y1"`
	X2       float64 `json:"x2" yaml:"x2"`
	Y2       float64 `json:"y2" yaml:"y2"`
}

// Visibility is the visibility filter verdict for one node or link
type Visibility struct {
	ID      string `json:"id" yaml:"id"`
	Visible bool   `json:"visible" yaml:"visible"`
}

// Node radius range used by Frame, matching the degree scale renderers expect
const (
	MinNodeRadius = 5.0
	MaxNodeRadius = 15.0
)

// NewFrame snapshots positions of every node and link in g.
// Visibility is filled in by the caller.
func NewFrame(g *Graph, tick int, alpha float64, settled bool) Frame {
	frame := Frame{
		Tick:    tick,
		Alpha:   alpha,
		Settled: settled,
		Nodes:   make([]NodeState, 0, g.Len()),
		Links:   make([]LinkState, 0, len(g.Links())),
	}

	nodes := g.Nodes()
	for i := range nodes {
		n := &nodes[i]
		frame.Nodes = append(frame.Nodes, NodeState{
			ID:     n.ID,
			X:      n.X,
			Y:      n.Y,
			Fixed:  n.Fixed(),
			Degree: n.Degree,
			Radius: g.Radius(i, MinNodeRadius, MaxNodeRadius),
		})
	}

	for _, l := range g.Links() {
		src, dst := &nodes[l.Source], &nodes[l.Target]
		frame.Links = append(frame.Links, LinkState{
			ID:       l.ID,
			SourceID: l.SourceID,
			TargetID: l.TargetID,
			X1:       src.X,
			Y1:       src.Y,
			X2:       dst.X,
			Y2:       dst.Y,
		})
	}

	return frame
}
