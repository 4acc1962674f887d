package domain

// GraphFragment is raw graph input: an optional explicit node list plus links.
// When Nodes is empty the node set is the union of link endpoints.
type GraphFragment struct {
	Nodes []NodeSpec `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Links []LinkSpec `json:"links" yaml:"links"`
}

// NodeSpec describes one input node. Coordinates are optional.
type NodeSpec struct {
	ID string   `json:"id" yaml:"id"`
	X  *float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y  *float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FX *float64 `json:"fx,omitempty" yaml:"fx,omitempty"`
	FY *float64 `json:"fy,omitempty" yaml:"fy,omitempty"`
}

// LinkSpec describes one input edge. A nil Weight defaults to DefaultWeight.
type LinkSpec struct {
	SourceID string   `json:"source_id" yaml:"source_id"`
	TargetID string   `json:"target_id" yaml:"target_id"`
	Weight   *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// NewGraphFragment creates an empty graph fragment
func NewGraphFragment() *GraphFragment {
	return &GraphFragment{
		Nodes: make([]NodeSpec, 0),
		Links: make([]LinkSpec, 0),
	}
}

// AddNode adds a node to the fragment
func (g *GraphFragment) AddNode(node NodeSpec) {
	g.Nodes = append(g.Nodes, node)
}

// AddLink adds a link to the fragment
func (g *GraphFragment) AddLink(link LinkSpec) {
	g.Links = append(g.Links, link)
}

// AddEdge appends an unweighted link between two ids
func (g *GraphFragment) AddEdge(sourceID, targetID string) {
	g.Links = append(g.Links, LinkSpec{SourceID: sourceID, TargetID: targetID})
}

// AddWeightedEdge appends a weighted link between two ids
func (g *GraphFragment) AddWeightedEdge(sourceID, targetID string, weight float64) {
	w := weight
	g.Links = append(g.Links, LinkSpec{SourceID: sourceID, TargetID: targetID, Weight: &w})
}
