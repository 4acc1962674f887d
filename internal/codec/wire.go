package codec

import "forcegraph/internal/domain"

// wireFragment is the tolerant on-disk shape of a graph. Links may be listed
// under "links" or "edges", and endpoints may be spelled source_id, sourceId
// or source (the d3 convention).
type wireFragment struct {
	Nodes []wireNode `json:"nodes" yaml:"nodes"`
	Links []wireLink `json:"links" yaml:"links"`
	Edges []wireLink `json:"edges" yaml:"edges"`
}

type wireNode struct {
	ID string   `json:"id" yaml:"id"`
	X  *float64 `json:"x" yaml:"x"`
	Y  *float64 `json:"y" yaml:"y"`
	FX *float64 `json:"fx" yaml:"fx"`
	FY *float64 `json:"fy" yaml:"fy"`
}

type wireLink struct {
	SourceID    string   `json:"source_id" yaml:"source_id"`
	TargetID    string   `json:"target_id" yaml:"target_id"`
	SourceCamel string   `json:"sourceId" yaml:"sourceId"`
	TargetCamel string   `json:"targetId" yaml:"targetId"`
	Source      string   `json:"source" yaml:"source"`
	Target      string   `json:"target" yaml:"target"`
	Weight      *float64 `json:"weight" yaml:"weight"`
}

func (w wireFragment) fragment() *domain.GraphFragment {
	fragment := domain.NewGraphFragment()
	for _, n := range w.Nodes {
		fragment.AddNode(domain.NodeSpec{ID: n.ID, X: n.X, Y: n.Y, FX: n.FX, FY: n.FY})
	}
	for _, links := range [][]wireLink{w.Links, w.Edges} {
		for _, l := range links {
			fragment.AddLink(domain.LinkSpec{
				SourceID: firstNonEmpty(l.SourceID, l.SourceCamel, l.Source),
				TargetID: firstNonEmpty(l.TargetID, l.TargetCamel, l.Target),
				Weight:   l.Weight,
			})
		}
	}
	return fragment
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
