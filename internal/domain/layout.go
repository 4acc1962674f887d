package domain

import "time"

// Layout is a frozen simulation: the freeze record of every node plus the
// links needed to rebuild the same topology on thaw.
type Layout struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name" yaml:"name"`
	Tick      int            `json:"tick" yaml:"tick"`
	Positions []NodePosition `json:"positions" yaml:"positions"`
	Links     []LinkSpec     `json:"links" yaml:"links"`
	CreatedAt time.Time      `json:"created_at" yaml:"created_at"`
}

// LayoutSummary is a Layout without positions and links
type LayoutSummary struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Tick      int       `json:"tick" yaml:"tick"`
	NodeCount int       `json:"node_count" yaml:"node_count"`
	LinkCount int       `json:"link_count" yaml:"link_count"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Summary returns the summary of l
func (l *Layout) Summary() LayoutSummary {
	return LayoutSummary{
		ID:        l.ID,
		Name:      l.Name,
		Tick:      l.Tick,
		NodeCount: len(l.Positions),
		LinkCount: len(l.Links),
		CreatedAt: l.CreatedAt,
	}
}
