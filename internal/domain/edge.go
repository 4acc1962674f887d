package domain

import (
	"crypto/sha256"
	"fmt"
)

// DefaultWeight is applied to links whose input omits a weight
const DefaultWeight = 1.0

// Link is an undirected edge between two nodes, stored by node index
type Link struct {
	ID       string  `json:"id"`
	SourceID string  `json:"source_id"`
	TargetID string  `json:"target_id"`
	Source   int     `json:"-"`
	Target   int     `json:"-"`
	Weight   float64 `json:"weight"`
	Index    int     `json:"-"`
}

// Other returns the endpoint opposite node index i
func (l *Link) Other(i int) int {
	if l.Source == i {
		return l.Target
	}
	return l.Source
}

// GenerateLinkID creates a deterministic ID for a link based on its endpoints.
// The position index keeps parallel links distinct.
func GenerateLinkID(sourceID, targetID string, index int) string {
	// Normalize endpoints for consistent ID
	from, to := sourceID, targetID
	if from > to {
		from, to = to, from
	}

	key := fmt.Sprintf("%s-%s-%d", from, to, index)
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", hash[:8])
}
