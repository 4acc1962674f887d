package simulation

// SetActiveNode makes id the active node of the visibility filter
func (s *Simulation) SetActiveNode(id string) error {
	return s.filter.SetActive(id)
}

// ClearActiveNode removes the active node; everything becomes visible
func (s *Simulation) ClearActiveNode() {
	s.filter.ClearActive()
}

// ActiveNode returns the active node id, if any
func (s *Simulation) ActiveNode() (string, bool) {
	return s.filter.Active()
}

// SetMaxDegree changes the hop bound of the visibility filter
func (s *Simulation) SetMaxDegree(d int) error {
	return s.filter.SetMaxDegree(d)
}

// MaxDegree returns the hop bound of the visibility filter
func (s *Simulation) MaxDegree() int {
	return s.filter.MaxDegree()
}

// NodeVisible reports visibility of the node with the given arena index
func (s *Simulation) NodeVisible(i int) bool {
	return s.filter.NodeVisible(i)
}

// LinkVisible reports visibility of the link with the given index
func (s *Simulation) LinkVisible(i int) bool {
	return s.filter.LinkVisible(i)
}
