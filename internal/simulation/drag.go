package simulation

import (
	"errors"
	"math"

	"forcegraph/internal/domain"
)

// ErrNotDragging is returned by MoveDrag and EndDrag for a node with no drag in progress
var ErrNotDragging = errors.New("node is not being dragged")

// StartDrag pins id at its current position, raises the alpha target and
// resumes continuous mode. The pointer only matters from MoveDrag on.
func (s *Simulation) StartDrag(id string, pointer domain.Vector) error {
	i, n, err := s.resolve(id)
	if err != nil {
		return err
	}
	if err := checkPointer(id, pointer); err != nil {
		return err
	}

	if len(s.dragging) == 0 {
		if err := s.cooling.SetTarget(s.opts.AlphaTargetOnDrag); err != nil {
			return err
		}
	}
	s.dragging[i] = struct{}{}
	n.Pin(n.X, n.Y)
	s.running = true
	return nil
}

// MoveDrag moves the fixed position of a dragged node to the pointer
func (s *Simulation) MoveDrag(id string, pointer domain.Vector) error {
	i, n, err := s.resolve(id)
	if err != nil {
		return err
	}
	if _, ok := s.dragging[i]; !ok {
		return ErrNotDragging
	}
	if err := checkPointer(id, pointer); err != nil {
		return err
	}
	n.Pin(pointer.X, pointer.Y)
	return nil
}

// EndDrag finishes a drag. Once no drag remains the alpha target drops to 0
// and cooling resumes. The configured PinPolicy decides whether the node keeps
// its fixed position.
func (s *Simulation) EndDrag(id string) error {
	i, n, err := s.resolve(id)
	if err != nil {
		return err
	}
	if _, ok := s.dragging[i]; !ok {
		return ErrNotDragging
	}

	delete(s.dragging, i)
	if len(s.dragging) == 0 {
		s.cooling.target = 0
	}
	if s.opts.DragPinPolicy == PinRelease {
		n.Unpin()
	}
	return nil
}

// Dragging reports whether id has a drag in progress
func (s *Simulation) Dragging(id string) bool {
	i, ok := s.graph.Lookup(id)
	if !ok {
		return false
	}
	_, ok = s.dragging[i]
	return ok
}

// Unpin clears the fixed position of id regardless of PinPolicy
func (s *Simulation) Unpin(id string) error {
	_, n, err := s.resolve(id)
	if err != nil {
		return err
	}
	n.Unpin()
	return nil
}

func (s *Simulation) resolve(id string) (int, *domain.Node, error) {
	i, ok := s.graph.Lookup(id)
	if !ok {
		return 0, nil, domain.ErrNodeNotFound
	}
	return i, s.graph.Node(i), nil
}

func checkPointer(id string, p domain.Vector) error {
	if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
		return domain.NewInputError(id, "pointer (%v, %v) is not finite", p.X, p.Y)
	}
	return nil
}
