package service

import (
	"sync"
	"time"

	"forcegraph/internal/domain"
	"forcegraph/internal/simulation"
)

// SessionInfo summarizes a live session
type SessionInfo struct {
	ID        string    `json:"id"`
	Tick      int       `json:"tick"`
	Alpha     float64   `json:"alpha"`
	Settled   bool      `json:"settled"`
	Running   bool      `json:"running"`
	Nodes     int       `json:"nodes"`
	Links     int       `json:"links"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is one hosted simulation. All access goes through its mutex.
type Session struct {
	id        string
	createdAt time.Time

	mu  sync.Mutex
	sim *simulation.Simulation
}

func newSession(id string, sim *simulation.Simulation) *Session {
	return &Session{
		id:        id,
		createdAt: time.Now().UTC(),
		sim:       sim,
	}
}

// ID returns the session id
func (s *Session) ID() string {
	return s.id
}

// with runs fn while holding the session lock
func (s *Session) with(fn func(sim *simulation.Simulation) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.sim)
}

// Info returns a point-in-time summary
func (s *Session) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infoLocked()
}

func (s *Session) infoLocked() SessionInfo {
	return SessionInfo{
		ID:        s.id,
		Tick:      s.sim.Tick(),
		Alpha:     s.sim.Alpha(),
		Settled:   s.sim.Settled(),
		Running:   s.sim.Running(),
		Nodes:     s.sim.Graph().Len(),
		Links:     len(s.sim.Graph().Links()),
		CreatedAt: s.createdAt,
	}
}

// Frame returns the current frame
func (s *Session) Frame() domain.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sim.Snapshot()
}
