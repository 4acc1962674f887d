package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"forcegraph/internal/codec"
	"forcegraph/internal/domain"
	"forcegraph/internal/metrics"
	"forcegraph/internal/repository"
	"forcegraph/internal/simulation"
)

var (
	// ErrSessionNotFound is returned for an unknown session id
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLimit is returned when max_sessions sessions are already live
	ErrSessionLimit = errors.New("session limit reached")
)

// Config holds the settings a LayoutService applies to every session
type Config struct {
	Layout           simulation.Options
	MaxSessions      int
	BatchTicks       int
	BatchMaxDuration time.Duration
}

// DefaultConfig returns the service defaults
func DefaultConfig() Config {
	return Config{
		Layout:           simulation.DefaultOptions(),
		MaxSessions:      64,
		BatchTicks:       300,
		BatchMaxDuration: 10 * time.Second,
	}
}

// LayoutService hosts independent layout sessions
type LayoutService struct {
	cfg      Config
	layouts  repository.LayoutRepository
	eventBus *EventBus
	metrics  *metrics.Registry
	codecs   *codec.Registry

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewLayoutService creates a new layout service. layouts may be nil, in which
// case layout operations report ErrNoRepository.
func NewLayoutService(cfg Config, layouts repository.LayoutRepository, eventBus *EventBus, reg *metrics.Registry) *LayoutService {
	if eventBus == nil {
		eventBus = NewEventBus()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}
	return &LayoutService{
		cfg:      cfg,
		layouts:  layouts,
		eventBus: eventBus,
		metrics:  reg,
		codecs:   codec.NewRegistry(),
		sessions: make(map[string]*Session),
	}
}

// Config returns the service configuration
func (s *LayoutService) Config() Config {
	return s.cfg
}

// ParseGraph decodes a graph fragment in the named format (csv, json, yaml)
func (s *LayoutService) ParseGraph(format string, r io.Reader) (*domain.GraphFragment, error) {
	importer, err := s.codecs.Importer(format)
	if err != nil {
		return nil, domain.NewInputError("", "%v", err)
	}
	return importer.Parse(r)
}

// CreateSession builds a simulation from fragment and hosts it. With
// presettle the layout is run synchronously for the batch tick budget;
// otherwise the session starts in continuous mode.
func (s *LayoutService) CreateSession(ctx context.Context, fragment *domain.GraphFragment, presettle bool) (SessionInfo, domain.Frame, error) {
	if err := s.checkCapacity(); err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	g, err := domain.NewGraph(fragment)
	if err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	sim, err := simulation.New(g, s.cfg.Layout)
	if err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	if presettle {
		if _, err := s.settle(ctx, sim, s.cfg.BatchTicks); err != nil {
			return SessionInfo{}, domain.Frame{}, err
		}
	} else {
		sim.Start()
	}

	session, err := s.register(sim)
	if err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	info := session.Info()
	log.Printf("Session %s created (%d nodes, %d links)", info.ID, info.Nodes, info.Links)
	return info, session.Frame(), nil
}

// DeleteSession stops and removes a session
func (s *LayoutService) DeleteSession(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	count := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	s.metrics.SetActiveSessions(count)
	s.eventBus.Publish(Event{Type: EventSessionDeleted, SessionID: id})
	log.Printf("Session %s deleted", id)
	return nil
}

// ListSessions returns a summary of every session, oldest first
func (s *LayoutService) ListSessions() []SessionInfo {
	sessions := s.snapshot()
	infos := make([]SessionInfo, 0, len(sessions))
	for _, session := range sessions {
		infos = append(infos, session.Info())
	}
	sort.Slice(infos, func(i, j int) bool {
		if infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].ID < infos[j].ID
		}
		return infos[i].CreatedAt.Before(infos[j].CreatedAt)
	})
	return infos
}

// Session looks up a session by id
func (s *LayoutService) Session(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Frame returns the current frame of a session
func (s *LayoutService) Frame(id string) (domain.Frame, error) {
	session, err := s.Session(id)
	if err != nil {
		return domain.Frame{}, err
	}
	return session.Frame(), nil
}

// Step advances a session by exactly one tick, ignoring Start/Stop
func (s *LayoutService) Step(id string) (domain.Frame, error) {
	return s.control(id, func(sim *simulation.Simulation) error {
		start := time.Now()
		ticked, err := sim.Step()
		if err != nil {
			return err
		}
		if ticked {
			s.metrics.RecordBatch(1, time.Since(start))
		}
		return nil
	})
}

// Run executes up to ticks ticks synchronously, capped by the batch duration
func (s *LayoutService) Run(ctx context.Context, id string, ticks int) (domain.Frame, error) {
	return s.control(id, func(sim *simulation.Simulation) error {
		_, err := s.settle(ctx, sim, ticks)
		return err
	})
}

// Start resumes continuous mode for a session
func (s *LayoutService) Start(id string) error {
	_, err := s.control(id, func(sim *simulation.Simulation) error {
		sim.Start()
		return nil
	})
	return err
}

// Stop pauses continuous mode for a session
func (s *LayoutService) Stop(id string) error {
	_, err := s.control(id, func(sim *simulation.Simulation) error {
		sim.Stop()
		return nil
	})
	return err
}

// StartDrag pins nodeID and reheats the session
func (s *LayoutService) StartDrag(id, nodeID string, pointer domain.Vector) error {
	_, err := s.control(id, func(sim *simulation.Simulation) error {
		return sim.StartDrag(nodeID, pointer)
	})
	if err == nil {
		s.metrics.RecordDrag("start")
	}
	return err
}

// MoveDrag moves a dragged node to the pointer
func (s *LayoutService) MoveDrag(id, nodeID string, pointer domain.Vector) error {
	_, err := s.control(id, func(sim *simulation.Simulation) error {
		return sim.MoveDrag(nodeID, pointer)
	})
	if err == nil {
		s.metrics.RecordDrag("move")
	}
	return err
}

// EndDrag finishes a drag gesture
func (s *LayoutService) EndDrag(id, nodeID string) error {
	_, err := s.control(id, func(sim *simulation.Simulation) error {
		return sim.EndDrag(nodeID)
	})
	if err == nil {
		s.metrics.RecordDrag("end")
	}
	return err
}

// Unpin releases a node's fixed position
func (s *LayoutService) Unpin(id, nodeID string) error {
	_, err := s.control(id, func(sim *simulation.Simulation) error {
		return sim.Unpin(nodeID)
	})
	return err
}

// SetActiveNode sets the visibility focus. A nil nodeID clears it.
func (s *LayoutService) SetActiveNode(id string, nodeID *string) (domain.Frame, error) {
	return s.control(id, func(sim *simulation.Simulation) error {
		if nodeID == nil {
			sim.ClearActiveNode()
			return nil
		}
		return sim.SetActiveNode(*nodeID)
	})
}

// SetMaxDegree changes the visibility hop bound of a session
func (s *LayoutService) SetMaxDegree(id string, d int) (domain.Frame, error) {
	return s.control(id, func(sim *simulation.Simulation) error {
		return sim.SetMaxDegree(d)
	})
}

// ExportFrame writes the current frame of a session in the named format
func (s *LayoutService) ExportFrame(id, format string, w io.Writer) error {
	writer, err := s.codecs.Writer(format)
	if err != nil {
		return domain.NewInputError("", "%v", err)
	}
	frame, err := s.Frame(id)
	if err != nil {
		return err
	}
	return writer.WriteFrame(frame, w)
}

// AdvanceAll ticks every running session once and publishes the new frames.
// It returns the number of sessions that ticked.
func (s *LayoutService) AdvanceAll() int {
	ticked := 0
	for _, session := range s.snapshot() {
		var frame domain.Frame
		advanced := false

		err := session.with(func(sim *simulation.Simulation) error {
			start := time.Now()
			ok, err := sim.Advance()
			if err != nil {
				sim.Stop()
				return err
			}
			if ok {
				s.metrics.RecordTick(time.Since(start))
				frame = sim.Snapshot()
				advanced = true
			}
			return nil
		})
		if err != nil {
			log.Printf("Session %s stopped after failed tick: %v", session.ID(), err)
			continue
		}

		if advanced {
			ticked++
			s.eventBus.Publish(Event{Type: EventFrame, SessionID: session.ID(), Payload: frame})
		}
	}
	return ticked
}

// control runs fn under the session lock and returns the resulting frame
func (s *LayoutService) control(id string, fn func(sim *simulation.Simulation) error) (domain.Frame, error) {
	session, err := s.Session(id)
	if err != nil {
		return domain.Frame{}, err
	}

	var frame domain.Frame
	err = session.with(func(sim *simulation.Simulation) error {
		if err := fn(sim); err != nil {
			return err
		}
		frame = sim.Snapshot()
		return nil
	})
	return frame, err
}

// settle runs sim synchronously for up to ticks ticks. Hitting the batch
// duration cap ends the run early without error.
func (s *LayoutService) settle(ctx context.Context, sim *simulation.Simulation, ticks int) (int, error) {
	if s.cfg.BatchMaxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.BatchMaxDuration)
		defer cancel()
	}

	start := time.Now()
	ran, err := sim.RunFor(ctx, ticks)
	s.metrics.RecordBatch(ran, time.Since(start))

	if errors.Is(err, context.DeadlineExceeded) {
		log.Printf("Batch settle capped at %s after %d ticks", s.cfg.BatchMaxDuration, ran)
		return ran, nil
	}
	return ran, err
}

// checkCapacity reports ErrSessionLimit when no more sessions may be created
func (s *LayoutService) checkCapacity() error {
	if s.cfg.MaxSessions <= 0 {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.sessions) >= s.cfg.MaxSessions {
		return fmt.Errorf("%w (%d)", ErrSessionLimit, s.cfg.MaxSessions)
	}
	return nil
}

// register hosts sim under a fresh session id
func (s *LayoutService) register(sim *simulation.Simulation) (*Session, error) {
	session := newSession(uuid.NewString(), sim)

	sim.OnEnd(func() {
		s.metrics.RecordSettle()
		s.eventBus.Publish(Event{Type: EventSettled, SessionID: session.id})
	})

	s.mu.Lock()
	if s.cfg.MaxSessions > 0 && len(s.sessions) >= s.cfg.MaxSessions {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w (%d)", ErrSessionLimit, s.cfg.MaxSessions)
	}
	s.sessions[session.id] = session
	count := len(s.sessions)
	s.mu.Unlock()

	s.metrics.SetActiveSessions(count)
	s.eventBus.Publish(Event{Type: EventSessionCreated, SessionID: session.id})
	return session, nil
}

// snapshot returns the live sessions without holding the service lock
func (s *LayoutService) snapshot() []*Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	return sessions
}
