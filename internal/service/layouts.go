package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/google/uuid"

	"forcegraph/internal/domain"
	"forcegraph/internal/repository"
	"forcegraph/internal/simulation"
)

// ErrNoRepository is returned by layout operations when no repository is configured
var ErrNoRepository = errors.New("layout storage is not configured")

// Freeze stores the current positions and links of a session as a new layout
func (s *LayoutService) Freeze(ctx context.Context, id, name string) (*domain.LayoutSummary, error) {
	if s.layouts == nil {
		return nil, ErrNoRepository
	}

	session, err := s.Session(id)
	if err != nil {
		return nil, err
	}

	layout := &domain.Layout{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if layout.Name == "" {
		layout.Name = "session " + id
	}

	session.with(func(sim *simulation.Simulation) error {
		layout.Tick = sim.Tick()
		layout.Positions = sim.Freeze()
		layout.Links = sim.Graph().LinkSpecs()
		return nil
	})

	err = s.layouts.SaveLayout(ctx, layout)
	s.metrics.RecordLayoutOperation("freeze", err)
	if err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	summary := layout.Summary()
	s.eventBus.Publish(Event{Type: EventLayoutSaved, SessionID: id, Payload: summary})
	log.Printf("Session %s frozen as layout %s (%d nodes)", id, layout.ID, summary.NodeCount)
	return &summary, nil
}

// Thaw hosts a new session rebuilt from a stored layout. The session starts
// settled with every node pinned where it was frozen.
func (s *LayoutService) Thaw(ctx context.Context, layoutID string) (SessionInfo, domain.Frame, error) {
	layout, err := s.GetLayout(ctx, layoutID)
	if err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}
	if err := s.checkCapacity(); err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	sim, err := simulation.Thaw(layout.Positions, layout.Links, s.cfg.Layout)
	s.metrics.RecordLayoutOperation("thaw", err)
	if err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	session, err := s.register(sim)
	if err != nil {
		return SessionInfo{}, domain.Frame{}, err
	}

	log.Printf("Layout %s thawed into session %s", layoutID, session.ID())
	return session.Info(), session.Frame(), nil
}

// GetLayout retrieves a stored layout. Unknown ids return repository.ErrLayoutNotFound.
func (s *LayoutService) GetLayout(ctx context.Context, id string) (*domain.Layout, error) {
	if s.layouts == nil {
		return nil, ErrNoRepository
	}
	layout, err := s.layouts.GetLayout(ctx, id)
	if err != nil {
		return nil, err
	}
	if layout == nil {
		return nil, fmt.Errorf("layout %s: %w", id, repository.ErrLayoutNotFound)
	}
	return layout, nil
}

// ListLayouts returns summaries of all stored layouts
func (s *LayoutService) ListLayouts(ctx context.Context) ([]domain.LayoutSummary, error) {
	if s.layouts == nil {
		return nil, ErrNoRepository
	}
	return s.layouts.ListLayouts(ctx)
}

// DeleteLayout removes a stored layout
func (s *LayoutService) DeleteLayout(ctx context.Context, id string) error {
	if s.layouts == nil {
		return ErrNoRepository
	}
	err := s.layouts.DeleteLayout(ctx, id)
	s.metrics.RecordLayoutOperation("delete", err)
	if err != nil {
		return err
	}
	s.eventBus.Publish(Event{Type: EventLayoutDeleted, Payload: map[string]string{"layout_id": id}})
	return nil
}

// ExportLayout writes a stored layout in the named format
func (s *LayoutService) ExportLayout(ctx context.Context, id, format string, w io.Writer) error {
	writer, err := s.codecs.Writer(format)
	if err != nil {
		return domain.NewInputError("", "%v", err)
	}
	layout, err := s.GetLayout(ctx, id)
	if err != nil {
		return err
	}
	return writer.WriteLayout(layout, w)
}
