package repository

import (
	"context"
	"errors"

	"forcegraph/internal/domain"
)

// ErrLayoutNotFound is returned when deleting a layout that does not exist
var ErrLayoutNotFound = errors.New("layout not found")

// LayoutRepository defines the interface for frozen layout storage
type LayoutRepository interface {
	// Read operations
	GetLayout(ctx context.Context, id string) (*domain.Layout, error)
	ListLayouts(ctx context.Context) ([]domain.LayoutSummary, error)

	// Write operations
	SaveLayout(ctx context.Context, layout *domain.Layout) error
	DeleteLayout(ctx context.Context, id string) error

	// Close releases resources
	Close() error
}
