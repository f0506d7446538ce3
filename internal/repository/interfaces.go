package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// ErrNotFound is returned when a row looked up by key does not exist.
var ErrNotFound = errors.New("not found")

// ProjectRepo owns the project table. Cells are written separately through
// AssignmentRepo so a project and its cells can share one transaction.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	ListByView(ctx context.Context, viewID string) ([]*domain.Project, error)
}

// AssignmentRepo maps grid cells to the IDs of the projects occupying them.
type AssignmentRepo interface {
	Assign(ctx context.Context, projectID, viewID string, cells []domain.Cell) error
	OccupantIDs(ctx context.Context, viewID string, x, y int) ([]string, error)
	CellsOf(ctx context.Context, projectID string) ([]domain.Cell, error)
	Occupancy(ctx context.Context, viewID string) (map[domain.Cell][]string, error)
}

// OverlayRepo stores the administrator overlay log.
type OverlayRepo interface {
	Load(ctx context.Context) (zone.Log, error)
	Save(ctx context.Context, l zone.Log) error
}
