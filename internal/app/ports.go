package app

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/filter"
	"github.com/alexanderramin/plantmap/internal/grid"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// ErrForbidden is returned when an engineer attempts an administrator edit.
var ErrForbidden = errors.New("only administrators can change zones")

type ZoneUseCase interface {
	// Effective returns the resolved zone set keyed by name.
	Effective(ctx context.Context) (map[string]domain.Zone, error)
	Manageable(ctx context.Context) ([]zone.ManagedZone, error)
	CreateZone(ctx context.Context, role domain.Role, z domain.Zone) (zone.ManagedZone, error)
	EditZone(ctx context.Context, role domain.Role, target zone.Target, z domain.Zone) error
	DeleteZone(ctx context.Context, role domain.Role, target zone.Target) error
}

// CreateProjectRequest carries the project form. Cells is the deduplicated
// selection; an empty selection is rejected.
type CreateProjectRequest struct {
	Title        string
	Engineer     string
	Type         domain.ProjectType
	DurationDays int
	Description  string
	Priority     domain.Priority
	ZoneName     string
	ViewID       string
	Cells        []domain.Cell
}

type ProjectUseCase interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*domain.Project, error)
}

// CellView is everything the renderer needs for one grid cell. Occupants
// are already filtered; Color is empty for a transparent cell.
type CellView struct {
	Cell      domain.Cell
	Occupants []*domain.Project
	Color     string
	Count     int
	Selected  bool
}

type BoardUseCase interface {
	OccupantsOf(ctx context.Context, viewID string, x, y int) ([]*domain.Project, error)
	Cell(ctx context.Context, viewID string, c domain.Cell, criteria filter.Criteria, sel grid.Selection) (CellView, error)
	// Grid returns GridHeight rows of GridWidth cells.
	Grid(ctx context.Context, viewID string, criteria filter.Criteria, sel grid.Selection) ([][]CellView, error)
	Projects(ctx context.Context) ([]*domain.Project, error)
}

// Notifier receives one message per successful zone or project mutation.
type Notifier interface {
	Push(message string, ts time.Time) domain.Notification
}

// Clock returns the current time. Services default to time.Now.
type Clock func() time.Time
