package testutil

import (
	"time"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the reference clock used by fixtures.
var FixedNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

// Project options
type ProjectOption func(*domain.Project)

func WithType(t domain.ProjectType) ProjectOption {
	return func(p *domain.Project) {
		p.Type = t
	}
}

func WithCells(cells ...domain.Cell) ProjectOption {
	return func(p *domain.Project) {
		p.Cells = cells
	}
}

func WithView(viewID, zoneName string) ProjectOption {
	return func(p *domain.Project) {
		p.ViewID = viewID
		p.ZoneName = zoneName
	}
}

func WithDuration(days int) ProjectOption {
	return func(p *domain.Project) {
		p.DurationDays = days
	}
}

func WithPriority(pr domain.Priority) ProjectOption {
	return func(p *domain.Project) {
		p.Priority = pr
	}
}

func WithEngineer(name string) ProjectOption {
	return func(p *domain.Project) {
		p.Engineer = name
	}
}

// WithStart schedules the project as if created at t.
func WithStart(t time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.CreatedAt = t
		p.Schedule(t)
	}
}

// NewTestProject returns a valid, scheduled maintenance project on one cell
// of the Assembly Line A grid.
func NewTestProject(title string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:           uuid.New().String(),
		Title:        title,
		Engineer:     "Dana Ortiz",
		Type:         domain.TypeMaintenance,
		DurationDays: 1,
		Priority:     domain.PriorityMedium,
		ZoneName:     "Assembly Line A",
		ViewID:       "assembly-a",
		Cells:        []domain.Cell{{X: 0, Y: 0}},
		Status:       domain.ProjectActive,
		CreatedAt:    FixedNow,
	}
	p.Schedule(FixedNow)
	for _, opt := range opts {
		opt(p)
	}
	// Re-derive the end date in case the duration changed after scheduling.
	p.EndDate = p.StartDate.AddDate(0, 0, p.DurationDays)
	return p
}

// NewTestZone returns a clickable zone with the given name and bounds.
func NewTestZone(name string, x, y, w, h int) domain.Zone {
	return domain.Zone{
		Name:             name,
		Bounds:           domain.Bounds{X: x, Y: y, Width: w, Height: h},
		Clickable:        true,
		NavigationTarget: "",
	}
}
