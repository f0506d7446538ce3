package service

import (
	"context"
	"time"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/composite"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/filter"
	"github.com/alexanderramin/plantmap/internal/grid"
	"github.com/alexanderramin/plantmap/internal/repository"
)

type boardService struct {
	projects    repository.ProjectRepo
	assignments repository.AssignmentRepo
	now         app.Clock
}

// NewBoardService answers read queries about grid occupancy. Every cell is
// filtered first and composited second.
func NewBoardService(projects repository.ProjectRepo, assignments repository.AssignmentRepo, now app.Clock) BoardService {
	if now == nil {
		now = time.Now
	}
	return &boardService{projects: projects, assignments: assignments, now: now}
}

func (s *boardService) OccupantsOf(ctx context.Context, viewID string, x, y int) ([]*domain.Project, error) {
	ids, err := s.assignments.OccupantIDs(ctx, viewID, x, y)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Project, 0, len(ids))
	for _, id := range ids {
		p, err := s.projects.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *boardService) Cell(ctx context.Context, viewID string, c domain.Cell, criteria filter.Criteria, sel grid.Selection) (app.CellView, error) {
	occupants, err := s.OccupantsOf(ctx, viewID, c.X, c.Y)
	if err != nil {
		return app.CellView{}, err
	}
	return cellView(c, occupants, criteria, sel, s.now()), nil
}

func (s *boardService) Grid(ctx context.Context, viewID string, criteria filter.Criteria, sel grid.Selection) ([][]app.CellView, error) {
	occupancy, err := s.assignments.Occupancy(ctx, viewID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projects.ListByView(ctx, viewID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*domain.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}

	now := s.now()
	rows := make([][]app.CellView, domain.GridHeight)
	for y := range rows {
		rows[y] = make([]app.CellView, domain.GridWidth)
		for x := range rows[y] {
			c := domain.Cell{X: x, Y: y}
			var occupants []*domain.Project
			for _, id := range occupancy[c] {
				if p, ok := byID[id]; ok {
					occupants = append(occupants, p)
				}
			}
			rows[y][x] = cellView(c, occupants, criteria, sel, now)
		}
	}
	return rows, nil
}

// Projects lists every project once, in creation order.
func (s *boardService) Projects(ctx context.Context) ([]*domain.Project, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(projects))
	out := projects[:0]
	for _, p := range projects {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

func cellView(c domain.Cell, occupants []*domain.Project, criteria filter.Criteria, sel grid.Selection, now time.Time) app.CellView {
	visible := criteria.Apply(occupants, now)
	v := app.CellView{
		Cell:      c,
		Occupants: visible,
		Count:     len(visible),
		Selected:  sel.Has(c),
	}
	switch {
	case v.Selected:
		v.Color = composite.Selection
	case len(visible) > 0:
		v.Color = composite.Color(filter.Types(visible))
	}
	return v
}
