package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/plantmap/internal/app"
	"github.com/alexanderramin/plantmap/internal/composite"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/filter"
	"github.com/alexanderramin/plantmap/internal/grid"
	"github.com/alexanderramin/plantmap/internal/repository"
	"github.com/alexanderramin/plantmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projectRequest(title string, typ domain.ProjectType, cells ...domain.Cell) app.CreateProjectRequest {
	return app.CreateProjectRequest{
		Title:        title,
		Engineer:     "Sam Lee",
		Type:         typ,
		DurationDays: 1,
		Priority:     domain.PriorityHigh,
		ZoneName:     "Assembly Line A",
		ViewID:       "assembly-a",
		Cells:        cells,
	}
}

func TestProjectService_EndDateIsStartPlusDuration(t *testing.T) {
	h := setup(t)
	req := projectRequest("Replace rollers", domain.TypeMaintenance, domain.Cell{X: 1, Y: 1})
	req.DurationDays = 3

	p, err := h.projects.CreateProject(context.Background(), req)
	require.NoError(t, err)

	day := domain.StartOfDay(testNow)
	assert.True(t, day.Equal(p.StartDate), "start is the calendar day of creation")
	assert.True(t, day.AddDate(0, 0, 3).Equal(p.EndDate))
	assert.Equal(t, domain.ProjectActive, p.Status)

	fetched, err := h.projects.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, p.EndDate.Equal(fetched.EndDate))
}

func TestProjectService_NotificationText(t *testing.T) {
	h := setup(t)

	_, err := h.projects.CreateProject(context.Background(),
		projectRequest("Fire exits", domain.TypeSafety, domain.Cell{X: 0, Y: 0}))
	require.NoError(t, err)

	assert.Equal(t,
		[]string{`New safety inspection project "Fire exits" started by Sam Lee in Assembly Line A`},
		messages(h.feed))
}

func TestProjectService_ValidationLeavesStateUnchanged(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  app.CreateProjectRequest
		want error
	}{
		{"no cells", projectRequest("x", domain.TypeSafety), domain.ErrNoCells},
		{"unknown type", projectRequest("x", "painting", domain.Cell{X: 0, Y: 0}), domain.ErrInvalidType},
		{"cell outside grid", projectRequest("x", domain.TypeSafety, domain.Cell{X: domain.GridWidth, Y: 0}), domain.ErrCellOutOfBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.projects.CreateProject(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	zeroDuration := projectRequest("x", domain.TypeSafety, domain.Cell{X: 0, Y: 0})
	zeroDuration.DurationDays = 0
	_, err := h.projects.CreateProject(ctx, zeroDuration)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)

	all, err := h.board.Projects(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, messages(h.feed))
}

func TestProjectService_DuplicateCellsCollapse(t *testing.T) {
	h := setup(t)
	c := domain.Cell{X: 3, Y: 3}

	p, err := h.projects.CreateProject(context.Background(), projectRequest("dup", domain.TypeTesting, c, c))
	require.NoError(t, err)
	assert.Equal(t, []domain.Cell{c}, p.Cells)
}

func TestProjectService_AssignmentIsAllOrNothing(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	boom := errors.New("write failed")

	uow := &testutil.FailOnNthExecUoW{DB: h.db, FailOn: 3, Err: boom}
	svc := NewProjectService(repository.NewSQLiteProjectRepo(h.db), uow, h.feed, fixedClock)

	_, err := svc.CreateProject(ctx, projectRequest("half", domain.TypeUpgrade,
		domain.Cell{X: 0, Y: 0}, domain.Cell{X: 1, Y: 0}, domain.Cell{X: 2, Y: 0}))
	require.ErrorIs(t, err, boom)

	occupants, err := h.board.OccupantsOf(ctx, "assembly-a", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, occupants, "the first cell must be rolled back")
	assert.Empty(t, messages(h.feed))
}

func TestBoard_FilterThenComposite(t *testing.T) {
	h := setup(t)
	ctx := context.Background()
	shared := domain.Cell{X: 5, Y: 5}

	m, err := h.projects.CreateProject(ctx, projectRequest("Rebuild gearbox", domain.TypeMaintenance, shared))
	require.NoError(t, err)
	i, err := h.projects.CreateProject(ctx, projectRequest("Install robot arm", domain.TypeInstallation, shared, domain.Cell{X: 6, Y: 5}))
	require.NoError(t, err)

	occupants, err := h.board.OccupantsOf(ctx, "assembly-a", shared.X, shared.Y)
	require.NoError(t, err)
	require.Len(t, occupants, 2)
	assert.Equal(t, m.ID, occupants[0].ID)
	assert.Equal(t, i.ID, occupants[1].ID)

	view, err := h.board.Cell(ctx, "assembly-a", shared, filter.All, grid.NewSelection())
	require.NoError(t, err)
	assert.Equal(t, "#8b5cf6", view.Color)
	assert.Equal(t, 2, view.Count)

	safety := filter.Criteria{Date: domain.BucketAll, Type: domain.TypeSelector(domain.TypeSafety)}
	view, err = h.board.Cell(ctx, "assembly-a", shared, safety, grid.NewSelection())
	require.NoError(t, err)
	assert.Empty(t, view.Occupants)
	assert.Empty(t, view.Color, "an emptied cell renders transparent")
	assert.Zero(t, view.Count)

	onlyInstall := filter.Criteria{Date: domain.BucketToday, Type: domain.TypeSelector(domain.TypeInstallation)}
	view, err = h.board.Cell(ctx, "assembly-a", shared, onlyInstall, grid.NewSelection())
	require.NoError(t, err)
	assert.Equal(t, composite.BaseColor(domain.TypeInstallation), view.Color)
}

func TestBoard_GridSharesProjectsAcrossCells(t *testing.T) {
	h := setup(t)
	ctx := context.Background()

	p, err := h.projects.CreateProject(ctx, projectRequest("Wide", domain.TypeConstruction,
		domain.Cell{X: 0, Y: 0}, domain.Cell{X: 39, Y: 24}))
	require.NoError(t, err)

	sel := grid.NewSelection(domain.Cell{X: 10, Y: 10}, domain.Cell{X: 0, Y: 0})
	rows, err := h.board.Grid(ctx, "assembly-a", filter.All, sel)
	require.NoError(t, err)
	require.Len(t, rows, domain.GridHeight)
	require.Len(t, rows[0], domain.GridWidth)

	first, last := rows[0][0], rows[24][39]
	require.Len(t, first.Occupants, 1)
	require.Len(t, last.Occupants, 1)
	assert.Same(t, first.Occupants[0], last.Occupants[0])
	assert.Equal(t, p.ID, first.Occupants[0].ID)

	assert.Equal(t, composite.Selection, first.Color, "selection wins over occupancy")
	assert.Equal(t, composite.BaseColor(domain.TypeConstruction), last.Color)
	assert.Equal(t, composite.Selection, rows[10][10].Color)
	assert.Empty(t, rows[1][1].Color)

	all, err := h.board.Projects(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
