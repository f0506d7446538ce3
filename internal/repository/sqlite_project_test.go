package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	cells := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Replace conveyor belt",
		testutil.WithType(domain.TypeUpgrade),
		testutil.WithDuration(3),
		testutil.WithCells(domain.Cell{X: 4, Y: 2}, domain.Cell{X: 5, Y: 2}),
	)
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, cells.Assign(ctx, proj.ID, proj.ViewID, proj.Cells))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Replace conveyor belt", fetched.Title)
	assert.Equal(t, domain.TypeUpgrade, fetched.Type)
	assert.Equal(t, 3, fetched.DurationDays)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.True(t, proj.StartDate.Equal(fetched.StartDate))
	assert.True(t, proj.EndDate.Equal(fetched.EndDate))
	assert.Equal(t, proj.Cells, fetched.Cells)
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}

func TestProjectRepo_CheckConstraints(t *testing.T) {
	repo := NewSQLiteProjectRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("bad type", testutil.WithType("painting"))))
	assert.Error(t, repo.Create(ctx, testutil.NewTestProject("bad duration", testutil.WithDuration(0))))
}

func TestProjectRepo_ListByView(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(database)
	cells := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	a := testutil.NewTestProject("A")
	b := testutil.NewTestProject("B", testutil.WithView("paint-shop", "Paint Shop"))
	c := testutil.NewTestProject("C")
	for _, p := range []*domain.Project{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
		require.NoError(t, cells.Assign(ctx, p.ID, p.ViewID, p.Cells))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"A", "B", "C"}, []string{all[0].Title, all[1].Title, all[2].Title})

	view, err := repo.ListByView(ctx, "assembly-a")
	require.NoError(t, err)
	require.Len(t, view, 2)
	assert.Equal(t, a.ID, view[0].ID)
	assert.Equal(t, c.ID, view[1].ID)
	assert.Len(t, view[0].Cells, 1)
}
