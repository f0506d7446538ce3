package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepo_OccupantsInInsertionOrder(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	cells := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	shared := domain.Cell{X: 7, Y: 3}
	first := testutil.NewTestProject("first", testutil.WithCells(shared, domain.Cell{X: 8, Y: 3}))
	second := testutil.NewTestProject("second", testutil.WithType(domain.TypeInstallation), testutil.WithCells(shared))
	for _, p := range []*domain.Project{first, second} {
		require.NoError(t, projects.Create(ctx, p))
		require.NoError(t, cells.Assign(ctx, p.ID, p.ViewID, p.Cells))
	}

	ids, err := cells.OccupantIDs(ctx, "assembly-a", 7, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ID, second.ID}, ids)

	ids, err = cells.OccupantIDs(ctx, "assembly-a", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = cells.OccupantIDs(ctx, "paint-shop", 7, 3)
	require.NoError(t, err)
	assert.Empty(t, ids, "cells are scoped to their view")

	occ, err := cells.Occupancy(ctx, "assembly-a")
	require.NoError(t, err)
	assert.Len(t, occ, 2)
	assert.Equal(t, []string{first.ID, second.ID}, occ[shared])
	assert.Equal(t, []string{first.ID}, occ[domain.Cell{X: 8, Y: 3}])
}

func TestAssignmentRepo_SameProjectTwiceOnCellRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	projects := NewSQLiteProjectRepo(database)
	cells := NewSQLiteAssignmentRepo(database)
	ctx := context.Background()

	p := testutil.NewTestProject("dup")
	require.NoError(t, projects.Create(ctx, p))
	err := cells.Assign(ctx, p.ID, p.ViewID, []domain.Cell{{X: 1, Y: 1}, {X: 1, Y: 1}})
	assert.Error(t, err)
}

func TestAssignmentRepo_FailedAssignLeavesNoCells(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	boom := errors.New("disk full")

	p := testutil.NewTestProject("atomic", testutil.WithCells(
		domain.Cell{X: 0, Y: 0}, domain.Cell{X: 1, Y: 0}, domain.Cell{X: 2, Y: 0},
	))
	// Exec 1 inserts the project, execs 2..4 insert cells. Fail on the third cell.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 4, Err: boom}

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := NewSQLiteProjectRepo(tx).Create(ctx, p); err != nil {
			return err
		}
		return NewSQLiteAssignmentRepo(tx).Assign(ctx, p.ID, p.ViewID, p.Cells)
	})
	require.ErrorIs(t, err, boom)

	occ, err := NewSQLiteAssignmentRepo(database).Occupancy(ctx, "assembly-a")
	require.NoError(t, err)
	assert.Empty(t, occ)

	_, err = NewSQLiteProjectRepo(database).GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProjectNotFound)
}
