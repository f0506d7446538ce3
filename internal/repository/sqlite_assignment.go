package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/domain"
)

// SQLiteAssignmentRepo implements AssignmentRepo over the project_cells table.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(conn db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: conn}
}

// Assign appends projectID to the occupancy of every cell. Callers that need
// the whole set to land or fail together run it inside a UnitOfWork.
func (r *SQLiteAssignmentRepo) Assign(ctx context.Context, projectID, viewID string, cells []domain.Cell) error {
	query := `INSERT INTO project_cells (view_id, x, y, project_id) VALUES (?, ?, ?, ?)`
	for _, c := range cells {
		if _, err := r.db.ExecContext(ctx, query, viewID, c.X, c.Y, projectID); err != nil {
			return fmt.Errorf("assigning cell %s: %w", c, err)
		}
	}
	return nil
}

// OccupantIDs returns the project IDs at one cell in insertion order.
func (r *SQLiteAssignmentRepo) OccupantIDs(ctx context.Context, viewID string, x, y int) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT project_id FROM project_cells WHERE view_id = ? AND x = ? AND y = ? ORDER BY id`,
		viewID, x, y)
	if err != nil {
		return nil, fmt.Errorf("listing occupants: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning occupant: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occupants: %w", err)
	}
	return ids, nil
}

// CellsOf returns the cells of one project in the order they were selected.
func (r *SQLiteAssignmentRepo) CellsOf(ctx context.Context, projectID string) ([]domain.Cell, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT x, y FROM project_cells WHERE project_id = ? ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing project cells: %w", err)
	}
	defer rows.Close()

	var cells []domain.Cell
	for rows.Next() {
		var c domain.Cell
		if err := rows.Scan(&c.X, &c.Y); err != nil {
			return nil, fmt.Errorf("scanning project cell: %w", err)
		}
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating project cells: %w", err)
	}
	return cells, nil
}

// Occupancy returns the occupant IDs of every occupied cell in a view.
func (r *SQLiteAssignmentRepo) Occupancy(ctx context.Context, viewID string) (map[domain.Cell][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT x, y, project_id FROM project_cells WHERE view_id = ? ORDER BY id`, viewID)
	if err != nil {
		return nil, fmt.Errorf("loading occupancy: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.Cell][]string)
	for rows.Next() {
		var c domain.Cell
		var id string
		if err := rows.Scan(&c.X, &c.Y, &id); err != nil {
			return nil, fmt.Errorf("scanning occupancy: %w", err)
		}
		out[c] = append(out[c], id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating occupancy: %w", err)
	}
	return out, nil
}
