package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

func NewSQLiteProjectRepo(conn db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: conn}
}

const projectColumns = `id, title, engineer, type, duration_days, description, priority,
	zone_name, view_id, start_date, end_date, status, created_at`

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	query := `INSERT INTO projects (` + projectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Title,
		p.Engineer,
		string(p.Type),
		p.DurationDays,
		p.Description,
		string(p.Priority),
		p.ZoneName,
		p.ViewID,
		formatTime(p.StartDate),
		formatTime(p.EndDate),
		string(p.Status),
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting project: %w", err)
	}
	return nil
}

// GetByID loads a project and its cells.
func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("project %s: %w", id, domain.ErrProjectNotFound)
		}
		return nil, err
	}
	if p.Cells, err = NewSQLiteAssignmentRepo(r.db).CellsOf(ctx, p.ID); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns every project in creation order.
func (r *SQLiteProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, rowid`)
}

func (r *SQLiteProjectRepo) ListByView(ctx context.Context, viewID string) ([]*domain.Project, error) {
	return r.list(ctx, `SELECT `+projectColumns+` FROM projects WHERE view_id = ? ORDER BY created_at, rowid`, viewID)
}

func (r *SQLiteProjectRepo) list(ctx context.Context, query string, args ...any) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	rows.Close()

	// Cells are loaded after the cursor is closed: an in-memory database
	// has a single connection.
	cells := NewSQLiteAssignmentRepo(r.db)
	for _, p := range projects {
		if p.Cells, err = cells.CellsOf(ctx, p.ID); err != nil {
			return nil, err
		}
	}
	return projects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var p domain.Project
	var typ, priority, status, start, end, created string

	err := row.Scan(
		&p.ID, &p.Title, &p.Engineer, &typ, &p.DurationDays, &p.Description, &priority,
		&p.ZoneName, &p.ViewID, &start, &end, &status, &created,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	p.Type = domain.ProjectType(typ)
	p.Priority = domain.Priority(priority)
	p.Status = domain.ProjectStatus(status)
	if p.StartDate, err = parseTime("start_date", start); err != nil {
		return nil, err
	}
	if p.EndDate, err = parseTime("end_date", end); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime("created_at", created); err != nil {
		return nil, err
	}
	return &p, nil
}
