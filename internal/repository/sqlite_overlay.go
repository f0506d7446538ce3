package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/plantmap/internal/db"
	"github.com/alexanderramin/plantmap/internal/domain"
	"github.com/alexanderramin/plantmap/internal/zone"
)

// SQLiteOverlayRepo implements OverlayRepo. The log is small and every edit
// can remove or replace earlier records, so Save rewrites it whole.
type SQLiteOverlayRepo struct {
	db db.DBTX
}

func NewSQLiteOverlayRepo(conn db.DBTX) *SQLiteOverlayRepo {
	return &SQLiteOverlayRepo{db: conn}
}

func (r *SQLiteOverlayRepo) Load(ctx context.Context) (zone.Log, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT kind, original_name, add_id, name, x, y, width, height,
		clickable, navigation_target, background_image_ref
		FROM overlay_ops ORDER BY seq`)
	if err != nil {
		return zone.Log{}, fmt.Errorf("loading overlay log: %w", err)
	}
	defer rows.Close()

	var ops []domain.OverlayOp
	for rows.Next() {
		var kind, original, addID string
		var z domain.Zone
		var clickable int
		err := rows.Scan(&kind, &original, &addID, &z.Name,
			&z.Bounds.X, &z.Bounds.Y, &z.Bounds.Width, &z.Bounds.Height,
			&clickable, &z.NavigationTarget, &z.BackgroundImageRef)
		if err != nil {
			return zone.Log{}, fmt.Errorf("scanning overlay op: %w", err)
		}
		z.Clickable = intToBool(clickable)

		switch domain.OverlayKind(kind) {
		case domain.OverlayAdd:
			ops = append(ops, domain.AddZone{ID: addID, Zone: z})
		case domain.OverlayModify:
			ops = append(ops, domain.ModifyBaseZone{OriginalName: original, Replacement: z})
		case domain.OverlayDelete:
			ops = append(ops, domain.DeleteBaseZone{OriginalName: original})
		default:
			return zone.Log{}, fmt.Errorf("unknown overlay kind %q", kind)
		}
	}
	if err := rows.Err(); err != nil {
		return zone.Log{}, fmt.Errorf("iterating overlay log: %w", err)
	}
	return zone.NewLog(ops...), nil
}

// Save replaces the stored log with l. Run it inside a UnitOfWork so a
// failed write leaves the previous log intact.
func (r *SQLiteOverlayRepo) Save(ctx context.Context, l zone.Log) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM overlay_ops`); err != nil {
		return fmt.Errorf("clearing overlay log: %w", err)
	}
	query := `INSERT INTO overlay_ops (seq, kind, original_name, add_id, name, x, y, width, height,
		clickable, navigation_target, background_image_ref)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	for i, op := range l.Ops() {
		var original, addID string
		var z domain.Zone
		switch o := op.(type) {
		case domain.AddZone:
			addID, z = o.ID, o.Zone
		case domain.ModifyBaseZone:
			original, z = o.OriginalName, o.Replacement
		case domain.DeleteBaseZone:
			original = o.OriginalName
		}
		_, err := r.db.ExecContext(ctx, query, i+1, string(op.Kind()), original, addID, z.Name,
			z.Bounds.X, z.Bounds.Y, z.Bounds.Width, z.Bounds.Height,
			boolToInt(z.Clickable), z.NavigationTarget, z.BackgroundImageRef)
		if err != nil {
			return fmt.Errorf("saving overlay op %d: %w", i+1, err)
		}
	}
	return nil
}
