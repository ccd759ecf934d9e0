package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const controlColumns = `id, control_type, title, description, incident_id, service_id, priority, status, created_at, updated_at`

func scanControl(row pgx.Row) (domain.Control, error) {
	var c domain.Control
	var ctype, status string
	var priority *string
	err := row.Scan(&c.ID, &ctype, &c.Title, &c.Description, &c.IncidentID, &c.ServiceID, &priority, &status, &c.CreatedAt, &c.UpdatedAt)
	c.ControlType = domain.ControlType(ctype)
	c.Status = domain.ControlStatus(status)
	if priority != nil {
		p := domain.Priority(*priority)
		c.Priority = &p
	}
	return c, err
}

func controlWhere(f ports.ControlFilter) *where {
	w := &where{}
	if f.ServiceID != "" {
		w.add("service_id = ?", f.ServiceID)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.Priority != "" {
		w.add("priority = ?", string(f.Priority))
	}
	if f.Type != "" {
		w.add("control_type = ?", string(f.Type))
	}
	if f.IncidentID != nil {
		w.add("incident_id = ?", *f.IncidentID)
	}
	return w
}

// ListControls returns matching controls, newest first.
func (db *DB) ListControls(ctx context.Context, f ports.ControlFilter) ([]domain.Control, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w := controlWhere(f)
	rows, err := db.Pool.Query(ctx, `SELECT `+controlColumns+` FROM controls`+w.String()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, wrap("list controls", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Control, error) { return scanControl(row) })
	if err != nil {
		return nil, wrap("list controls", err)
	}
	return nonNil(out), nil
}

func (db *DB) GetControl(ctx context.Context, id int64) (domain.Control, bool, error) {
	c, err := scanControl(db.Pool.QueryRow(ctx, `SELECT `+controlColumns+` FROM controls WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Control{}, false, nil
	}
	if err != nil {
		return domain.Control{}, false, wrap("get control", err)
	}
	return c, true, nil
}

// ControlCounts pipelines the three grouped counts in one batch.
func (db *DB) ControlCounts(ctx context.Context, f ports.ServiceFilter) (domain.ControlCounts, error) {
	out := domain.NewControlCounts()
	b := &pgx.Batch{}

	w := serviceWhere(f)
	queueCounts(b, `SELECT control_type, COUNT(*) FROM controls`+w.String()+` GROUP BY control_type`, w.args, out.ByType)

	pw := serviceWhere(f)
	pw.raw("priority IS NOT NULL")
	queueCounts(b, `SELECT priority, COUNT(*) FROM controls`+pw.String()+` GROUP BY priority`, pw.args, out.ByPriority)

	queueCounts(b, `SELECT status, COUNT(*) FROM controls`+w.String()+` GROUP BY status`, w.args, out.ByStatus)

	if err := db.Pool.SendBatch(ctx, b).Close(); err != nil {
		return domain.ControlCounts{}, wrap("control counts", err)
	}
	return out, nil
}

func serviceWhere(f ports.ServiceFilter) *where {
	w := &where{}
	if f.ServiceID != "" {
		w.add("service_id = ?", f.ServiceID)
	}
	return w
}

func queueCounts[K ~string](b *pgx.Batch, sql string, args []any, into map[K]int) {
	b.Queue(sql, args...).Query(func(rows pgx.Rows) error {
		for rows.Next() {
			var key string
			var n int64
			if err := rows.Scan(&key, &n); err != nil {
				return err
			}
			into[K(key)] = int(n)
		}
		return rows.Err()
	})
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
