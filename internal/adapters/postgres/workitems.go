package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const workItemColumns = `id, external_id, external_system, title, description, work_type, control_id, incident_id, service_id, status, assigned_to, created_at, updated_at`

func scanWorkItem(row pgx.Row) (domain.WorkItem, error) {
	var w domain.WorkItem
	var system, wtype *string
	var status string
	err := row.Scan(&w.ID, &w.ExternalID, &system, &w.Title, &w.Description, &wtype, &w.ControlID, &w.IncidentID, &w.ServiceID, &status, &w.AssignedTo, &w.CreatedAt, &w.UpdatedAt)
	w.Status = domain.WorkStatus(status)
	if system != nil {
		s := domain.ExternalSystem(*system)
		w.ExternalSystem = &s
	}
	if wtype != nil {
		t := domain.WorkType(*wtype)
		w.WorkType = &t
	}
	return w, err
}

func workItemWhere(f ports.WorkItemFilter) *where {
	w := &where{}
	if f.ServiceID != "" {
		w.add("service_id = ?", f.ServiceID)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	if f.Type != "" {
		w.add("work_type = ?", string(f.Type))
	}
	if f.ControlID != nil {
		w.add("control_id = ?", *f.ControlID)
	}
	if f.IncidentID != nil {
		w.add("incident_id = ?", *f.IncidentID)
	}
	return w
}

func (db *DB) ListWorkItems(ctx context.Context, f ports.WorkItemFilter) ([]domain.WorkItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w := workItemWhere(f)
	rows, err := db.Pool.Query(ctx, `SELECT `+workItemColumns+` FROM work_items`+w.String()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, wrap("list work items", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.WorkItem, error) { return scanWorkItem(row) })
	if err != nil {
		return nil, wrap("list work items", err)
	}
	return nonNil(out), nil
}

func (db *DB) GetWorkItem(ctx context.Context, id int64) (domain.WorkItem, bool, error) {
	w, err := scanWorkItem(db.Pool.QueryRow(ctx, `SELECT `+workItemColumns+` FROM work_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.WorkItem{}, false, nil
	}
	if err != nil {
		return domain.WorkItem{}, false, wrap("get work item", err)
	}
	return w, true, nil
}

func (db *DB) WorkItemCounts(ctx context.Context, f ports.ServiceFilter) (domain.WorkItemCounts, error) {
	out := domain.NewWorkItemCounts()
	b := &pgx.Batch{}

	w := serviceWhere(f)
	queueCounts(b, `SELECT status, COUNT(*) FROM work_items`+w.String()+` GROUP BY status`, w.args, out.ByStatus)

	tw := serviceWhere(f)
	tw.raw("work_type IS NOT NULL")
	queueCounts(b, `SELECT work_type, COUNT(*) FROM work_items`+tw.String()+` GROUP BY work_type`, tw.args, out.ByType)

	if err := db.Pool.SendBatch(ctx, b).Close(); err != nil {
		return domain.WorkItemCounts{}, wrap("work item counts", err)
	}
	return out, nil
}
