package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

// ListScores returns scores recorded within the filter's window, grouped by
// service and newest first within each service.
func (db *DB) ListScores(ctx context.Context, f ports.ReadinessFilter) ([]domain.ReadinessScore, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w := &where{}
	w.add("recorded_at >= now() - make_interval(days => ?::int)", f.Days())
	if f.ServiceID != "" {
		w.add("service_id = ?", f.ServiceID)
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, service_id, service_name, score::float8, section_scores, recorded_at, created_at
		FROM readiness_scores`+w.String()+`
		ORDER BY service_id, recorded_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, wrap("list scores", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ReadinessScore, error) {
		var s domain.ReadinessScore
		err := row.Scan(&s.ID, &s.ServiceID, &s.ServiceName, &s.Score, &s.SectionScores, &s.RecordedAt, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, wrap("list scores", err)
	}
	return nonNil(out), nil
}

// AverageLatestScore averages the most recent score of each service in scope.
// An empty scope averages to 0.
func (db *DB) AverageLatestScore(ctx context.Context, f ports.ServiceFilter) (float64, error) {
	w := serviceWhere(f)
	var avg float64
	err := db.Pool.QueryRow(ctx, `
		SELECT COALESCE(AVG(score), 0)::float8
		FROM (
			SELECT DISTINCT ON (service_id) service_id, score
			FROM readiness_scores`+w.String()+`
			ORDER BY service_id, recorded_at DESC, id DESC
		) latest_scores`, w.args...).Scan(&avg)
	if err != nil {
		return 0, wrap("average score", err)
	}
	return avg, nil
}

func (db *DB) TrackedServiceCount(ctx context.Context, f ports.ServiceFilter) (int, error) {
	w := serviceWhere(f)
	var n int64
	err := db.Pool.QueryRow(ctx, `SELECT COUNT(DISTINCT service_id) FROM readiness_scores`+w.String(), w.args...).Scan(&n)
	if err != nil {
		return 0, wrap("tracked services", err)
	}
	return int(n), nil
}
