package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const evidenceColumns = `id, service_id, evidence_type, source, body, tags, confidence, ttl_hours, collected_at, expires_at, created_at, updated_at`

func scanEvidence(row pgx.Row) (domain.EvidenceItem, error) {
	var e domain.EvidenceItem
	var etype string
	err := row.Scan(&e.ID, &e.ServiceID, &etype, &e.Source, &e.Body, &e.Tags, &e.Confidence, &e.TTLHours, &e.CollectedAt, &e.ExpiresAt, &e.CreatedAt, &e.UpdatedAt)
	e.EvidenceType = domain.EvidenceType(etype)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, err
}

func collectEvidence(rows pgx.Rows) ([]domain.EvidenceItem, error) {
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.EvidenceItem, error) { return scanEvidence(row) })
	return nonNil(out), err
}

func (db *DB) GetEvidence(ctx context.Context, id int64) (domain.EvidenceItem, bool, error) {
	e, err := scanEvidence(db.Pool.QueryRow(ctx, `SELECT `+evidenceColumns+` FROM evidence_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.EvidenceItem{}, false, nil
	}
	if err != nil {
		return domain.EvidenceItem{}, false, wrap("get evidence", err)
	}
	return e, true, nil
}

func evidenceWhere(f ports.EvidenceFilter) *where {
	w := &where{}
	if f.ServiceID != "" {
		w.add("service_id = ?", f.ServiceID)
	}
	if f.Type != "" {
		w.add("evidence_type = ?", string(f.Type))
	}
	if len(f.Tags) > 0 {
		w.add("tags && ?::text[]", f.Tags)
	}
	if f.FreshOnly {
		w.raw("(expires_at IS NULL OR expires_at > now())")
	}
	return w
}

// SearchEvidence returns matching items, most recently collected first.
func (db *DB) SearchEvidence(ctx context.Context, f ports.EvidenceFilter) ([]domain.EvidenceItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w := evidenceWhere(f)
	rows, err := db.Pool.Query(ctx, `SELECT `+evidenceColumns+` FROM evidence_items`+w.String()+` ORDER BY collected_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, wrap("search evidence", err)
	}
	out, err := collectEvidence(rows)
	if err != nil {
		return nil, wrap("search evidence", err)
	}
	return out, nil
}

// UpsertEvidence replaces every field of an existing item when in.ID is set,
// otherwise inserts. The expiry is derived from collected_at and the TTL.
func (db *DB) UpsertEvidence(ctx context.Context, in ports.UpsertEvidenceInput) (domain.EvidenceItem, error) {
	if err := in.Validate(); err != nil {
		return domain.EvidenceItem{}, err
	}
	collectedAt := time.Now().UTC()
	if in.CollectedAt != nil {
		collectedAt = *in.CollectedAt
	}
	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}
	expiresAt := domain.EvidenceExpiry(collectedAt, in.TTLHours)
	args := []any{in.ServiceID, string(in.EvidenceType), in.Source, in.Body, tags, in.Confidence, in.TTLHours, collectedAt, expiresAt}

	if in.ID != nil {
		e, err := scanEvidence(db.Pool.QueryRow(ctx, `
			UPDATE evidence_items
			SET service_id = $1, evidence_type = $2, source = $3, body = $4, tags = $5,
			    confidence = $6, ttl_hours = $7, collected_at = $8, expires_at = $9, updated_at = now()
			WHERE id = $10
			RETURNING `+evidenceColumns, append(args, *in.ID)...))
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.EvidenceItem{}, domain.NotFound("EvidenceItem", *in.ID)
		}
		return e, wrap("update evidence", err)
	}

	e, err := scanEvidence(db.Pool.QueryRow(ctx, `
		INSERT INTO evidence_items (service_id, evidence_type, source, body, tags, confidence, ttl_hours, collected_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+evidenceColumns, args...))
	return e, wrap("insert evidence", err)
}

// DeleteEvidence does not check for references; claim links cascade.
func (db *DB) DeleteEvidence(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM evidence_items WHERE id = $1`, id)
	return wrap("delete evidence", err)
}
