package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const claimColumns = `id, service_id, title, section, status, confidence, reason, created_at, updated_at`

func scanClaim(row pgx.Row) (domain.Claim, error) {
	var c domain.Claim
	var status string
	err := row.Scan(&c.ID, &c.ServiceID, &c.Title, &c.Section, &status, &c.Confidence, &c.Reason, &c.CreatedAt, &c.UpdatedAt)
	c.Status = domain.ClaimStatus(status)
	return c, err
}

// GetClaim returns the claim and its evidence, most recently collected first.
func (db *DB) GetClaim(ctx context.Context, id int64) (domain.ClaimWithEvidence, bool, error) {
	c, err := scanClaim(db.Pool.QueryRow(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ClaimWithEvidence{}, false, nil
	}
	if err != nil {
		return domain.ClaimWithEvidence{}, false, wrap("get claim", err)
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT e.id, e.service_id, e.evidence_type, e.source, e.body, e.tags, e.confidence, e.ttl_hours,
		       e.collected_at, e.expires_at, e.created_at, e.updated_at
		FROM claim_evidence ce
		JOIN evidence_items e ON e.id = ce.evidence_id
		WHERE ce.claim_id = $1
		ORDER BY e.collected_at DESC, e.id DESC`, id)
	if err != nil {
		return domain.ClaimWithEvidence{}, false, wrap("get claim evidence", err)
	}
	evidence, err := collectEvidence(rows)
	if err != nil {
		return domain.ClaimWithEvidence{}, false, wrap("get claim evidence", err)
	}
	return domain.ClaimWithEvidence{Claim: c, Evidence: evidence}, true, nil
}

func (db *DB) ListClaims(ctx context.Context, f ports.ClaimFilter) ([]domain.Claim, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	w := &where{}
	if f.ServiceID != "" {
		w.add("service_id = ?", f.ServiceID)
	}
	if f.Section != "" {
		w.add("section = ?", f.Section)
	}
	if f.Status != "" {
		w.add("status = ?", string(f.Status))
	}
	rows, err := db.Pool.Query(ctx, `SELECT `+claimColumns+` FROM claims`+w.String()+` ORDER BY created_at DESC, id DESC`, w.args...)
	if err != nil {
		return nil, wrap("list claims", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Claim, error) { return scanClaim(row) })
	if err != nil {
		return nil, wrap("list claims", err)
	}
	return nonNil(out), nil
}

// UpsertClaim writes the claim row and, when in.EvidenceIDs is non-nil, replaces
// its evidence links, all in one transaction so a failed replace never leaves
// the claim without its previous links.
func (db *DB) UpsertClaim(ctx context.Context, in ports.UpsertClaimInput) (domain.Claim, error) {
	if err := in.Validate(); err != nil {
		return domain.Claim{}, err
	}
	status := in.Status
	if status == "" {
		status = domain.ClaimUnknown
	}
	confidence := 0
	if in.Confidence != nil {
		confidence = *in.Confidence
	}
	args := []any{in.ServiceID, in.Title, in.Section, string(status), confidence, in.Reason}

	var claim domain.Claim
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var err error
		if in.ID != nil {
			claim, err = scanClaim(tx.QueryRow(ctx, `
				UPDATE claims
				SET service_id = $1, title = $2, section = $3, status = $4, confidence = $5, reason = $6, updated_at = now()
				WHERE id = $7
				RETURNING `+claimColumns, append(args, *in.ID)...))
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.NotFound("Claim", *in.ID)
			}
			if err != nil {
				return err
			}
			if in.EvidenceIDs == nil {
				return nil
			}
			if _, err := tx.Exec(ctx, `DELETE FROM claim_evidence WHERE claim_id = $1`, claim.ID); err != nil {
				return err
			}
			return linkEvidence(ctx, tx, claim.ID, in.EvidenceIDs)
		}

		claim, err = scanClaim(tx.QueryRow(ctx, `
			INSERT INTO claims (service_id, title, section, status, confidence, reason)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+claimColumns, args...))
		if err != nil {
			return err
		}
		return linkEvidence(ctx, tx, claim.ID, in.EvidenceIDs)
	})
	if err != nil {
		return domain.Claim{}, wrap("upsert claim", err)
	}
	return claim, nil
}

func (db *DB) LinkEvidence(ctx context.Context, claimID int64, evidenceIDs []int64) error {
	return wrap("link evidence", linkEvidence(ctx, db.Pool, claimID, evidenceIDs))
}

// linkEvidence inserts (claim, evidence) pairs; existing pairs are skipped.
func linkEvidence(ctx context.Context, q querier, claimID int64, evidenceIDs []int64) error {
	if len(evidenceIDs) == 0 {
		return nil
	}
	_, err := q.Exec(ctx, `
		INSERT INTO claim_evidence (claim_id, evidence_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING`, claimID, evidenceIDs)
	return err
}

func (db *DB) UnlinkEvidence(ctx context.Context, claimID int64, evidenceIDs []int64) error {
	if len(evidenceIDs) == 0 {
		return nil
	}
	_, err := db.Pool.Exec(ctx, `DELETE FROM claim_evidence WHERE claim_id = $1 AND evidence_id = ANY($2)`, claimID, evidenceIDs)
	return wrap("unlink evidence", err)
}

// DeleteClaim is unconditional; its evidence links cascade.
func (db *DB) DeleteClaim(ctx context.Context, id int64) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM claims WHERE id = $1`, id)
	return wrap("delete claim", err)
}
