package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"ravegraph/internal/domain"
)

const (
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeInvalidText         = "22P02"
)

// wrap classifies a store error. Constraint violations caused by bad input
// become validation errors; everything else is a database error.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if domain.KindOf(err) != domain.KindUnknown {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeForeignKeyViolation:
			switch {
			case strings.Contains(pgErr.ConstraintName, "service_id"):
				return domain.Invalid("serviceId", "references an unknown service")
			case strings.Contains(pgErr.ConstraintName, "evidence_id"):
				return domain.Invalid("evidenceIds", "references unknown evidence")
			case strings.Contains(pgErr.ConstraintName, "claim_id"):
				return domain.Invalid("claimId", "references an unknown claim")
			}
			return domain.Invalid("", "%s", pgErr.Message)
		case codeCheckViolation, codeInvalidText:
			return domain.Invalid("", "%s", pgErr.Message)
		}
	}
	return domain.DBError(op, err)
}
