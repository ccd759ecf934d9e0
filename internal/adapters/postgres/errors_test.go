package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravegraph/internal/domain"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, wrap("op", nil))
}

func TestWrapForeignKeyViolations(t *testing.T) {
	tests := []struct {
		constraint string
		field      string
	}{
		{"evidence_items_service_id_fkey", "serviceId"},
		{"claims_service_id_fkey", "serviceId"},
		{"claim_evidence_evidence_id_fkey", "evidenceIds"},
		{"claim_evidence_claim_id_fkey", "claimId"},
	}
	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			err := wrap("insert", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503", ConstraintName: tt.constraint}))
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestWrapCheckViolation(t *testing.T) {
	err := wrap("insert", &pgconn.PgError{Code: "23514", Message: "violates check constraint"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Contains(t, err.Error(), "violates check constraint")
}

func TestWrapOtherErrorsAreDatabaseErrors(t *testing.T) {
	cause := errors.New("connection reset")
	err := wrap("list controls", cause)
	assert.Equal(t, domain.KindDatabase, domain.KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "list controls: connection reset", err.Error())

	err = wrap("list controls", context.DeadlineExceeded)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWrapKeepsClassifiedErrors(t *testing.T) {
	nf := domain.NotFound("Claim", int64(9))
	assert.Same(t, nf, wrap("upsert claim", nf))
}
