package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", cause, KindUnknown},
		{"validation", Invalid("confidence", "must be between %d and %d", 0, 100), KindValidation},
		{"not found", NotFound("Claim", 3), KindNotFound},
		{"database", DBError("list", cause), KindDatabase},
		{"wrapped not found", fmt.Errorf("get: %w", NotFound("Claim", 3)), KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "EvidenceItem with id 12 not found", NotFound("EvidenceItem", int64(12)).Error())
	assert.Equal(t, "confidence: must be between 0 and 100", Invalid("confidence", "must be between %d and %d", 0, 100).Error())
	assert.Equal(t, "no field", (&ValidationError{Message: "no field"}).Error())
	assert.Equal(t, "ping: refused", DBError("ping", errors.New("refused")).Error())
}

func TestDBErrorKeepsClassification(t *testing.T) {
	assert.NoError(t, DBError("op", nil))
	nf := NotFound("Claim", 1)
	assert.Same(t, nf, DBError("op", nf))

	cause := errors.New("boom")
	err := DBError("op", cause)
	var de *DatabaseError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "op", de.Op)
	assert.ErrorIs(t, err, cause)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "validation", KindValidation.String())
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "database", KindDatabase.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
