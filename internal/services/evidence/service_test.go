package evidence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravegraph/internal/adapters/memory"
	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

var clock = func() time.Time { return time.Date(2026, 2, 10, 8, 30, 0, 0, time.FixedZone("CET", 3600)) }

func newService(t *testing.T) *Service {
	t.Helper()
	store := memory.New(memory.WithClock(clock))
	store.AddService(domain.Service{ID: "checkout", Name: "Checkout"})
	return New(store)
}

func valid() ports.UpsertEvidenceInput {
	return ports.UpsertEvidenceInput{
		ServiceID:    "checkout",
		EvidenceType: domain.EvidenceSBOM,
		Source:       "syft",
		Body:         map[string]any{"components": 41},
		Confidence:   80,
	}
}

func TestUpsertDefaults(t *testing.T) {
	svc := newService(t)
	e, err := svc.Upsert(context.Background(), valid())
	require.NoError(t, err)
	assert.Equal(t, clock().UTC(), e.CollectedAt)
	assert.True(t, e.CollectedAt.Equal(e.CreatedAt), "collection time defaults from the store clock")
	assert.Equal(t, []string{}, e.Tags)
	assert.Nil(t, e.ExpiresAt)
}

func TestUpsertDerivesExpiry(t *testing.T) {
	svc := newService(t)
	in := valid()
	in.TTLHours = ptr(24)
	collected := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	in.CollectedAt = &collected

	e, err := svc.Upsert(context.Background(), in)
	require.NoError(t, err)
	require.NotNil(t, e.ExpiresAt)
	assert.Equal(t, time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), *e.ExpiresAt)
}

func TestUpsertValidation(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ports.UpsertEvidenceInput)
		field string
	}{
		{"missing service", func(in *ports.UpsertEvidenceInput) { in.ServiceID = " " }, "serviceId"},
		{"unknown type", func(in *ports.UpsertEvidenceInput) { in.EvidenceType = "PHOTO" }, "evidenceType"},
		{"missing source", func(in *ports.UpsertEvidenceInput) { in.Source = "" }, "source"},
		{"nil body", func(in *ports.UpsertEvidenceInput) { in.Body = nil }, "body"},
		{"confidence too high", func(in *ports.UpsertEvidenceInput) { in.Confidence = 101 }, "confidence"},
		{"negative confidence", func(in *ports.UpsertEvidenceInput) { in.Confidence = -1 }, "confidence"},
		{"zero ttl", func(in *ports.UpsertEvidenceInput) { in.TTLHours = ptr(0) }, "ttlHours"},
		{"empty tag", func(in *ports.UpsertEvidenceInput) { in.Tags = []string{"ok", ""} }, "tags"},
		{"bad id", func(in *ports.UpsertEvidenceInput) { in.ID = ptr(int64(0)) }, "id"},
	}
	svc := newService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.edit(&in)
			_, err := svc.Upsert(context.Background(), in)
			var ve *domain.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestGetMissing(t *testing.T) {
	_, err := newService(t).Get(context.Background(), 77)
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "EvidenceItem", nf.Entity)
	assert.Equal(t, "EvidenceItem with id 77 not found", err.Error())
}

func TestSearchRejectsUnknownType(t *testing.T) {
	_, err := newService(t).Search(context.Background(), ports.EvidenceFilter{Type: "NOPE"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestDeleteThenGet(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	e, err := svc.Upsert(ctx, valid())
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.Get(ctx, e.ID)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func ptr[T any](v T) *T { return &v }
