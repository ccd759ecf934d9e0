//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func startDB(t *testing.T) *DB {
	t.Helper()
	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("ravegraph"),
		tcpostgres.WithUsername("ravegraph"),
		tcpostgres.WithPassword("ravegraph_dev"),
		tcpostgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := Connect(ctx, dsn, Options{ConnectTimeout: 30 * time.Second})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	m, err := db.Migrator()
	require.NoError(t, err)
	defer m.Close()
	applied, err := m.Up(ctx)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, applied)

	_, err = db.Pool.Exec(ctx, `
		INSERT INTO services (id, name) VALUES ('checkout', 'Checkout'), ('search', 'Search');
		INSERT INTO readiness_scores (service_id, service_name, score, recorded_at) VALUES
			('checkout', 'Checkout', 80, now() - interval '2 days'),
			('checkout', 'Checkout', 90, now() - interval '1 day'),
			('search', 'Search', 70, now() - interval '1 day'),
			('search', 'Search', 10, now() - interval '60 days');
		INSERT INTO controls (control_type, title, service_id, priority, status) VALUES
			('PREVENT', 'Rate limit checkout', 'checkout', 'HIGH', 'PROPOSED'),
			('DETECT', 'Alert on 5xx', 'checkout', NULL, 'APPROVED'),
			('DETECT', 'Index lag alert', 'search', 'LOW', 'PROPOSED');
		INSERT INTO work_items (title, work_type, service_id, status) VALUES
			('Write runbook', 'DOCUMENTATION', 'checkout', 'OPEN'),
			('Triage', NULL, 'search', 'IN_PROGRESS');`)
	require.NoError(t, err)
	return db
}

func TestIntegrationReadPaths(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()

	scores, err := db.ListScores(ctx, ports.ReadinessFilter{})
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "checkout", scores[0].ServiceID)
	assert.Equal(t, 90.0, scores[0].Score)

	avg, err := db.AverageLatestScore(ctx, ports.ServiceFilter{})
	require.NoError(t, err)
	assert.InDelta(t, 80.0, avg, 0.001)

	n, err := db.TrackedServiceCount(ctx, ports.ServiceFilter{ServiceID: "checkout"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	counts, err := db.ControlCounts(ctx, ports.ServiceFilter{ServiceID: "checkout"})
	require.NoError(t, err)
	assert.Equal(t, map[domain.ControlType]int{domain.ControlPrevent: 1, domain.ControlDetect: 1}, counts.ByType)
	assert.Equal(t, map[domain.Priority]int{domain.PriorityHigh: 1}, counts.ByPriority)

	wc, err := db.WorkItemCounts(ctx, ports.ServiceFilter{})
	require.NoError(t, err)
	assert.Equal(t, map[domain.WorkType]int{domain.WorkDocumentation: 1}, wc.ByType)
	assert.Equal(t, 2, wc.ByStatus[domain.WorkOpen]+wc.ByStatus[domain.WorkInProgress])

	controls, err := db.ListControls(ctx, ports.ControlFilter{Type: domain.ControlDetect})
	require.NoError(t, err)
	assert.Len(t, controls, 2)
}

func TestIntegrationLedger(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()
	ttl := 24
	collected := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	ev, err := db.UpsertEvidence(ctx, ports.UpsertEvidenceInput{
		ServiceID: "checkout", EvidenceType: domain.EvidenceSBOM, Source: "syft",
		Body: map[string]any{"packages": float64(12)}, Tags: []string{"ci"},
		Confidence: 80, TTLHours: &ttl, CollectedAt: &collected,
	})
	require.NoError(t, err)
	require.NotNil(t, ev.ExpiresAt)
	assert.True(t, ev.ExpiresAt.Equal(collected.Add(24*time.Hour)))

	_, err = db.UpsertEvidence(ctx, ports.UpsertEvidenceInput{
		ServiceID: "nope", EvidenceType: domain.EvidenceOther, Source: "x", Body: map[string]any{},
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	fresh, err := db.SearchEvidence(ctx, ports.EvidenceFilter{FreshOnly: true})
	require.NoError(t, err)
	assert.Empty(t, fresh, "expired in the past")

	claim, err := db.UpsertClaim(ctx, ports.UpsertClaimInput{
		ServiceID: "checkout", Title: "SBOM published", Section: "supply-chain", EvidenceIDs: []int64{ev.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimUnknown, claim.Status)

	require.NoError(t, db.LinkEvidence(ctx, claim.ID, []int64{ev.ID}))
	got, ok, err := db.GetClaim(ctx, claim.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got.Evidence, 1)

	missing := int64(999)
	_, err = db.UpsertClaim(ctx, ports.UpsertClaimInput{ID: &missing, ServiceID: "checkout", Title: "t", Section: "s"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = db.UpsertClaim(ctx, ports.UpsertClaimInput{ID: &claim.ID, ServiceID: "checkout", Title: "t", Section: "s", EvidenceIDs: []int64{ev.ID, 12345}})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	got, _, err = db.GetClaim(ctx, claim.ID)
	require.NoError(t, err)
	assert.Equal(t, "SBOM published", got.Title, "failed replace rolls back the update")
	assert.Len(t, got.Evidence, 1)

	require.NoError(t, db.DeleteEvidence(ctx, ev.ID))
	got, _, err = db.GetClaim(ctx, claim.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Evidence)
}

func TestMigratorStatusAndDown(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()
	m, err := db.Migrator()
	require.NoError(t, err)
	defer m.Close()

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.True(t, s.Applied, s.Path)
		assert.NotNil(t, s.AppliedAt)
	}

	version, err := m.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), version)

	statuses, err = m.Status(ctx)
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied)
	assert.False(t, statuses[1].Applied)

	applied, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, applied)
}

func TestIntegrationLatestScoreTieBreaksByID(t *testing.T) {
	db := startDB(t)
	ctx := context.Background()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO services (id, name) VALUES ('ledger', 'Ledger');
		INSERT INTO readiness_scores (service_id, service_name, score, recorded_at) VALUES
			('ledger', 'Ledger', 40, date_trunc('hour', now())),
			('ledger', 'Ledger', 50, date_trunc('hour', now()));`)
	require.NoError(t, err)

	scores, err := db.ListScores(ctx, ports.ReadinessFilter{ServiceID: "ledger"})
	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, 50.0, scores[0].Score)

	avg, err := db.AverageLatestScore(ctx, ports.ServiceFilter{ServiceID: "ledger"})
	require.NoError(t, err)
	assert.InDelta(t, scores[0].Score, avg, 0.001)
}
