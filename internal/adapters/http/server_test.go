package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravegraph/internal/adapters/memory"
	"ravegraph/internal/app"
	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.Store) {
	t.Helper()
	store := memory.New(memory.WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }))
	memory.SeedDemo(store)
	srv := httptest.NewServer(New(app.NewServices(store, nil), nil).Routes())
	t.Cleanup(srv.Close)
	return srv, store
}

func get(t *testing.T, srv *httptest.Server, path string, out any) int {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusOK, get(t, srv, "/healthz", &body))
	assert.Equal(t, "ok", body["status"])
}

func TestDashboard(t *testing.T) {
	srv, _ := newTestServer(t)
	var d domain.WorkDashboard
	require.Equal(t, http.StatusOK, get(t, srv, "/dashboard?serviceId=checkout", &d))
	assert.Len(t, d.ResilienceBacklog.Controls, 2)
	assert.Equal(t, 2, d.Summary.TotalControls)
	assert.Equal(t, 1, d.Summary.ServicesTracked)
	require.Len(t, d.ReadinessTrends, 1)
	assert.Equal(t, domain.TrendImproving, d.ReadinessTrends[0].Trend)
}

func TestListControlsParsesEnumsCaseInsensitively(t *testing.T) {
	srv, _ := newTestServer(t)
	var out []domain.Control
	require.Equal(t, http.StatusOK, get(t, srv, "/controls?priority=high", &out))
	require.Len(t, out, 1)
	assert.Equal(t, "Rate limit payment retries", out[0].Title)
}

func TestBadParametersAre400(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{
		"/controls?status=DONE",
		"/work-items?controlId=abc",
		"/work-items?incidentId=0",
		"/readiness/trends?daysBack=-2",
		"/evidence?freshOnly=maybe",
		"/claims/xyz",
	} {
		t.Run(path, func(t *testing.T) {
			var body map[string]string
			assert.Equal(t, http.StatusBadRequest, get(t, srv, path, &body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestMissingEntitiesAre404(t *testing.T) {
	srv, _ := newTestServer(t)
	var body map[string]string
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/claims/999", &body))
	assert.Equal(t, "Claim with id 999 not found", body["error"])
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/evidence/999", nil))
	assert.Equal(t, http.StatusNotFound, get(t, srv, "/controls/999", nil))
}

func TestEvidenceSearchAndGet(t *testing.T) {
	srv, store := newTestServer(t)
	ctx := context.Background()
	e, err := store.UpsertEvidence(ctx, ports.UpsertEvidenceInput{
		ServiceID: "checkout", EvidenceType: domain.EvidenceMonitoring, Source: "grafana",
		Body: map[string]any{"dashboards": 3.0}, Tags: []string{"prod", "slo"},
	})
	require.NoError(t, err)

	var found []domain.EvidenceItem
	require.Equal(t, http.StatusOK, get(t, srv, "/evidence?tags=slo&tags=other&evidenceType=monitoring&freshOnly=true", &found))
	require.Len(t, found, 1)
	assert.Equal(t, e.ID, found[0].ID)

	var one domain.EvidenceItem
	require.Equal(t, http.StatusOK, get(t, srv, "/evidence/"+strconv.FormatInt(e.ID, 10), &one))
	assert.Equal(t, "grafana", one.Source)
	assert.Equal(t, 3.0, one.Body["dashboards"])
}

func TestStoreFailuresAre503(t *testing.T) {
	store := memory.New()
	svc := app.NewServices(store, nil)
	svc.Ping = func(context.Context) error { return domain.DBError("ping", errors.New("refused")) }
	srv := httptest.NewServer(New(svc, nil).Routes())
	defer srv.Close()

	var body map[string]string
	assert.Equal(t, http.StatusServiceUnavailable, get(t, srv, "/healthz", &body))
	assert.Equal(t, "database unavailable", body["error"])
}
