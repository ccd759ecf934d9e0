package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ravegraph/internal/adapters/memory"
	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func ptr[T any](v T) *T { return &v }

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s := memory.New(memory.WithClock(func() time.Time { return now }))
	s.AddControl(domain.Control{ControlType: domain.ControlPrevent, Title: "p", ServiceID: ptr("checkout"), Priority: ptr(domain.PriorityHigh)})
	s.AddControl(domain.Control{ControlType: domain.ControlDetect, Title: "d", ServiceID: ptr("checkout")})
	s.AddControl(domain.Control{ControlType: domain.ControlDetect, Title: "x", ServiceID: ptr("search")})
	s.AddWorkItem(domain.WorkItem{Title: "w", ServiceID: ptr("checkout"), WorkType: ptr(domain.WorkRemediation)})
	s.AddWorkItem(domain.WorkItem{Title: "v", ServiceID: ptr("search"), Status: domain.WorkInProgress})
	s.AddScore(domain.ReadinessScore{ServiceID: "checkout", ServiceName: "Checkout", Score: 80, RecordedAt: now.Add(-48 * time.Hour)})
	s.AddScore(domain.ReadinessScore{ServiceID: "checkout", ServiceName: "Checkout", Score: 90, RecordedAt: now.Add(-24 * time.Hour)})
	s.AddScore(domain.ReadinessScore{ServiceID: "search", ServiceName: "Search", Score: 60, RecordedAt: now.Add(-24 * time.Hour)})
	return s
}

func TestGetAggregatesEverything(t *testing.T) {
	s := seeded(t)
	d, err := New(s, s, s, nil).Get(context.Background(), ports.ServiceFilter{})
	require.NoError(t, err)

	assert.Len(t, d.ResilienceBacklog.Controls, 3)
	assert.Equal(t, 2, d.ResilienceBacklog.CountByType[domain.ControlDetect])
	assert.Equal(t, map[domain.Priority]int{domain.PriorityHigh: 1}, d.ResilienceBacklog.CountByPriority)
	assert.Len(t, d.IncidentWork.WorkItems, 2)
	assert.Equal(t, map[domain.WorkType]int{domain.WorkRemediation: 1}, d.IncidentWork.CountByType)
	require.Len(t, d.ReadinessTrends, 2)
	assert.Equal(t, domain.TrendImproving, d.ReadinessTrends[0].Trend)
	assert.Equal(t, domain.TrendNew, d.ReadinessTrends[1].Trend)

	assert.Equal(t, domain.DashboardSummary{
		TotalControls:     3,
		TotalWorkItems:    2,
		ServicesTracked:   2,
		AvgReadinessScore: 75,
	}, d.Summary)
}

func TestGetScopesEveryQueryToTheService(t *testing.T) {
	s := seeded(t)
	d, err := New(s, s, s, nil).Get(context.Background(), ports.ServiceFilter{ServiceID: "search"})
	require.NoError(t, err)

	assert.Len(t, d.ResilienceBacklog.Controls, 1)
	assert.Equal(t, map[domain.ControlType]int{domain.ControlDetect: 1}, d.ResilienceBacklog.CountByType)
	assert.Len(t, d.IncidentWork.WorkItems, 1)
	assert.Equal(t, map[domain.WorkStatus]int{domain.WorkInProgress: 1}, d.IncidentWork.CountByStatus)
	require.Len(t, d.ReadinessTrends, 1)
	assert.Equal(t, "search", d.ReadinessTrends[0].ServiceID)
	assert.Equal(t, 1, d.Summary.ServicesTracked)
	assert.Equal(t, 60.0, d.Summary.AvgReadinessScore)
	assert.Equal(t, len(d.ResilienceBacklog.Controls), d.Summary.TotalControls)
	assert.Equal(t, len(d.IncidentWork.WorkItems), d.Summary.TotalWorkItems)
}

func TestGetEmptyStore(t *testing.T) {
	s := memory.New()
	d, err := New(s, s, s, nil).Get(context.Background(), ports.ServiceFilter{})
	require.NoError(t, err)
	assert.Empty(t, d.ResilienceBacklog.Controls)
	assert.NotNil(t, d.ResilienceBacklog.Controls)
	assert.NotNil(t, d.ReadinessTrends)
	assert.Equal(t, domain.DashboardSummary{}, d.Summary)
}

type failingCounts struct {
	*memory.Store
	err error
}

func (f failingCounts) WorkItemCounts(context.Context, ports.ServiceFilter) (domain.WorkItemCounts, error) {
	return domain.WorkItemCounts{}, f.err
}

func TestGetFailsAsAWhole(t *testing.T) {
	s := seeded(t)
	boom := domain.DBError("work item counts", errors.New("connection refused"))
	d, err := New(s, failingCounts{Store: s, err: boom}, s, nil).Get(context.Background(), ports.ServiceFilter{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, domain.KindDatabase, domain.KindOf(err))
	assert.Equal(t, domain.WorkDashboard{}, d)
}

type blockingScores struct {
	*memory.Store
}

func (blockingScores) AverageLatestScore(ctx context.Context, _ ports.ServiceFilter) (float64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func TestGetHonoursCancellation(t *testing.T) {
	s := seeded(t)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := New(s, s, blockingScores{s}, nil).Get(ctx, ports.ServiceFilter{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
