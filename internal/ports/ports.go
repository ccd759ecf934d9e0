package ports

import (
	"context"

	"ravegraph/internal/domain"
)

// Front ends depend on these service contracts, never on repositories directly.

// Dashboard aggregates the work dashboard view.
type Dashboard interface {
	Get(ctx context.Context, f ServiceFilter) (domain.WorkDashboard, error)
}

// Controls reads the resilience backlog.
type Controls interface {
	List(ctx context.Context, f ControlFilter) ([]domain.Control, error)
	Get(ctx context.Context, id int64) (domain.Control, error)
	Counts(ctx context.Context, f ServiceFilter) (domain.ControlCounts, error)
}

// WorkItems reads incident-derived work.
type WorkItems interface {
	List(ctx context.Context, f WorkItemFilter) ([]domain.WorkItem, error)
	Get(ctx context.Context, id int64) (domain.WorkItem, error)
	Counts(ctx context.Context, f ServiceFilter) (domain.WorkItemCounts, error)
}

// Readiness turns score history into trends.
type Readiness interface {
	Trends(ctx context.Context, f ReadinessFilter) ([]domain.ReadinessTrend, error)
	AverageScore(ctx context.Context, f ServiceFilter) (float64, error)
	TrackedServices(ctx context.Context, f ServiceFilter) (int, error)
}

// Evidence manages the evidence ledger.
type Evidence interface {
	Get(ctx context.Context, id int64) (domain.EvidenceItem, error)
	Search(ctx context.Context, f EvidenceFilter) ([]domain.EvidenceItem, error)
	Upsert(ctx context.Context, in UpsertEvidenceInput) (domain.EvidenceItem, error)
	Delete(ctx context.Context, id int64) error
}

// Claims manages readiness claims and their evidence links.
type Claims interface {
	Get(ctx context.Context, id int64) (domain.ClaimWithEvidence, error)
	List(ctx context.Context, f ClaimFilter) ([]domain.Claim, error)
	Upsert(ctx context.Context, in UpsertClaimInput) (domain.Claim, error)
	Link(ctx context.Context, claimID int64, evidenceIDs []int64) error
	Unlink(ctx context.Context, claimID int64, evidenceIDs []int64) error
	Delete(ctx context.Context, id int64) error
}

// Services bundles the service contracts a front end is built on.
type Services struct {
	Dashboard Dashboard
	Controls  Controls
	WorkItems WorkItems
	Readiness Readiness
	Evidence  Evidence
	Claims    Claims
	// Ping reports store reachability.
	Ping func(ctx context.Context) error
}
