package ports

import (
	"context"
	"time"

	"ravegraph/internal/domain"
)

// Filter fields left at their zero value place no constraint on that dimension.

type ControlFilter struct {
	ServiceID  string
	Status     domain.ControlStatus
	Priority   domain.Priority
	Type       domain.ControlType
	IncidentID *int64
}

type WorkItemFilter struct {
	ServiceID  string
	Status     domain.WorkStatus
	Type       domain.WorkType
	ControlID  *int64
	IncidentID *int64
}

// ReadinessFilter bounds score history to the last DaysBack days (0 means
// domain.DefaultDaysBack).
type ReadinessFilter struct {
	ServiceID string
	DaysBack  int
}

// ServiceFilter scopes grouped counts and summary statistics.
type ServiceFilter struct {
	ServiceID string
}

// EvidenceFilter matches items whose tags intersect Tags. FreshOnly keeps items
// without an expiry or with an expiry strictly after query time.
type EvidenceFilter struct {
	ServiceID string
	Type      domain.EvidenceType
	Tags      []string
	FreshOnly bool
}

type ClaimFilter struct {
	ServiceID string
	Section   string
	Status    domain.ClaimStatus
}

// UpsertEvidenceInput updates in place when ID is set, replacing every field;
// omitted optionals reset to their defaults. CollectedAt nil means now.
type UpsertEvidenceInput struct {
	ID           *int64
	ServiceID    string
	EvidenceType domain.EvidenceType
	Source       string
	Body         map[string]any
	Tags         []string
	Confidence   int
	TTLHours     *int
	CollectedAt  *time.Time
}

// UpsertClaimInput with a non-nil EvidenceIDs replaces the whole link set.
type UpsertClaimInput struct {
	ID          *int64
	ServiceID   string
	Title       string
	Section     string
	Status      domain.ClaimStatus
	Confidence  *int
	Reason      *string
	EvidenceIDs []int64
}

// ControlRepository reads the resilience backlog.
type ControlRepository interface {
	ListControls(ctx context.Context, f ControlFilter) ([]domain.Control, error)
	GetControl(ctx context.Context, id int64) (domain.Control, bool, error)
	ControlCounts(ctx context.Context, f ServiceFilter) (domain.ControlCounts, error)
}

// WorkItemRepository reads incident-derived work.
type WorkItemRepository interface {
	ListWorkItems(ctx context.Context, f WorkItemFilter) ([]domain.WorkItem, error)
	GetWorkItem(ctx context.Context, id int64) (domain.WorkItem, bool, error)
	WorkItemCounts(ctx context.Context, f ServiceFilter) (domain.WorkItemCounts, error)
}

// ReadinessRepository returns scores ordered by service id, then recorded time descending.
type ReadinessRepository interface {
	ListScores(ctx context.Context, f ReadinessFilter) ([]domain.ReadinessScore, error)
	AverageLatestScore(ctx context.Context, f ServiceFilter) (float64, error)
	TrackedServiceCount(ctx context.Context, f ServiceFilter) (int, error)
}

// EvidenceRepository stores the evidence ledger.
type EvidenceRepository interface {
	GetEvidence(ctx context.Context, id int64) (domain.EvidenceItem, bool, error)
	SearchEvidence(ctx context.Context, f EvidenceFilter) ([]domain.EvidenceItem, error)
	UpsertEvidence(ctx context.Context, in UpsertEvidenceInput) (domain.EvidenceItem, error)
	DeleteEvidence(ctx context.Context, id int64) error
}

// ClaimRepository stores claims and their evidence links.
type ClaimRepository interface {
	GetClaim(ctx context.Context, id int64) (domain.ClaimWithEvidence, bool, error)
	ListClaims(ctx context.Context, f ClaimFilter) ([]domain.Claim, error)
	UpsertClaim(ctx context.Context, in UpsertClaimInput) (domain.Claim, error)
	LinkEvidence(ctx context.Context, claimID int64, evidenceIDs []int64) error
	UnlinkEvidence(ctx context.Context, claimID int64, evidenceIDs []int64) error
	DeleteClaim(ctx context.Context, id int64) error
}

// Store is the full set of contracts a backend provides.
type Store interface {
	ControlRepository
	WorkItemRepository
	ReadinessRepository
	EvidenceRepository
	ClaimRepository
	Ping(ctx context.Context) error
	Close()
}
