package domain

import "time"

// Core domain models. JSON tags are the wire contract serialized verbatim by
// every front end.

type Service struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tier      *string   `json:"tier,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type Incident struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Severity   *Severity  `json:"severity,omitempty"`
	ServiceID  *string    `json:"serviceId,omitempty"`
	StartedAt  time.Time  `json:"startedAt"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
	Impact     *string    `json:"impact,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// ReadinessScore is append-only; a service's current score is its most
// recently recorded one.
type ReadinessScore struct {
	ID            int64              `json:"id"`
	ServiceID     string             `json:"serviceId"`
	ServiceName   string             `json:"serviceName"`
	Score         float64            `json:"score"`
	SectionScores map[string]float64 `json:"sectionScores,omitempty"`
	RecordedAt    time.Time          `json:"recordedAt"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type ReadinessTrend struct {
	ServiceID     string           `json:"serviceId"`
	ServiceName   string           `json:"serviceName"`
	CurrentScore  float64          `json:"currentScore"`
	PreviousScore *float64         `json:"previousScore,omitempty"`
	Trend         TrendDirection   `json:"trend"`
	Scores        []ReadinessScore `json:"scores"`
}

// Control is a resilience backlog entry.
type Control struct {
	ID          int64         `json:"id"`
	ControlType ControlType   `json:"controlType"`
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	IncidentID  *int64        `json:"incidentId,omitempty"`
	ServiceID   *string       `json:"serviceId,omitempty"`
	Priority    *Priority     `json:"priority,omitempty"`
	Status      ControlStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// WorkItem is an incident-derived task, optionally mirrored in a ticketing system.
type WorkItem struct {
	ID             int64           `json:"id"`
	ExternalID     *string         `json:"externalId,omitempty"`
	ExternalSystem *ExternalSystem `json:"externalSystem,omitempty"`
	Title          string          `json:"title"`
	Description    *string         `json:"description,omitempty"`
	WorkType       *WorkType       `json:"workType,omitempty"`
	ControlID      *int64          `json:"controlId,omitempty"`
	IncidentID     *int64          `json:"incidentId,omitempty"`
	ServiceID      *string         `json:"serviceId,omitempty"`
	Status         WorkStatus      `json:"status"`
	AssignedTo     *string         `json:"assignedTo,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type EvidenceItem struct {
	ID           int64          `json:"id"`
	ServiceID    string         `json:"serviceId"`
	EvidenceType EvidenceType   `json:"evidenceType"`
	Source       string         `json:"source"`
	Body         map[string]any `json:"body"`
	Tags         []string       `json:"tags"`
	Confidence   int            `json:"confidence"`
	TTLHours     *int           `json:"ttlHours,omitempty"`
	CollectedAt  time.Time      `json:"collectedAt"`
	ExpiresAt    *time.Time     `json:"expiresAt,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// Fresh reports whether the item has no expiry or expires strictly after now.
func (e EvidenceItem) Fresh(now time.Time) bool {
	return e.ExpiresAt == nil || e.ExpiresAt.After(now)
}

type Claim struct {
	ID         int64       `json:"id"`
	ServiceID  string      `json:"serviceId"`
	Title      string      `json:"title"`
	Section    string      `json:"section"`
	Status     ClaimStatus `json:"status"`
	Confidence int         `json:"confidence"`
	Reason     *string     `json:"reason,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// ClaimWithEvidence carries a claim's linked evidence, most recently collected first.
type ClaimWithEvidence struct {
	Claim
	Evidence []EvidenceItem `json:"evidence"`
}

// EvidenceExpiry derives an expiry from a collection time and optional TTL.
// A nil TTL never expires.
func EvidenceExpiry(collectedAt time.Time, ttlHours *int) *time.Time {
	if ttlHours == nil {
		return nil
	}
	exp := collectedAt.Add(time.Duration(*ttlHours) * time.Hour)
	return &exp
}
