package memory

import (
	"time"

	"ravegraph/internal/domain"
)

// SeedDemo loads a small two-service data set, enough to exercise every view.
func SeedDemo(s *Store) {
	now := s.now()
	day := 24 * time.Hour
	svc := func(v string) *string { return &v }

	s.AddService(domain.Service{ID: "checkout", Name: "Checkout API", Tier: svc("tier-1")})
	s.AddService(domain.Service{ID: "search", Name: "Search", Tier: svc("tier-2")})

	high, medium := domain.PriorityHigh, domain.PriorityMedium
	rateLimit := s.AddControl(domain.Control{
		ControlType: domain.ControlPrevent, Title: "Rate limit payment retries", ServiceID: svc("checkout"),
		Priority: &high, Status: domain.ControlApproved, CreatedAt: now.Add(-5 * day),
	})
	s.AddControl(domain.Control{
		ControlType: domain.ControlDetect, Title: "Alert on p99 latency above 800ms", ServiceID: svc("checkout"),
		Priority: &medium, CreatedAt: now.Add(-3 * day),
	})
	s.AddControl(domain.Control{
		ControlType: domain.ControlLearn, Title: "Game day for index rebuild", ServiceID: svc("search"),
		CreatedAt: now.Add(-2 * day),
	})

	remediation, docs := domain.WorkRemediation, domain.WorkDocumentation
	github := domain.ExternalGitHub
	s.AddWorkItem(domain.WorkItem{
		Title: "Implement retry budget", WorkType: &remediation, ControlID: &rateLimit.ID,
		ServiceID: svc("checkout"), Status: domain.WorkInProgress, ExternalSystem: &github, ExternalID: svc("payments#412"),
		CreatedAt: now.Add(-4 * day),
	})
	s.AddWorkItem(domain.WorkItem{
		Title: "Write search failover runbook", WorkType: &docs, ServiceID: svc("search"), CreatedAt: now.Add(-day),
	})

	for i, v := range []float64{72, 78, 85} {
		s.AddScore(domain.ReadinessScore{
			ServiceID: "checkout", ServiceName: "Checkout API", Score: v,
			SectionScores: map[string]float64{"observability": v - 5, "recovery": v + 5},
			RecordedAt:    now.Add(-time.Duration(14-7*i) * day),
		})
	}
	s.AddScore(domain.ReadinessScore{ServiceID: "search", ServiceName: "Search", Score: 64, RecordedAt: now.Add(-10 * day)})
	s.AddScore(domain.ReadinessScore{ServiceID: "search", ServiceName: "Search", Score: 63.5, RecordedAt: now.Add(-3 * day)})
}
