package readiness

import (
	"context"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

type Service struct {
	repo ports.ReadinessRepository
}

func New(repo ports.ReadinessRepository) *Service { return &Service{repo: repo} }

func (s *Service) Trends(ctx context.Context, f ports.ReadinessFilter) ([]domain.ReadinessTrend, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	scores, err := s.repo.ListScores(ctx, f)
	if err != nil {
		return nil, err
	}
	return BuildTrends(scores), nil
}

// AverageScore averages each service's most recent score, not the full history.
func (s *Service) AverageScore(ctx context.Context, f ports.ServiceFilter) (float64, error) {
	return s.repo.AverageLatestScore(ctx, f)
}

func (s *Service) TrackedServices(ctx context.Context, f ports.ServiceFilter) (int, error) {
	return s.repo.TrackedServiceCount(ctx, f)
}
