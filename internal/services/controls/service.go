package controls

import (
	"context"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

type Service struct {
	repo ports.ControlRepository
}

func New(repo ports.ControlRepository) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context, f ports.ControlFilter) ([]domain.Control, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListControls(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.Control, error) {
	c, exists, err := s.repo.GetControl(ctx, id)
	if err != nil {
		return domain.Control{}, err
	}
	if !exists {
		return domain.Control{}, domain.NotFound("Control", id)
	}
	return c, nil
}

func (s *Service) Counts(ctx context.Context, f ports.ServiceFilter) (domain.ControlCounts, error) {
	return s.repo.ControlCounts(ctx, f)
}
