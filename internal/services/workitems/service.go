package workitems

import (
	"context"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

type Service struct {
	repo ports.WorkItemRepository
}

func New(repo ports.WorkItemRepository) *Service { return &Service{repo: repo} }

func (s *Service) List(ctx context.Context, f ports.WorkItemFilter) ([]domain.WorkItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListWorkItems(ctx, f)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.WorkItem, error) {
	w, exists, err := s.repo.GetWorkItem(ctx, id)
	if err != nil {
		return domain.WorkItem{}, err
	}
	if !exists {
		return domain.WorkItem{}, domain.NotFound("WorkItem", id)
	}
	return w, nil
}

func (s *Service) Counts(ctx context.Context, f ports.ServiceFilter) (domain.WorkItemCounts, error) {
	return s.repo.WorkItemCounts(ctx, f)
}
