package evidence

import (
	"context"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const entity = "EvidenceItem"

type Service struct {
	repo ports.EvidenceRepository
}

func New(repo ports.EvidenceRepository) *Service { return &Service{repo: repo} }

func (s *Service) Get(ctx context.Context, id int64) (domain.EvidenceItem, error) {
	item, exists, err := s.repo.GetEvidence(ctx, id)
	if err != nil {
		return domain.EvidenceItem{}, err
	}
	if !exists {
		return domain.EvidenceItem{}, domain.NotFound(entity, id)
	}
	return item, nil
}

func (s *Service) Search(ctx context.Context, f ports.EvidenceFilter) ([]domain.EvidenceItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.repo.SearchEvidence(ctx, f)
}

// Upsert validates in and stores it. A nil collection time is defaulted by the
// repository from its own clock.
// The expiry is always re-derived from the collection time and TTL.
func (s *Service) Upsert(ctx context.Context, in ports.UpsertEvidenceInput) (domain.EvidenceItem, error) {
	if err := in.Validate(); err != nil {
		return domain.EvidenceItem{}, err
	}
	if in.Tags == nil {
		in.Tags = []string{}
	}
	return s.repo.UpsertEvidence(ctx, in)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteEvidence(ctx, id)
}
