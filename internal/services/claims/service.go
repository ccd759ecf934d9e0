package claims

import (
	"context"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

const entity = "Claim"

type Service struct {
	repo ports.ClaimRepository
}

func New(repo ports.ClaimRepository) *Service { return &Service{repo: repo} }

// Get returns the claim with its evidence, most recently collected first.
func (s *Service) Get(ctx context.Context, id int64) (domain.ClaimWithEvidence, error) {
	claim, exists, err := s.repo.GetClaim(ctx, id)
	if err != nil {
		return domain.ClaimWithEvidence{}, err
	}
	if !exists {
		return domain.ClaimWithEvidence{}, domain.NotFound(entity, id)
	}
	return claim, nil
}

func (s *Service) List(ctx context.Context, f ports.ClaimFilter) ([]domain.Claim, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.repo.ListClaims(ctx, f)
}

// Upsert applies the claim defaults (UNKNOWN status, zero confidence) before
// storing. A non-nil EvidenceIDs replaces the claim's links wholesale.
func (s *Service) Upsert(ctx context.Context, in ports.UpsertClaimInput) (domain.Claim, error) {
	if err := in.Validate(); err != nil {
		return domain.Claim{}, err
	}
	if in.Status == "" {
		in.Status = domain.ClaimUnknown
	}
	if in.Confidence == nil {
		zero := 0
		in.Confidence = &zero
	}
	return s.repo.UpsertClaim(ctx, in)
}

// Link adds evidence to a claim. Pairs that already exist are left alone.
func (s *Service) Link(ctx context.Context, claimID int64, evidenceIDs []int64) error {
	if err := checkLink(claimID, evidenceIDs); err != nil {
		return err
	}
	if len(evidenceIDs) == 0 {
		return nil
	}
	return s.repo.LinkEvidence(ctx, claimID, evidenceIDs)
}

func (s *Service) Unlink(ctx context.Context, claimID int64, evidenceIDs []int64) error {
	if err := checkLink(claimID, evidenceIDs); err != nil {
		return err
	}
	if len(evidenceIDs) == 0 {
		return nil
	}
	return s.repo.UnlinkEvidence(ctx, claimID, evidenceIDs)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteClaim(ctx, id)
}

func checkLink(claimID int64, evidenceIDs []int64) error {
	if claimID <= 0 {
		return domain.Invalid("claimId", "must be positive")
	}
	return ports.ValidateIDs("evidenceIds", evidenceIDs)
}
