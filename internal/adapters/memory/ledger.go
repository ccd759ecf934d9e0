package memory

import (
	"context"
	"maps"
	"slices"
	"time"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func (s *Store) GetEvidence(_ context.Context, id int64) (domain.EvidenceItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.evidence[id]
	return clone(e), ok, nil
}

func (s *Store) SearchEvidence(_ context.Context, f ports.EvidenceFilter) ([]domain.EvidenceItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	out := []domain.EvidenceItem{}
	for _, e := range s.evidence {
		if !matches(f.ServiceID, e.ServiceID) || !matches(f.Type, e.EvidenceType) {
			continue
		}
		if len(f.Tags) > 0 && !slices.ContainsFunc(e.Tags, func(t string) bool { return slices.Contains(f.Tags, t) }) {
			continue
		}
		if f.FreshOnly && !e.Fresh(now) {
			continue
		}
		out = append(out, clone(e))
	}
	sortNewest(out, func(e domain.EvidenceItem) (time.Time, int64) { return e.CollectedAt, e.ID })
	return out, nil
}

func (s *Store) UpsertEvidence(_ context.Context, in ports.UpsertEvidenceInput) (domain.EvidenceItem, error) {
	if err := in.Validate(); err != nil {
		return domain.EvidenceItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkService(in.ServiceID); err != nil {
		return domain.EvidenceItem{}, err
	}
	now := s.now()
	e := domain.EvidenceItem{CreatedAt: now}
	if in.ID != nil {
		existing, ok := s.evidence[*in.ID]
		if !ok {
			return domain.EvidenceItem{}, domain.NotFound("EvidenceItem", *in.ID)
		}
		e = existing
	} else {
		e.ID = s.id()
	}
	e.ServiceID = in.ServiceID
	e.EvidenceType = in.EvidenceType
	e.Source = in.Source
	e.Body = maps.Clone(in.Body)
	e.Tags = append([]string{}, in.Tags...)
	e.Confidence = in.Confidence
	e.TTLHours = in.TTLHours
	e.CollectedAt = now.UTC()
	if in.CollectedAt != nil {
		e.CollectedAt = *in.CollectedAt
	}
	e.ExpiresAt = domain.EvidenceExpiry(e.CollectedAt, in.TTLHours)
	e.UpdatedAt = now
	s.evidence[e.ID] = e
	return clone(e), nil
}

// DeleteEvidence also drops the item from every claim it supports.
func (s *Store) DeleteEvidence(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.evidence, id)
	for _, set := range s.links {
		delete(set, id)
	}
	return nil
}

func (s *Store) GetClaim(_ context.Context, id int64) (domain.ClaimWithEvidence, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.claims[id]
	if !ok {
		return domain.ClaimWithEvidence{}, false, nil
	}
	evidence := []domain.EvidenceItem{}
	for eid := range s.links[id] {
		evidence = append(evidence, clone(s.evidence[eid]))
	}
	sortNewest(evidence, func(e domain.EvidenceItem) (time.Time, int64) { return e.CollectedAt, e.ID })
	return domain.ClaimWithEvidence{Claim: c, Evidence: evidence}, true, nil
}

func (s *Store) ListClaims(_ context.Context, f ports.ClaimFilter) ([]domain.Claim, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Claim{}
	for _, c := range s.claims {
		if matches(f.ServiceID, c.ServiceID) && matches(f.Section, c.Section) && matches(f.Status, c.Status) {
			out = append(out, c)
		}
	}
	sortNewest(out, func(c domain.Claim) (time.Time, int64) { return c.CreatedAt, c.ID })
	return out, nil
}

// UpsertClaim checks every reference before mutating anything, so a rejected
// write leaves the claim and its links untouched.
func (s *Store) UpsertClaim(_ context.Context, in ports.UpsertClaimInput) (domain.Claim, error) {
	if err := in.Validate(); err != nil {
		return domain.Claim{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkService(in.ServiceID); err != nil {
		return domain.Claim{}, err
	}
	now := s.now()
	c := domain.Claim{CreatedAt: now}
	if in.ID != nil {
		existing, ok := s.claims[*in.ID]
		if !ok {
			return domain.Claim{}, domain.NotFound("Claim", *in.ID)
		}
		c = existing
	}
	if err := s.checkEvidence(in.EvidenceIDs); err != nil {
		return domain.Claim{}, err
	}
	if in.ID == nil {
		c.ID = s.id()
	}
	c.ServiceID = in.ServiceID
	c.Title = in.Title
	c.Section = in.Section
	c.Status = in.Status
	if c.Status == "" {
		c.Status = domain.ClaimUnknown
	}
	c.Confidence = 0
	if in.Confidence != nil {
		c.Confidence = *in.Confidence
	}
	c.Reason = in.Reason
	c.UpdatedAt = now
	s.claims[c.ID] = c

	if in.EvidenceIDs != nil {
		s.links[c.ID] = map[int64]struct{}{}
		s.link(c.ID, in.EvidenceIDs)
	}
	return c, nil
}

func (s *Store) LinkEvidence(_ context.Context, claimID int64, evidenceIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(evidenceIDs) == 0 {
		return nil
	}
	if _, ok := s.claims[claimID]; !ok {
		return domain.Invalid("claimId", "references an unknown claim")
	}
	if err := s.checkEvidence(evidenceIDs); err != nil {
		return err
	}
	s.link(claimID, evidenceIDs)
	return nil
}

func (s *Store) UnlinkEvidence(_ context.Context, claimID int64, evidenceIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range evidenceIDs {
		delete(s.links[claimID], id)
	}
	return nil
}

func (s *Store) DeleteClaim(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claims, id)
	delete(s.links, id)
	return nil
}

func (s *Store) link(claimID int64, evidenceIDs []int64) {
	set, ok := s.links[claimID]
	if !ok {
		set = map[int64]struct{}{}
		s.links[claimID] = set
	}
	for _, id := range evidenceIDs {
		set[id] = struct{}{}
	}
}

func (s *Store) checkService(id string) error {
	if _, ok := s.services[id]; !ok {
		return domain.Invalid("serviceId", "references an unknown service")
	}
	return nil
}

func (s *Store) checkEvidence(ids []int64) error {
	for _, id := range ids {
		if _, ok := s.evidence[id]; !ok {
			return domain.Invalid("evidenceIds", "references unknown evidence")
		}
	}
	return nil
}

// clone detaches the mutable fields so callers cannot alias stored state.
func clone(e domain.EvidenceItem) domain.EvidenceItem {
	e.Body = maps.Clone(e.Body)
	e.Tags = slices.Clone(e.Tags)
	return e
}
