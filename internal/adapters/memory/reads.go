package memory

import (
	"cmp"
	"context"
	"slices"
	"time"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

func (s *Store) ListControls(_ context.Context, f ports.ControlFilter) ([]domain.Control, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.Control{}
	for _, c := range s.controls {
		if matchesPtr(f.ServiceID, c.ServiceID) && matches(f.Status, c.Status) &&
			matchesPtr(f.Priority, c.Priority) && matches(f.Type, c.ControlType) && matchesID(f.IncidentID, c.IncidentID) {
			out = append(out, c)
		}
	}
	sortNewest(out, func(c domain.Control) (time.Time, int64) { return c.CreatedAt, c.ID })
	return out, nil
}

func (s *Store) GetControl(_ context.Context, id int64) (domain.Control, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.controls {
		if c.ID == id {
			return c, true, nil
		}
	}
	return domain.Control{}, false, nil
}

func (s *Store) ControlCounts(_ context.Context, f ports.ServiceFilter) (domain.ControlCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.NewControlCounts()
	for _, c := range s.controls {
		if !matchesPtr(f.ServiceID, c.ServiceID) {
			continue
		}
		out.ByType[c.ControlType]++
		out.ByStatus[c.Status]++
		if c.Priority != nil {
			out.ByPriority[*c.Priority]++
		}
	}
	return out, nil
}

func (s *Store) ListWorkItems(_ context.Context, f ports.WorkItemFilter) ([]domain.WorkItem, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []domain.WorkItem{}
	for _, w := range s.work {
		if matchesPtr(f.ServiceID, w.ServiceID) && matches(f.Status, w.Status) && matchesPtr(f.Type, w.WorkType) &&
			matchesID(f.ControlID, w.ControlID) && matchesID(f.IncidentID, w.IncidentID) {
			out = append(out, w)
		}
	}
	sortNewest(out, func(w domain.WorkItem) (time.Time, int64) { return w.CreatedAt, w.ID })
	return out, nil
}

func (s *Store) GetWorkItem(_ context.Context, id int64) (domain.WorkItem, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, w := range s.work {
		if w.ID == id {
			return w, true, nil
		}
	}
	return domain.WorkItem{}, false, nil
}

func (s *Store) WorkItemCounts(_ context.Context, f ports.ServiceFilter) (domain.WorkItemCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := domain.NewWorkItemCounts()
	for _, w := range s.work {
		if !matchesPtr(f.ServiceID, w.ServiceID) {
			continue
		}
		out.ByStatus[w.Status]++
		if w.WorkType != nil {
			out.ByType[*w.WorkType]++
		}
	}
	return out, nil
}

// ListScores orders like the Postgres adapter: service id, then newest first.
func (s *Store) ListScores(_ context.Context, f ports.ReadinessFilter) ([]domain.ReadinessScore, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	since := s.now().AddDate(0, 0, -f.Days())
	out := []domain.ReadinessScore{}
	for _, sc := range s.scores {
		if matches(f.ServiceID, sc.ServiceID) && !sc.RecordedAt.Before(since) {
			out = append(out, sc)
		}
	}
	slices.SortFunc(out, func(a, b domain.ReadinessScore) int {
		if c := cmp.Compare(a.ServiceID, b.ServiceID); c != 0 {
			return c
		}
		if c := b.RecordedAt.Compare(a.RecordedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
	return out, nil
}

// latestScores returns each in-scope service's most recent score.
func (s *Store) latestScores(f ports.ServiceFilter) map[string]domain.ReadinessScore {
	latest := map[string]domain.ReadinessScore{}
	for _, sc := range s.scores {
		if !matches(f.ServiceID, sc.ServiceID) {
			continue
		}
		cur, ok := latest[sc.ServiceID]
		if !ok || sc.RecordedAt.After(cur.RecordedAt) || (sc.RecordedAt.Equal(cur.RecordedAt) && sc.ID > cur.ID) {
			latest[sc.ServiceID] = sc
		}
	}
	return latest
}

func (s *Store) AverageLatestScore(_ context.Context, f ports.ServiceFilter) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	latest := s.latestScores(f)
	if len(latest) == 0 {
		return 0, nil
	}
	var sum float64
	for _, sc := range latest {
		sum += sc.Score
	}
	return sum / float64(len(latest)), nil
}

func (s *Store) TrackedServiceCount(_ context.Context, f ports.ServiceFilter) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.latestScores(f)), nil
}
