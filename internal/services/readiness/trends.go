package readiness

import "ravegraph/internal/domain"

// BuildTrends produces one trend per distinct service in scores. Scores are
// expected newest-first per service; the order received is kept as is, so the
// first score of a group is current and the second, if any, is previous.
// Trends come out in order of each service's first appearance.
func BuildTrends(scores []domain.ReadinessScore) []domain.ReadinessTrend {
	groups := make(map[string][]domain.ReadinessScore)
	var order []string
	for _, s := range scores {
		if s.ServiceID == "" {
			panic("readiness: score without service id")
		}
		if _, ok := groups[s.ServiceID]; !ok {
			order = append(order, s.ServiceID)
		}
		groups[s.ServiceID] = append(groups[s.ServiceID], s)
	}

	trends := make([]domain.ReadinessTrend, 0, len(order))
	for _, id := range order {
		history := groups[id]
		current := history[0]
		t := domain.ReadinessTrend{
			ServiceID:    current.ServiceID,
			ServiceName:  current.ServiceName,
			CurrentScore: current.Score,
			Trend:        domain.TrendNew,
			Scores:       history,
		}
		if len(history) > 1 {
			prev := history[1].Score
			t.PreviousScore = &prev
			t.Trend = Classify(current.Score, prev)
		}
		trends = append(trends, t)
	}
	return trends
}

// Classify compares two consecutive scores. Deltas within plus or minus
// domain.TrendThreshold, inclusive, are STABLE.
func Classify(current, previous float64) domain.TrendDirection {
	diff := current - previous
	switch {
	case diff > domain.TrendThreshold:
		return domain.TrendImproving
	case diff < -domain.TrendThreshold:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}
