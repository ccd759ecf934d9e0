// Package memory is an in-process Store for tests and demos. It mirrors the
// Postgres adapter's ordering, filtering and referential checks.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
)

type Store struct {
	mu  sync.RWMutex
	now func() time.Time

	services map[string]domain.Service
	controls []domain.Control
	work     []domain.WorkItem
	scores   []domain.ReadinessScore
	evidence map[int64]domain.EvidenceItem
	claims   map[int64]domain.Claim
	links    map[int64]map[int64]struct{} // claim id -> evidence ids
	nextID   int64
}

type Option func(*Store)

// WithClock fixes the time used for timestamps, windows and freshness.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(opts ...Option) *Store {
	s := &Store{
		now:      time.Now,
		services: map[string]domain.Service{},
		evidence: map[int64]domain.EvidenceItem{},
		claims:   map[int64]domain.Claim{},
		links:    map[int64]map[int64]struct{}{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var _ ports.Store = (*Store)(nil)

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close()                     {}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// AddService registers a service so ledger writes may reference it.
func (s *Store) AddService(svc domain.Service) domain.Service {
	s.mu.Lock()
	defer s.mu.Unlock()
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = s.now()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) AddControl(c domain.Control) domain.Control {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	if c.Status == "" {
		c.Status = domain.ControlProposed
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	s.controls = append(s.controls, c)
	return c
}

func (s *Store) AddWorkItem(w domain.WorkItem) domain.WorkItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.id()
	if w.Status == "" {
		w.Status = domain.WorkOpen
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = s.now()
	}
	if w.UpdatedAt.IsZero() {
		w.UpdatedAt = w.CreatedAt
	}
	s.work = append(s.work, w)
	return w
}

func (s *Store) AddScore(sc domain.ReadinessScore) domain.ReadinessScore {
	s.mu.Lock()
	defer s.mu.Unlock()
	sc.ID = s.id()
	if sc.RecordedAt.IsZero() {
		sc.RecordedAt = s.now()
	}
	if sc.CreatedAt.IsZero() {
		sc.CreatedAt = sc.RecordedAt
	}
	s.scores = append(s.scores, sc)
	return sc
}

// sortNewest orders by timestamp descending, then id descending.
func sortNewest[T any](items []T, key func(T) (time.Time, int64)) {
	slices.SortFunc(items, func(a, b T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(ib, ia)
	})
}

func matches[T comparable](want, got T) bool {
	var zero T
	return want == zero || want == got
}

func matchesPtr[T comparable](want T, got *T) bool {
	var zero T
	return want == zero || (got != nil && *got == want)
}

func matchesID(want, got *int64) bool {
	return want == nil || (got != nil && *got == *want)
}
