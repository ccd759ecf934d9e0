package dashboard

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"ravegraph/internal/domain"
	"ravegraph/internal/ports"
	"ravegraph/internal/services/readiness"
	"ravegraph/internal/telemetry"
)

// Service composes the control, work item and readiness repositories into one
// dashboard view.
type Service struct {
	controls  ports.ControlRepository
	workItems ports.WorkItemRepository
	readiness *readiness.Service
	log       *slog.Logger
	tracer    trace.Tracer
}

func New(controls ports.ControlRepository, workItems ports.WorkItemRepository, scores ports.ReadinessRepository, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		controls:  controls,
		workItems: workItems,
		readiness: readiness.New(scores),
		log:       log,
		tracer:    telemetry.Tracer("ravegraph/dashboard"),
	}
}

type backlog struct {
	controls []domain.Control
	counts   domain.ControlCounts
}

type incidentWork struct {
	items  []domain.WorkItem
	counts domain.WorkItemCounts
}

// Get issues the four fetches concurrently and fails as a whole if any fails.
// The service filter, when set, scopes every query including counts and
// summary statistics. Sub-fetches are not isolated from each other, so each may
// observe a slightly different snapshot under concurrent writes.
func (s *Service) Get(ctx context.Context, f ports.ServiceFilter) (domain.WorkDashboard, error) {
	ctx, span := s.tracer.Start(ctx, "dashboard.Get",
		trace.WithAttributes(attribute.String("ravegraph.service_id", f.ServiceID)))
	defer span.End()
	start := time.Now()

	var (
		bl      backlog
		work    incidentWork
		trends  []domain.ReadinessTrend
		summary domain.DashboardSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		bl, err = traced(gctx, s.tracer, "dashboard.backlog", func(ctx context.Context) (backlog, error) {
			return s.fetchBacklog(ctx, f)
		})
		return err
	})
	g.Go(func() (err error) {
		work, err = traced(gctx, s.tracer, "dashboard.incident_work", func(ctx context.Context) (incidentWork, error) {
			return s.fetchIncidentWork(ctx, f)
		})
		return err
	})
	g.Go(func() (err error) {
		trends, err = traced(gctx, s.tracer, "dashboard.trends", func(ctx context.Context) ([]domain.ReadinessTrend, error) {
			return s.readiness.Trends(ctx, ports.ReadinessFilter{ServiceID: f.ServiceID})
		})
		return err
	})
	g.Go(func() (err error) {
		summary, err = traced(gctx, s.tracer, "dashboard.summary", func(ctx context.Context) (domain.DashboardSummary, error) {
			return s.fetchSummary(ctx, f)
		})
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.log.Error("dashboard aggregation failed", "service_id", f.ServiceID, "err", err)
		return domain.WorkDashboard{}, err
	}

	summary.TotalControls = len(bl.controls)
	summary.TotalWorkItems = len(work.items)

	s.log.Debug("dashboard aggregated",
		"service_id", f.ServiceID,
		"controls", summary.TotalControls,
		"work_items", summary.TotalWorkItems,
		"trends", len(trends),
		"elapsed", time.Since(start))

	return domain.WorkDashboard{
		ResilienceBacklog: domain.ResilienceBacklog{
			Controls:        bl.controls,
			CountByType:     bl.counts.ByType,
			CountByPriority: bl.counts.ByPriority,
			CountByStatus:   bl.counts.ByStatus,
		},
		IncidentWork: domain.IncidentWork{
			WorkItems:     work.items,
			CountByStatus: work.counts.ByStatus,
			CountByType:   work.counts.ByType,
		},
		ReadinessTrends: trends,
		Summary:         summary,
	}, nil
}

func (s *Service) fetchBacklog(ctx context.Context, f ports.ServiceFilter) (out backlog, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.controls, err = s.controls.ListControls(gctx, ports.ControlFilter{ServiceID: f.ServiceID})
		return err
	})
	g.Go(func() (err error) {
		out.counts, err = s.controls.ControlCounts(gctx, f)
		return err
	})
	err = g.Wait()
	return out, err
}

func (s *Service) fetchIncidentWork(ctx context.Context, f ports.ServiceFilter) (out incidentWork, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.items, err = s.workItems.ListWorkItems(gctx, ports.WorkItemFilter{ServiceID: f.ServiceID})
		return err
	})
	g.Go(func() (err error) {
		out.counts, err = s.workItems.WorkItemCounts(gctx, f)
		return err
	})
	err = g.Wait()
	return out, err
}

func (s *Service) fetchSummary(ctx context.Context, f ports.ServiceFilter) (out domain.DashboardSummary, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.AvgReadinessScore, err = s.readiness.AverageScore(gctx, f)
		return err
	})
	g.Go(func() (err error) {
		out.ServicesTracked, err = s.readiness.TrackedServices(gctx, f)
		return err
	})
	err = g.Wait()
	return out, err
}

func traced[T any](ctx context.Context, tracer trace.Tracer, name string, fn func(context.Context) (T, error)) (T, error) {
	ctx, span := tracer.Start(ctx, name)
	defer span.End()
	v, err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return v, err
}
