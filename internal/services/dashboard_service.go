package services

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"pragati/internal/analytics"
	"pragati/internal/infrastructure"
	"pragati/internal/sheet"
	"pragati/pkg/contracts/domain"
)

// DashboardService sits between the HTTP handlers and the sheet
// loader: it resolves the memoized table, applies the requested filter,
// and computes the dashboard views.
type DashboardService struct {
	cache   *sheet.Cache
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.DashboardMetrics
}

// NewDashboardService creates a dashboard service. tracer and metrics
// may be nil when observability is disabled (tests, snapshot CLI).
func NewDashboardService(cache *sheet.Cache, logger *slog.Logger, tracer trace.Tracer, metrics *infrastructure.DashboardMetrics) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		cache:   cache,
		logger:  logger.With(slog.String("component", "dashboard_service")),
		tracer:  tracer,
		metrics: metrics,
	}
}

// Overview is the degraded-capable payload behind the main dashboard
// view. On load failure Error is set and the table is empty; the UI
// renders a banner instead of crashing.
type Overview struct {
	Projects  []domain.ProjectRecord  `json:"projects"`
	Summary   domain.DashboardSummary `json:"summary"`
	FetchedAt *time.Time              `json:"fetched_at,omitempty"`
	Source    string                  `json:"source,omitempty"`
	Error     string                  `json:"error,omitempty"`
}

// Overview returns the filtered projects and their summary, collapsing
// any load failure into an empty-table outcome with a reported message.
func (s *DashboardService) Overview(ctx context.Context, filter domain.ProjectFilter) *Overview {
	table, err := s.table(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "sheet load failed, serving degraded overview",
			slog.String("error", err.Error()))
		return &Overview{
			Projects: []domain.ProjectRecord{},
			Summary:  analytics.Summarize(nil),
			Error:    err.Error(),
		}
	}

	filtered := analytics.Filter(table.Records, filter)
	return &Overview{
		Projects:  filtered,
		Summary:   analytics.Summarize(filtered),
		FetchedAt: &table.FetchedAt,
		Source:    table.Source,
	}
}

// Projects returns the filtered record set.
func (s *DashboardService) Projects(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectRecord, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Filter(table.Records, filter), nil
}

// Summary returns the headline metrics of the filtered set.
func (s *DashboardService) Summary(ctx context.Context, filter domain.ProjectFilter) (domain.DashboardSummary, error) {
	table, err := s.table(ctx)
	if err != nil {
		return domain.DashboardSummary{}, err
	}
	return analytics.Summarize(analytics.Filter(table.Records, filter)), nil
}

// AtRisk returns the at-risk subset of the filtered set.
func (s *DashboardService) AtRisk(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectRecord, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.AtRisk(analytics.Filter(table.Records, filter)), nil
}

// Agencies returns the per-agency breakdown over the full table.
func (s *DashboardService) Agencies(ctx context.Context) ([]domain.GroupBreakdown, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ByAgency(table.Records), nil
}

// Divisions returns the per-division breakdown over the full table.
func (s *DashboardService) Divisions(ctx context.Context) ([]domain.GroupBreakdown, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ByDivision(table.Records), nil
}

// ProgressBuckets returns the progress histogram of the filtered set.
func (s *DashboardService) ProgressBuckets(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProgressBucket, error) {
	table, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.ProgressBuckets(analytics.Filter(table.Records, filter)), nil
}

// FilterOptions returns the sidebar selector values.
func (s *DashboardService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	table, err := s.table(ctx)
	if err != nil {
		return domain.FilterOptions{}, err
	}
	return analytics.FilterOptions(table.Records), nil
}

// Refresh drops the memoized table and loads fresh.
func (s *DashboardService) Refresh(ctx context.Context) (*domain.ProjectTable, error) {
	s.cache.Invalidate()
	return s.table(ctx)
}

// Loaded reports whether a table is currently memoized.
func (s *DashboardService) Loaded() bool {
	return s.cache.Cached() != nil
}

// table resolves the memoized table, recording load telemetry on cold
// fetches.
func (s *DashboardService) table(ctx context.Context) (*domain.ProjectTable, error) {
	if s.tracer != nil {
		var span trace.Span
		ctx, span = s.tracer.Start(ctx, "sheet.load")
		defer span.End()
	}

	cold := s.cache.Cached() == nil
	start := time.Now()

	table, err := s.cache.Get(ctx)

	if cold && s.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		s.metrics.SheetLoadsTotal.Add(ctx, 1,
			metric.WithAttributes(attribute.String("outcome", outcome)))
		s.metrics.SheetLoadDuration.Record(ctx, time.Since(start).Seconds())
		if err == nil {
			s.metrics.SheetRowsLoaded.Record(ctx, int64(len(table.Records)))
		}
	}

	return table, err
}
