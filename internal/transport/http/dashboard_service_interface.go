package http

import (
	"context"

	"pragati/internal/services"
	"pragati/pkg/contracts/domain"
)

// DashboardServiceInterface defines what the dashboard handler needs
// from the service layer. Kept as an interface so handler tests can
// substitute a stub.
type DashboardServiceInterface interface {
	Overview(ctx context.Context, filter domain.ProjectFilter) *services.Overview
	Projects(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectRecord, error)
	Summary(ctx context.Context, filter domain.ProjectFilter) (domain.DashboardSummary, error)
	AtRisk(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProjectRecord, error)
	Agencies(ctx context.Context) ([]domain.GroupBreakdown, error)
	Divisions(ctx context.Context) ([]domain.GroupBreakdown, error)
	ProgressBuckets(ctx context.Context, filter domain.ProjectFilter) ([]domain.ProgressBucket, error)
	FilterOptions(ctx context.Context) (domain.FilterOptions, error)
	Refresh(ctx context.Context) (*domain.ProjectTable, error)
}
