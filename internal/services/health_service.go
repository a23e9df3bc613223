package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"pragati/pkg/contracts"
)

// HealthService provides health check functionality
type HealthService struct {
	dashboard *DashboardService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// NewHealthService creates a new health service
func NewHealthService(dashboard *DashboardService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		dashboard: dashboard,
		startTime: time.Now(),
		logger:    logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall process health
func (s *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
		},
		Services: map[string]interface{}{
			"sheet_cache": map[string]interface{}{
				"loaded": s.dashboard.Loaded(),
			},
		},
	}
}

// ReadinessCheck reports whether the service can serve dashboard data.
// Ready even before the first load: the cold fetch happens lazily on
// the first data request.
func (s *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]interface{}{
			"sheet_cache": map[string]interface{}{
				"loaded": s.dashboard.Loaded(),
			},
		},
	}
}

// Version returns build version information
func (s *HealthService) Version() contracts.VersionInfo {
	return contracts.GetVersionInfo()
}
