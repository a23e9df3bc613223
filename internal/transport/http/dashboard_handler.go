package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "pragati/internal/errors"
	"pragati/internal/exporter"
	"pragati/pkg/contracts/domain"
)

// DashboardHandler handles the dashboard data endpoints.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/overview", h.GetOverview)
	r.Get("/projects", h.GetProjects)
	r.Get("/projects/export", h.ExportProjects)
	r.Get("/summary", h.GetSummary)
	r.Get("/at-risk", h.GetAtRisk)
	r.Get("/agencies", h.GetAgencies)
	r.Get("/divisions", h.GetDivisions)
	r.Get("/progress-buckets", h.GetProgressBuckets)
	r.Get("/filters", h.GetFilters)
	r.Post("/refresh", h.Refresh)

	return r
}

// filterFromQuery reads the sidebar selectors from the query string.
// Absent parameters behave as "All".
func filterFromQuery(r *http.Request) domain.ProjectFilter {
	return domain.ProjectFilter{
		Agency: r.URL.Query().Get("agency"),
		Status: r.URL.Query().Get("status"),
	}
}

// GetOverview handles GET /api/overview. Load failures come back as a
// degraded empty-table payload with error set, never a 5xx: the UI
// shows a banner instead of crashing.
func (h *DashboardHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	overview := h.service.Overview(r.Context(), filterFromQuery(r))
	render.JSON(w, r, overview)
}

// GetProjects handles GET /api/projects
func (h *DashboardHandler) GetProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.Projects(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetSummary handles GET /api/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

// GetAtRisk handles GET /api/at-risk
func (h *DashboardHandler) GetAtRisk(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.AtRisk(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetAgencies handles GET /api/agencies
func (h *DashboardHandler) GetAgencies(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Agencies(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"agencies": groups})
}

// GetDivisions handles GET /api/divisions
func (h *DashboardHandler) GetDivisions(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.Divisions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"divisions": groups})
}

// GetProgressBuckets handles GET /api/progress-buckets
func (h *DashboardHandler) GetProgressBuckets(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.service.ProgressBuckets(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"buckets": buckets})
}

// GetFilters handles GET /api/filters
func (h *DashboardHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.FilterOptions(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, options)
}

// Refresh handles POST /api/refresh
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	table, err := h.service.Refresh(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status":     "refreshed",
		"records":    len(table.Records),
		"fetched_at": table.FetchedAt,
	})
}

// ExportProjects handles GET /api/projects/export. Streams the
// filtered, display-formatted table as CSV (default) or Excel.
func (h *DashboardHandler) ExportProjects(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("format", "must be csv or xlsx"))
		return
	}

	projects, err := h.service.Projects(r.Context(), filterFromQuery(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	filename := exporter.ExportFilename(format, time.Now())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	switch format {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		err = exporter.WriteExcel(w, projects)
	default:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		err = exporter.WriteCSV(w, projects, exporter.WriteOptions{BOMPrefix: true})
	}

	if err != nil {
		// Headers are already gone; all we can do is log.
		h.logger.ErrorContext(r.Context(), "export write failed",
			slog.String("format", format),
			slog.String("error", err.Error()))
	}
}
