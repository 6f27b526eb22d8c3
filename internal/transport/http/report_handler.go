package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"salescli/internal/app"
	"salescli/internal/middleware"
)

// ReportService is the pipeline surface the handler depends on.
type ReportService interface {
	Latest(ctx context.Context) (*app.Result, error)
	Refresh(ctx context.Context) (*app.Result, error)
	Regions(ctx context.Context) ([]string, error)
}

// ReportHandler serves the report API.
type ReportHandler struct {
	service ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a report handler.
func NewReportHandler(service ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With(slog.String("component", "report_handler")),
	}
}

// Routes returns the report API routes.
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/report", h.GetReport)
	r.Post("/report/refresh", h.RefreshReport)
	r.Get("/regions", h.GetRegions)

	return r
}

// GetReport handles GET /api/report.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Latest(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderResult(w, r, result)
}

// RefreshReport handles POST /api/report/refresh.
func (h *ReportHandler) RefreshReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Refresh(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	h.renderResult(w, r, result)
}

// GetRegions handles GET /api/regions.
func (h *ReportHandler) GetRegions(w http.ResponseWriter, r *http.Request) {
	regions, err := h.service.Regions(r.Context())
	if err != nil {
		h.renderError(w, r, err)
		return
	}
	if regions == nil {
		regions = []string{}
	}
	render.JSON(w, r, map[string]interface{}{"regions": regions})
}

func (h *ReportHandler) renderResult(w http.ResponseWriter, r *http.Request, result *app.Result) {
	if result.Empty() {
		h.renderProblem(w, r, http.StatusNotFound, "/errors/no-report",
			"No Report Available", "The sales feed had no data to process")
		return
	}
	render.JSON(w, r, result.Summary)
}

func (h *ReportHandler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "report request failed", slog.Any("error", err))
	h.renderProblem(w, r, http.StatusInternalServerError, "/errors/pipeline-failure",
		"Pipeline Failure", "The analytics pipeline could not produce a report")
}

// renderProblem writes an RFC 7807 problem detail response. Written
// directly because render.JSON would override the problem content type.
func (h *ReportHandler) renderProblem(w http.ResponseWriter, r *http.Request, status int, problemType, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"type":       problemType,
		"title":      title,
		"status":     status,
		"detail":     detail,
		"request_id": middleware.GetReqID(r.Context()),
	})
}
