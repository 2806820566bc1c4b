package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/api/shared"
	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/service"
)

// ArtifactResponse represents the response data for a generated
// artifact.
type ArtifactResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Format    string    `json:"format"`
	Size      int64     `json:"size"`
	URI       string    `json:"uri"`
	CreatedAt time.Time `json:"created_at"`
}

// ReportHandler handles synchronous report generation requests.
type ReportHandler struct {
	reports *service.ReportService
	logger  *slog.Logger
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reports *service.ReportService, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports: reports,
		logger:  logger.With(slog.String("component", "report_handler")),
	}
}

// GenerateReport handles POST /reports/{id}/generate requests. The
// report's PDF is regenerated synchronously; the caller waits for the
// result. Pass ?regenerate-citations=true to also rebuild the concerns
// section from the report's linked pieces.
func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid report ID")
		return
	}

	regenerate := r.URL.Query().Get("regenerate-citations") == "true"
	caller := shared.CallerContextFromRequest(r)

	artifact, err := h.reports.Generate(r.Context(), reportID, caller, regenerate)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, artifactToResponse(artifact))
}

func artifactToResponse(artifact *domain.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:        artifact.ID.String(),
		Name:      artifact.Name,
		Format:    artifact.Format,
		Size:      artifact.Size,
		URI:       artifact.URI,
		CreatedAt: artifact.CreatedAt,
	}
}
