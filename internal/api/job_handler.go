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

// SubmitJobRequest represents the request body for submitting a
// generation job.
type SubmitJobRequest struct {
	Kind                string   `json:"kind"                 validate:"required,oneof=single bundle"`
	ReportIDs           []string `json:"report_ids"           validate:"required,min=1,dive,uuid"`
	RegenerateCitations bool     `json:"regenerate_citations"`
}

// JobResponse represents the response data for a job.
type JobResponse struct {
	ID                  string    `json:"id"`
	Kind                string    `json:"kind"`
	ReportIDs           []string  `json:"report_ids"`
	Status              string    `json:"status"`
	RegenerateCitations bool      `json:"regenerate_citations"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// JobHandler handles job submission and status requests.
type JobHandler struct {
	jobs   *service.JobService
	logger *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobs *service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		jobs:   jobs,
		logger: logger.With(slog.String("component", "job_handler")),
	}
}

// SubmitJob handles POST /report-generation-jobs requests. It queues a
// generation job and returns it immediately; execution happens in the
// background, strictly one job at a time.
func (h *JobHandler) SubmitJob(w http.ResponseWriter, r *http.Request) {
	var req SubmitJobRequest
	if err := shared.DecodeAndValidate(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, GetSafeErrorMessage(err), err)
		return
	}

	reportIDs := make([]uuid.UUID, len(req.ReportIDs))
	for i, raw := range req.ReportIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid report ID: "+raw)
			return
		}
		reportIDs[i] = id
	}

	caller := shared.CallerContextFromRequest(r)
	job, err := h.jobs.Submit(
		r.Context(),
		domain.JobKind(req.Kind),
		reportIDs,
		req.RegenerateCitations,
		caller,
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, jobToResponse(job))
}

// GetJob handles GET /report-generation-jobs/{id} requests. Terminal
// jobs stay queryable indefinitely.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := h.jobs.GetJob(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

func jobToResponse(job *domain.Job) JobResponse {
	reportIDs := make([]string, len(job.ReportIDs))
	for i, id := range job.ReportIDs {
		reportIDs[i] = id.String()
	}
	return JobResponse{
		ID:                  job.ID.String(),
		Kind:                string(job.Kind),
		ReportIDs:           reportIDs,
		Status:              string(job.Status),
		RegenerateCitations: job.RegenerateCitations,
		CreatedAt:           job.CreatedAt,
		UpdatedAt:           job.UpdatedAt,
	}
}
