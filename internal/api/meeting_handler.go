package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/api/shared"
	"github.com/openbesluit/reportgen/internal/service"
	"github.com/openbesluit/reportgen/internal/store"
)

// MeetingReportsResponse lists the reports of a meeting eligible for
// bundling.
type MeetingReportsResponse struct {
	ReportIDs []string `json:"report_ids"`
}

// MeetingHandler handles meeting-level requests: listing bundleable
// reports and generating the meeting bundle.
type MeetingHandler struct {
	bundles  *service.BundleService
	meetings store.MeetingStore
	logger   *slog.Logger
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(
	bundles *service.BundleService,
	meetings store.MeetingStore,
	logger *slog.Logger,
) *MeetingHandler {
	return &MeetingHandler{
		bundles:  bundles,
		meetings: meetings,
		logger:   logger.With(slog.String("component", "meeting_handler")),
	}
}

// ListReports handles GET /meetings/{id}/reports requests.
func (h *MeetingHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	meetingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid meeting ID")
		return
	}

	reportIDs, err := h.meetings.GetReportsForMeeting(r.Context(), meetingID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	response := MeetingReportsResponse{ReportIDs: make([]string, len(reportIDs))}
	for i, id := range reportIDs {
		response.ReportIDs[i] = id.String()
	}
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GenerateBundle handles POST /meetings/{id}/bundle requests: it
// resolves the meeting's bundleable reports and merges their PDFs into
// the meeting's single bundle artifact, synchronously.
func (h *MeetingHandler) GenerateBundle(w http.ResponseWriter, r *http.Request) {
	meetingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid meeting ID")
		return
	}

	reportIDs, err := h.meetings.GetReportsForMeeting(r.Context(), meetingID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	caller := shared.CallerContextFromRequest(r)
	artifact, err := h.bundles.GenerateBundle(r.Context(), reportIDs, caller)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, artifactToResponse(artifact))
}
