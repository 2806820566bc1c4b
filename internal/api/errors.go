package api

import (
	"errors"
	"net/http"

	"github.com/openbesluit/reportgen/internal/api/shared"
	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/render"
	"github.com/openbesluit/reportgen/internal/service"
	"github.com/openbesluit/reportgen/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes
// without leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, service.ErrSignFlowActive):
		return http.StatusConflict

	case errors.Is(err, shared.ErrInvalidRequestBody),
		errors.Is(err, service.ErrMeetingMismatch),
		errors.Is(err, service.ErrNoBundleTargets),
		errors.Is(err, domain.ErrMissingConcerns),
		errors.Is(err, domain.ErrMissingDecision),
		errors.Is(err, domain.ErrInvalidJobKind),
		errors.Is(err, domain.ErrNoJobReports),
		errors.Is(err, render.ErrUnrenderableMeetingKind):
		return http.StatusBadRequest

	case errors.Is(err, render.ErrRenderFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, store.ErrJobNotFound):
		return "Job not found"

	case errors.Is(err, store.ErrReportNotFound),
		errors.Is(err, store.ErrReportPartsNotFound):
		return "Report not found or has no content"

	case errors.Is(err, store.ErrMeetingNotFound):
		return "Report does not resolve to a meeting"

	case errors.Is(err, store.ErrArtifactNotFound):
		return "Report has no attached document"

	case errors.Is(err, service.ErrSignFlowActive):
		return "Report is in an active signature flow and cannot be regenerated"

	case errors.Is(err, service.ErrMeetingMismatch):
		return "Reports do not belong to the same meeting"

	case errors.Is(err, service.ErrNoBundleTargets):
		return "Bundle requires at least one report"

	case errors.Is(err, domain.ErrMissingConcerns),
		errors.Is(err, domain.ErrMissingDecision):
		return "Report content is incomplete"

	case errors.Is(err, domain.ErrInvalidJobKind),
		errors.Is(err, domain.ErrNoJobReports):
		return "Invalid job submission"

	case errors.Is(err, render.ErrUnrenderableMeetingKind):
		return "Meeting kind cannot be rendered"

	case errors.Is(err, render.ErrRenderFailed):
		return "Rendering service failed"

	case errors.Is(err, shared.ErrInvalidRequestBody):
		return "Invalid request body"

	default:
		return "An unexpected error occurred"
	}
}
