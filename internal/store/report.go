package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
)

// ReportStore exposes the fact-store reads and writes the generation
// orchestrator needs for a single report. All reads return fresh
// snapshots; nothing is cached across calls.
type ReportStore interface {
	// GetReportParts retrieves the current revision of each content part
	// of the report. Returns ErrReportPartsNotFound when the report has
	// no parts at all.
	GetReportParts(ctx context.Context, reportID uuid.UUID) (*domain.ReportParts, error)

	// GetReportContext retrieves the meeting, agenda item and
	// confidentiality snapshot for the report. Returns ErrMeetingNotFound
	// when the report does not resolve to a meeting.
	GetReportContext(ctx context.Context, reportID uuid.UUID) (*domain.ReportContext, error)

	// GetSecretary retrieves the secretary associated with the report's
	// decision, or nil when there is none. Absence is not an error.
	GetSecretary(ctx context.Context, reportID uuid.UUID) (*domain.Secretary, error)

	// GetSignFlowStatus retrieves the status of an active signature flow
	// covering the report, or the empty string when no flow exists.
	GetSignFlowStatus(ctx context.Context, reportID uuid.UUID) (string, error)

	// GetAgendaItemDetail retrieves the agenda item titles and optional
	// ratification reference used when the concerns section is rebuilt.
	GetAgendaItemDetail(ctx context.Context, reportID uuid.UUID) (*domain.AgendaItemDetail, error)

	// GetCitationPieces retrieves the citable pieces of the report's
	// agenda item: current piece versions only, excluding
	// secretariat-only pieces and consultation-only annexes.
	GetCitationPieces(ctx context.Context, reportID uuid.UUID) ([]domain.Piece, error)

	// AddConcernsRevision writes the given content as a new revision of
	// the concerns part, linking the prior revision through the
	// previous-version relation. Prior revisions are retained, never
	// overwritten in place or deleted.
	AddConcernsRevision(ctx context.Context, reportID uuid.UUID, content string) error

	// AttachArtifact persists the artifact's logical record and relinks
	// the report's attachment to it in one transaction. It returns the
	// superseded artifact, or nil when the report had none; deleting the
	// superseded bytes is the caller's (best-effort) concern.
	AttachArtifact(
		ctx context.Context,
		reportID uuid.UUID,
		artifact *domain.Artifact,
	) (*domain.Artifact, error)
}
