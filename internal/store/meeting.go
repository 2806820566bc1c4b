package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
)

// BundleEntry is one constituent of a meeting bundle: a report, the URI
// of its attached PDF (the signed flattened copy when one exists,
// otherwise the generated original) and the keys it is ordered by.
type BundleEntry struct {
	ReportID    uuid.UUID
	ReportName  string
	TypeOrdinal int
	ArtifactURI string
}

// MeetingStore exposes the meeting-level reads and writes used when
// bundling a meeting's reports into one combined artifact.
type MeetingStore interface {
	// GetMeetingForReports resolves the single parent meeting shared by
	// all given reports. Returns ErrMeetingNotFound when a report does
	// not resolve to a meeting.
	GetMeetingForReports(ctx context.Context, reportIDs []uuid.UUID) ([]*domain.Meeting, error)

	// GetReportsForMeeting lists the reports of the meeting eligible for
	// bundling (government-tier decision reports on the current agenda
	// revision).
	GetReportsForMeeting(ctx context.Context, meetingID uuid.UUID) ([]uuid.UUID, error)

	// GetBundleEntries retrieves the bundle constituents for the given
	// reports, ordered by agenda-item-type ordinal and then report name.
	// Returns ErrArtifactNotFound when a report has no attached PDF.
	GetBundleEntries(ctx context.Context, reportIDs []uuid.UUID) ([]BundleEntry, error)

	// AttachBundle persists the bundle artifact's logical record and
	// relinks the meeting's single bundle slot to it in one transaction,
	// returning the superseded bundle artifact or nil.
	AttachBundle(
		ctx context.Context,
		meetingID uuid.UUID,
		artifact *domain.Artifact,
	) (*domain.Artifact, error)
}
