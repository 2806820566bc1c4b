package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/platform/logger"
	"github.com/openbesluit/reportgen/internal/store"
)

// PostgresMeetingStore implements the store.MeetingStore interface using
// PostgreSQL.
type PostgresMeetingStore struct {
	db *sql.DB
}

// NewPostgresMeetingStore creates a new PostgresMeetingStore.
func NewPostgresMeetingStore(db *sql.DB) *PostgresMeetingStore {
	return &PostgresMeetingStore{db: db}
}

// GetMeetingForReports resolves each report's parent meeting, in input
// order. Returns ErrMeetingNotFound when a report does not resolve to a
// meeting.
func (s *PostgresMeetingStore) GetMeetingForReports(
	ctx context.Context,
	reportIDs []uuid.UUID,
) ([]*domain.Meeting, error) {
	meetings := make([]*domain.Meeting, 0, len(reportIDs))
	for _, reportID := range reportIDs {
		row := s.db.QueryRowContext(ctx, `
			SELECT m.id, m.label, m.kind, m.main_kind, m.planned_start
			FROM reports r
			JOIN agenda_items a ON a.id = r.agenda_item_id
			JOIN meetings m ON m.id = a.meeting_id
			WHERE r.id = $1
		`, reportID)

		var (
			meeting  domain.Meeting
			mainKind sql.NullString
		)
		err := row.Scan(
			&meeting.ID,
			&meeting.Label,
			&meeting.Kind,
			&mainKind,
			&meeting.PlannedStart,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: report %s", store.ErrMeetingNotFound, reportID)
			}
			return nil, store.NewStoreError("meeting", "get_for_report",
				"failed to get meeting for report "+reportID.String(), err)
		}
		if mainKind.Valid {
			meeting.MainKind = domain.MeetingKind(mainKind.String)
		}
		meetings = append(meetings, &meeting)
	}

	return meetings, nil
}

// GetReportsForMeeting lists the reports of the meeting eligible for
// bundling: government-tier reports, ordered by agenda-item-type ordinal
// and then report name.
func (s *PostgresMeetingStore) GetReportsForMeeting(
	ctx context.Context,
	meetingID uuid.UUID,
) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id
		FROM reports r
		JOIN agenda_items a ON a.id = r.agenda_item_id
		WHERE a.meeting_id = $1
		  AND r.confidentiality = $2
		ORDER BY a.type_ordinal ASC, r.name ASC
	`, meetingID, domain.TierGovernment)
	if err != nil {
		return nil, store.NewStoreError("meeting", "list_reports",
			"failed to query reports for meeting", err)
	}
	defer closeRows(ctx, rows)

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan report reference: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report references: %w", err)
	}

	return ids, nil
}

// GetBundleEntries retrieves the bundle constituents for the given
// reports, preferring the signed flattened copy over the generated
// original, ordered by agenda-item-type ordinal and then report name.
func (s *PostgresMeetingStore) GetBundleEntries(
	ctx context.Context,
	reportIDs []uuid.UUID,
) ([]store.BundleEntry, error) {
	entries := make([]store.BundleEntry, 0, len(reportIDs))
	for _, reportID := range reportIDs {
		row := s.db.QueryRowContext(ctx, `
			SELECT r.id, r.name, a.type_ordinal, COALESCE(sa.uri, oa.uri)
			FROM reports r
			JOIN agenda_items a ON a.id = r.agenda_item_id
			LEFT JOIN artifacts oa ON oa.id = r.artifact_id
			LEFT JOIN artifacts sa ON sa.id = r.signed_artifact_id
			WHERE r.id = $1
		`, reportID)

		var (
			entry store.BundleEntry
			uri   sql.NullString
		)
		err := row.Scan(&entry.ReportID, &entry.ReportName, &entry.TypeOrdinal, &uri)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: report %s", store.ErrReportNotFound, reportID)
			}
			return nil, store.NewStoreError("meeting", "get_bundle_entries",
				"failed to get bundle entry", err)
		}
		if entry.ArtifactURI, err = artifactURI(reportID, uri); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TypeOrdinal != entries[j].TypeOrdinal {
			return entries[i].TypeOrdinal < entries[j].TypeOrdinal
		}
		return entries[i].ReportName < entries[j].ReportName
	})

	return entries, nil
}

// artifactURI unwraps the coalesced artifact URI of a bundle entry. A
// NULL means the report exists but has no attached PDF, which is a
// distinct condition from a failed query.
func artifactURI(reportID uuid.UUID, uri sql.NullString) (string, error) {
	if !uri.Valid {
		return "", fmt.Errorf("%w: report %s", store.ErrArtifactNotFound, reportID)
	}
	return uri.String, nil
}

// AttachBundle persists the bundle artifact's logical record and relinks
// the meeting's single bundle slot to it in one transaction.
func (s *PostgresMeetingStore) AttachBundle(
	ctx context.Context,
	meetingID uuid.UUID,
	artifact *domain.Artifact,
) (*domain.Artifact, error) {
	log := logger.FromContext(ctx)

	if err := artifact.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to attach invalid artifact: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin", store.ErrTransactionFailed)
	}
	defer rollback(ctx, tx)

	previous, err := scanArtifact(tx.QueryRowContext(ctx, `
		SELECT a.id, a.name, a.format, a.size, a.uri, a.created_at
		FROM meetings m
		JOIN artifacts a ON a.id = m.bundle_artifact_id
		WHERE m.id = $1
	`, meetingID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("meeting", "attach_bundle",
			"failed to get superseded bundle artifact", err)
	}

	if err := insertArtifact(ctx, tx, artifact); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE meetings
		SET bundle_artifact_id = $1
		WHERE id = $2
	`, artifact.ID, meetingID)
	if err != nil {
		log.Error("failed to relink meeting bundle", "meeting_id", meetingID, "error", err)
		return nil, store.NewStoreError("meeting", "attach_bundle",
			"failed to relink meeting bundle", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrMeetingNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit", store.ErrTransactionFailed)
	}

	return previous, nil
}
