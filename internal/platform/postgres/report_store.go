package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/platform/logger"
	"github.com/openbesluit/reportgen/internal/store"
)

// Part titles as stored in the report_parts table.
const (
	partConcerns   = "concerns"
	partDecision   = "decision"
	partAnnotation = "annotation"
)

const agendaItemTypeAnnouncement = "announcement"

// PostgresReportStore implements the store.ReportStore interface using
// PostgreSQL.
type PostgresReportStore struct {
	db *sql.DB
}

// NewPostgresReportStore creates a new PostgresReportStore.
func NewPostgresReportStore(db *sql.DB) *PostgresReportStore {
	return &PostgresReportStore{db: db}
}

// GetReportParts retrieves the current revision of each content part of
// the report. A part revision is current when no other revision points
// at it through previous_version_id.
func (s *PostgresReportStore) GetReportParts(
	ctx context.Context,
	reportID uuid.UUID,
) (*domain.ReportParts, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.title, p.content
		FROM report_parts p
		WHERE p.report_id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM report_parts np WHERE np.previous_version_id = p.id
		  )
	`, reportID)
	if err != nil {
		return nil, store.NewStoreError("report", "get_parts",
			"failed to query report parts", err)
	}
	defer closeRows(ctx, rows)

	var parts domain.ReportParts
	found := false
	for rows.Next() {
		var title, content string
		if err := rows.Scan(&title, &content); err != nil {
			return nil, fmt.Errorf("failed to scan report part: %w", err)
		}
		found = true
		switch title {
		case partConcerns:
			parts.Concerns = content
		case partDecision:
			parts.Decision = content
		case partAnnotation:
			parts.Annotation = content
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate report parts: %w", err)
	}
	if !found {
		return nil, store.ErrReportPartsNotFound
	}

	return &parts, nil
}

// GetReportContext retrieves the meeting, agenda item and
// confidentiality snapshot for the report.
func (s *PostgresReportStore) GetReportContext(
	ctx context.Context,
	reportID uuid.UUID,
) (*domain.ReportContext, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT m.id, m.label, m.kind, m.main_kind, m.planned_start,
		       a.number, a.item_type, a.type_ordinal, a.is_minutes_approval,
		       r.name, r.confidentiality
		FROM reports r
		JOIN agenda_items a ON a.id = r.agenda_item_id
		JOIN meetings m ON m.id = a.meeting_id
		WHERE r.id = $1
	`, reportID)

	var (
		meeting  domain.Meeting
		mainKind sql.NullString
		itemType string
		rctx     domain.ReportContext
	)
	err := row.Scan(
		&meeting.ID,
		&meeting.Label,
		&meeting.Kind,
		&mainKind,
		&meeting.PlannedStart,
		&rctx.AgendaItem.Number,
		&itemType,
		&rctx.AgendaItem.TypeOrdinal,
		&rctx.IsMinutesApproval,
		&rctx.ReportName,
		&rctx.Confidentiality,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrMeetingNotFound
		}
		return nil, store.NewStoreError("report", "get_context",
			"failed to get report context", err)
	}

	if mainKind.Valid {
		meeting.MainKind = domain.MeetingKind(mainKind.String)
	}
	rctx.Meeting = &meeting
	rctx.AgendaItem.IsAnnouncement = itemType == agendaItemTypeAnnouncement

	return &rctx, nil
}

// GetSecretary retrieves the secretary associated with the report, or
// nil when there is none.
func (s *PostgresReportStore) GetSecretary(
	ctx context.Context,
	reportID uuid.UUID,
) (*domain.Secretary, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT sec.first_name, sec.last_name, sec.title
		FROM reports r
		JOIN secretaries sec ON sec.id = r.secretary_id
		WHERE r.id = $1
	`, reportID)

	var secretary domain.Secretary
	err := row.Scan(&secretary.FirstName, &secretary.LastName, &secretary.Title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, store.NewStoreError("report", "get_secretary",
			"failed to get report secretary", err)
	}

	return &secretary, nil
}

// GetSignFlowStatus retrieves the status of an active signature flow
// covering the report, or the empty string when no flow exists.
func (s *PostgresReportStore) GetSignFlowStatus(
	ctx context.Context,
	reportID uuid.UUID,
) (string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT status
		FROM sign_flows
		WHERE report_id = $1
		LIMIT 1
	`, reportID)

	var status string
	if err := row.Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", store.NewStoreError("report", "get_sign_flow",
			"failed to get sign flow status", err)
	}

	return status, nil
}

// GetAgendaItemDetail retrieves the agenda item titles and the optional
// ratification reference for the report.
func (s *PostgresReportStore) GetAgendaItemDetail(
	ctx context.Context,
	reportID uuid.UUID,
) (*domain.AgendaItemDetail, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT a.short_title, a.title, a.procedure_step_name, a.ratification_title,
		       a.is_minutes_approval, a.item_type
		FROM reports r
		JOIN agenda_items a ON a.id = r.agenda_item_id
		WHERE r.id = $1
	`, reportID)

	var (
		detail            domain.AgendaItemDetail
		title             sql.NullString
		procedureStepName sql.NullString
		ratification      sql.NullString
		itemType          string
	)
	err := row.Scan(
		&detail.ShortTitle,
		&title,
		&procedureStepName,
		&ratification,
		&detail.IsMinutesApproval,
		&itemType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReportNotFound
		}
		return nil, store.NewStoreError("report", "get_agenda_item",
			"failed to get agenda item detail", err)
	}

	detail.Title = title.String
	detail.ProcedureStepName = procedureStepName.String
	detail.Ratification = ratification.String
	detail.IsNote = itemType != agendaItemTypeAnnouncement

	return &detail, nil
}

// GetCitationPieces retrieves the citable pieces of the report's agenda
// item: current piece versions only, excluding secretariat-only pieces
// and consultation-only annexes.
func (s *PostgresReportStore) GetCitationPieces(
	ctx context.Context,
	reportID uuid.UUID,
) ([]domain.Piece, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.name, p.position, p.created_at
		FROM reports r
		JOIN pieces p ON p.agenda_item_id = r.agenda_item_id
		WHERE r.id = $1
		  AND p.confidentiality <> $2
		  AND NOT p.consultation_only
		  AND NOT EXISTS (
			SELECT 1 FROM pieces np WHERE np.previous_version_id = p.id
		  )
	`, reportID, domain.TierSecretariat)
	if err != nil {
		return nil, store.NewStoreError("report", "get_pieces",
			"failed to query citation pieces", err)
	}
	defer closeRows(ctx, rows)

	var pieces []domain.Piece
	for rows.Next() {
		var (
			piece    domain.Piece
			position sql.NullInt64
		)
		if err := rows.Scan(&piece.Name, &position, &piece.Created); err != nil {
			return nil, fmt.Errorf("failed to scan citation piece: %w", err)
		}
		if position.Valid {
			p := int(position.Int64)
			piece.Position = &p
		}
		pieces = append(pieces, piece)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate citation pieces: %w", err)
	}

	return pieces, nil
}

// AddConcernsRevision writes the given content as a new revision of the
// concerns part. The prior revision stays in place and becomes
// superseded through the previous-version link.
func (s *PostgresReportStore) AddConcernsRevision(
	ctx context.Context,
	reportID uuid.UUID,
	content string,
) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO report_parts (id, report_id, title, content, previous_version_id, created_at)
		SELECT $1, $2, $3, $4, p.id, now()
		FROM report_parts p
		WHERE p.report_id = $2
		  AND p.title = $3
		  AND NOT EXISTS (
			SELECT 1 FROM report_parts np WHERE np.previous_version_id = p.id
		  )
	`, uuid.New(), reportID, partConcerns, content)
	if err != nil {
		log.Error("failed to add concerns revision", "report_id", reportID, "error", err)
		return store.NewStoreError("report", "add_revision",
			"failed to add concerns revision", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		// Nothing to supersede: the report has no current concerns part.
		return store.ErrReportPartsNotFound
	}

	return nil
}

// AttachArtifact persists the artifact's logical record and relinks the
// report's attachment to it in one transaction. The superseded
// artifact's record stays in place; only the link moves.
func (s *PostgresReportStore) AttachArtifact(
	ctx context.Context,
	reportID uuid.UUID,
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
		FROM reports r
		JOIN artifacts a ON a.id = r.artifact_id
		WHERE r.id = $1
	`, reportID))
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, store.NewStoreError("report", "attach_artifact",
			"failed to get superseded artifact", err)
	}

	if err := insertArtifact(ctx, tx, artifact); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx, `
		UPDATE reports
		SET artifact_id = $1, modified_at = now()
		WHERE id = $2
	`, artifact.ID, reportID)
	if err != nil {
		log.Error("failed to relink report artifact", "report_id", reportID, "error", err)
		return nil, store.NewStoreError("report", "attach_artifact",
			"failed to relink report artifact", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, store.ErrReportNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit", store.ErrTransactionFailed)
	}

	return previous, nil
}

func insertArtifact(ctx context.Context, db store.DBTX, artifact *domain.Artifact) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO artifacts (id, name, format, size, uri, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		artifact.ID,
		artifact.Name,
		artifact.Format,
		artifact.Size,
		artifact.URI,
		artifact.CreatedAt,
	)
	if err != nil {
		return store.NewStoreError("artifact", "insert",
			"failed to insert artifact record", err)
	}
	return nil
}

func scanArtifact(row rowScanner) (*domain.Artifact, error) {
	var artifact domain.Artifact
	err := row.Scan(
		&artifact.ID,
		&artifact.Name,
		&artifact.Format,
		&artifact.Size,
		&artifact.URI,
		&artifact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &artifact, nil
}
