package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/openbesluit/reportgen/internal/domain"
	"github.com/openbesluit/reportgen/internal/platform/logger"
	"github.com/openbesluit/reportgen/internal/store"
)

// uniqueViolation is the PostgreSQL error code raised when the partial
// unique index on ongoing jobs rejects a second claim.
const uniqueViolation = "23505"

// PostgresJobStore implements the store.JobStore interface using
// PostgreSQL.
type PostgresJobStore struct {
	db *sql.DB
}

// NewPostgresJobStore creates a new PostgresJobStore.
func NewPostgresJobStore(db *sql.DB) *PostgresJobStore {
	return &PostgresJobStore{db: db}
}

// CreateJob persists a newly submitted job and its ordered report list.
func (s *PostgresJobStore) CreateJob(ctx context.Context, job *domain.Job) error {
	log := logger.FromContext(ctx)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("refusing to persist invalid job: %w", err)
	}

	callerContext, err := marshalCallerContext(job.CallerContext)
	if err != nil {
		return fmt.Errorf("failed to encode caller context: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin", store.ErrTransactionFailed)
	}
	defer rollback(ctx, tx)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO jobs (id, kind, status, regenerate_citations, caller_context, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		job.ID,
		job.Kind,
		job.Status,
		job.RegenerateCitations,
		callerContext,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to save job", "job_id", job.ID, "error", err)
		return store.NewStoreError("job", "create", "failed to save job", err)
	}

	for i, reportID := range job.ReportIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO job_reports (job_id, position, report_id)
			VALUES ($1, $2, $3)
		`, job.ID, i, reportID)
		if err != nil {
			log.Error("failed to save job report reference",
				"job_id", job.ID,
				"report_id", reportID,
				"error", err)
			return store.NewStoreError("job", "create",
				"failed to save job report reference", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit", store.ErrTransactionFailed)
	}

	return nil
}

// GetJob retrieves a job by its unique ID.
func (s *PostgresJobStore) GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, status, regenerate_citations, caller_context, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrJobNotFound
		}
		return nil, store.NewStoreError("job", "get", "failed to get job", err)
	}

	if job.ReportIDs, err = s.reportIDs(ctx, job.ID); err != nil {
		return nil, err
	}

	return job, nil
}

// ClaimNextScheduledJob claims the oldest scheduled job with a single
// conditional update: the row only moves to ongoing when no other row is
// ongoing, so two processes can never both claim. The partial unique
// index on ongoing jobs backstops the condition under concurrency.
func (s *PostgresJobStore) ClaimNextScheduledJob(ctx context.Context) (*domain.Job, error) {
	log := logger.FromContext(ctx)

	row := s.db.QueryRowContext(ctx, `
		UPDATE jobs
		SET status = $1, updated_at = now()
		WHERE id = (
			SELECT id
			FROM jobs
			WHERE status = $2
			  AND NOT EXISTS (SELECT 1 FROM jobs ongoing WHERE ongoing.status = $1)
			ORDER BY created_at ASC
			LIMIT 1
		)
		RETURNING id, kind, status, regenerate_citations, caller_context, created_at, updated_at
	`, domain.JobStatusOngoing, domain.JobStatusScheduled)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoScheduledJob
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Another process won the claim between condition and write.
			log.Debug("lost job claim race to another process")
			return nil, store.ErrNoScheduledJob
		}
		log.Error("failed to claim next scheduled job", "error", err)
		return nil, store.NewStoreError("job", "claim",
			"failed to claim next scheduled job", err)
	}

	if job.ReportIDs, err = s.reportIDs(ctx, job.ID); err != nil {
		return nil, err
	}

	return job, nil
}

// CompleteJob moves an ongoing job to the given terminal status and
// releases the retained caller context. A job that is not ongoing is
// left untouched and ErrUpdateFailed is returned, so terminal statuses
// are never overwritten.
func (s *PostgresJobStore) CompleteJob(
	ctx context.Context,
	id uuid.UUID,
	status domain.JobStatus,
) error {
	log := logger.FromContext(ctx)

	if status != domain.JobStatusSuccess && status != domain.JobStatusFailure {
		return fmt.Errorf("%w: %q is not a terminal status", store.ErrUpdateFailed, status)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = $1, caller_context = NULL, updated_at = now()
		WHERE id = $2 AND status = $3
	`, status, id, domain.JobStatusOngoing)
	if err != nil {
		log.Error("failed to complete job", "job_id", id, "status", status, "error", err)
		return store.NewStoreError("job", "complete", "failed to complete job", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: job %s is not ongoing", store.ErrUpdateFailed, id)
	}

	return nil
}

// RecoverOngoingJobs forces every ongoing job to failure. Run once at
// startup before the scheduler begins serving; an interrupted job is
// never auto-resumed, the caller must resubmit.
func (s *PostgresJobStore) RecoverOngoingJobs(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, `
		UPDATE jobs
		SET status = $1, caller_context = NULL, updated_at = now()
		WHERE status = $2
	`, domain.JobStatusFailure, domain.JobStatusOngoing)
	if err != nil {
		log.Error("failed to recover ongoing jobs", "error", err)
		return 0, store.NewStoreError("job", "recover",
			"failed to recover ongoing jobs", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(affected), nil
}

func (s *PostgresJobStore) reportIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT report_id
		FROM job_reports
		WHERE job_id = $1
		ORDER BY position ASC
	`, jobID)
	if err != nil {
		return nil, store.NewStoreError("job", "get",
			"failed to query job report references", err)
	}
	defer closeRows(ctx, rows)

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan job report reference: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job report references: %w", err)
	}

	return ids, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var (
		job           domain.Job
		callerContext []byte
	)
	err := row.Scan(
		&job.ID,
		&job.Kind,
		&job.Status,
		&job.RegenerateCitations,
		&callerContext,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(callerContext) > 0 {
		if err := json.Unmarshal(callerContext, &job.CallerContext); err != nil {
			return nil, fmt.Errorf("failed to decode caller context: %w", err)
		}
	}

	return &job, nil
}

func marshalCallerContext(caller domain.CallerContext) ([]byte, error) {
	if caller == nil {
		return nil, nil
	}
	return json.Marshal(caller)
}
