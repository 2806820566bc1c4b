package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/openbesluit/reportgen/internal/domain"
)

// JobStore is the durable record of generation jobs and the scheduler's
// only source of truth across restarts. Jobs are never deleted; terminal
// jobs remain queryable as an audit trail.
type JobStore interface {
	// CreateJob persists a newly submitted job in the scheduled state.
	CreateJob(ctx context.Context, job *domain.Job) error

	// GetJob retrieves a job by its unique ID.
	// Returns ErrJobNotFound if no such job exists.
	GetJob(ctx context.Context, id uuid.UUID) (*domain.Job, error)

	// ClaimNextScheduledJob atomically claims the oldest scheduled job by
	// marking it ongoing, but only while no other job is ongoing. The
	// claim is a single conditional update so that two processes cannot
	// both claim. Returns ErrNoScheduledJob when there is nothing to
	// claim or a job is still ongoing.
	ClaimNextScheduledJob(ctx context.Context) (*domain.Job, error)

	// CompleteJob moves an ongoing job to the given terminal status and
	// releases its retained caller context. Terminal statuses are never
	// overwritten; completing an already terminal job returns
	// ErrUpdateFailed.
	CompleteJob(ctx context.Context, id uuid.UUID, status domain.JobStatus) error

	// RecoverOngoingJobs forces every ongoing job to failure. It is run
	// once at startup, before any new job is picked, so that a crash
	// mid-execution cannot leave the at-most-one-ongoing invariant
	// violated. Returns the number of jobs swept.
	RecoverOngoingJobs(ctx context.Context) (int, error)
}
